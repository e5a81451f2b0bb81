package parser

import "github.com/chriserin/gospec/internal/lexer"

// cursor reads one block's tokens. peek is always one token ahead of
// current; both are nil past the end.
type cursor struct {
	tokens  []lexer.Token
	pos     int
	current *lexer.Token
	peek    *lexer.Token
}

func newCursor(tokens []lexer.Token) *cursor {
	c := &cursor{tokens: tokens}
	c.load()
	return c
}

func (c *cursor) advance() {
	if c.pos < len(c.tokens) {
		c.pos++
	}
	c.load()
}

func (c *cursor) done() bool {
	return c.current == nil
}

func (c *cursor) load() {
	c.current = c.at(c.pos)
	c.peek = c.at(c.pos + 1)
}

func (c *cursor) at(i int) *lexer.Token {
	if i < len(c.tokens) {
		return &c.tokens[i]
	}
	return nil
}

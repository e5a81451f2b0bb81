package parser

import (
	"errors"
	"strconv"

	"github.com/chriserin/gospec/internal/lexer"
	"github.com/chriserin/gospec/internal/naming"
)

// ParseSource tokenizes src and parses it.
func ParseSource(filename string, src []byte) ([]*Scope, error) {
	tokens, err := lexer.Tokenize(filename, src)
	if err != nil {
		return nil, err
	}
	scopes, err := Parse(tokens)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Filename = filename
		}
		return nil, err
	}
	return scopes, nil
}

// Parse builds the scope tree from a token tree. Only describe and context
// are legal at the top level. The first error aborts the whole parse.
func Parse(tokens []lexer.Token) ([]*Scope, error) {
	c := newCursor(tokens)
	var scopes []*Scope
	for !c.done() {
		tok := c.current
		if tok.Kind != lexer.Ident {
			return nil, fail(MissingKeyword, msgTopKeyword, tok)
		}
		if LookupKeyword(tok.Text) != Describe {
			return nil, unexpected(msgTopKeyword, tok)
		}
		scope, err := parseScope(c)
		if err != nil {
			return nil, err
		}
		scopes = append(scopes, scope)
	}
	return scopes, nil
}

// parseScope expects c at a describe keyword. The block interior is parsed
// with its own cursor, which is what lets scopes nest without limit.
func parseScope(c *cursor) (*Scope, error) {
	display, block, line, err := parseHeader(c, msgDescribeName, msgDescribeBlock)
	if err != nil {
		return nil, err
	}
	scope := &Scope{
		Name:    naming.Sanitize(display),
		Display: display,
		Line:    line,
	}

	inner := newCursor(block.Children)
	if inner.done() {
		return nil, fail(EmptyScope, msgEmptyScope, block)
	}
	if err := parseHooks(inner, scope); err != nil {
		return nil, err
	}
	children, err := parseContainers(inner)
	if err != nil {
		return nil, err
	}
	scope.Children = children
	return scope, nil
}

// parseHooks consumes the contiguous run of before/after/subject
// declarations at the start of a block. A repeated hook replaces the earlier
// one.
func parseHooks(c *cursor, scope *Scope) error {
	for !c.done() {
		tok := c.current
		if tok.Kind != lexer.Ident {
			return nil
		}
		kw := LookupKeyword(tok.Text)
		if !kw.IsHook() {
			return nil
		}
		block := c.peek
		if !block.IsBlock() {
			return fail(MissingBlock, msgHookBlock(kw), tok)
		}
		c.advance()
		c.advance()

		hook := &Hook{Body: Fragment(block.Inner), Line: tok.Pos.Line}
		switch kw {
		case Before:
			scope.Setup = hook
		case After:
			scope.Teardown = hook
		case Subject:
			scope.Subject = hook
		}
	}
	return nil
}

func parseContainers(c *cursor) ([]Container, error) {
	var containers []Container
	for !c.done() {
		tok := c.current
		if tok.Kind != lexer.Ident {
			return nil, fail(MissingKeyword, msgContainerKeyword, tok)
		}
		switch LookupKeyword(tok.Text) {
		case Describe:
			scope, err := parseScope(c)
			if err != nil {
				return nil, err
			}
			containers = append(containers, Container{Scope: scope})
		case It:
			test, err := parseTest(c)
			if err != nil {
				return nil, err
			}
			containers = append(containers, Container{Test: test})
		default:
			return nil, unexpected(msgContainerKeyword, tok)
		}
	}
	return containers, nil
}

func parseTest(c *cursor) (*TestCase, error) {
	display, block, line, err := parseHeader(c, msgItName, msgItBlock)
	if err != nil {
		return nil, err
	}
	return &TestCase{
		Name:    naming.Sanitize(display),
		Display: display,
		Line:    line,
		Body:    Fragment(block.Inner),
	}, nil
}

// parseHeader consumes `keyword "name" { ... }` and returns the unquoted
// name and the block.
func parseHeader(c *cursor, nameMsg, blockMsg string) (string, *lexer.Token, int, error) {
	kw := c.current
	c.advance()

	lit := c.current
	if !lit.IsString() {
		return "", nil, 0, failAfter(MissingLiteral, nameMsg, lit, kw)
	}
	display, err := strconv.Unquote(lit.Text)
	if err != nil {
		return "", nil, 0, fail(MissingLiteral, nameMsg, lit)
	}

	block := c.peek
	if !block.IsBlock() {
		return "", nil, 0, failAfter(MissingBlock, blockMsg, block, lit)
	}
	c.advance()
	c.advance()
	return display, block, kw.Pos.Line, nil
}

func fail(kind ErrorKind, msg string, at *lexer.Token) *ParseError {
	return &ParseError{Kind: kind, Message: msg, Line: at.Pos.Line, Column: at.Pos.Column}
}

// failAfter reports at the offending token, or at prev when input ended.
func failAfter(kind ErrorKind, msg string, at, prev *lexer.Token) *ParseError {
	if at == nil {
		at = prev
	}
	return fail(kind, msg, at)
}

func unexpected(msg string, at *lexer.Token) *ParseError {
	err := fail(UnexpectedKeyword, msg, at)
	err.Found = at.Text
	return err
}

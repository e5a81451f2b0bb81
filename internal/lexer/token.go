package lexer

import (
	"fmt"
	gotoken "go/token"
	"strings"
)

// Kind classifies a token tree node.
type Kind int

const (
	Ident Kind = iota
	Literal
	Punct
	Group
)

func (k Kind) String() string {
	switch k {
	case Ident:
		return "ident"
	case Literal:
		return "literal"
	case Punct:
		return "punct"
	case Group:
		return "group"
	}
	return "unknown"
}

// Delim is the bracket pair surrounding a Group.
type Delim int

const (
	NoDelim Delim = iota
	Brace
	Paren
	Bracket
)

func (d Delim) open() string {
	switch d {
	case Brace:
		return "{"
	case Paren:
		return "("
	case Bracket:
		return "["
	}
	return ""
}

func (d Delim) close() string {
	switch d {
	case Brace:
		return "}"
	case Paren:
		return ")"
	case Bracket:
		return "]"
	}
	return ""
}

type Pos struct {
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a node of the token tree. Groups own the tokens between their
// delimiters; every other kind is a leaf.
type Token struct {
	Kind Kind
	Text string
	// LitKind is go/token.STRING, INT, FLOAT, IMAG or CHAR for literals.
	LitKind gotoken.Token
	Pos     Pos

	Delim    Delim
	Children []Token
	// Inner is the verbatim source between the delimiters, trimmed.
	Inner string
}

// IsString reports whether t is a string literal.
func (t *Token) IsString() bool {
	return t != nil && t.Kind == Literal && t.LitKind == gotoken.STRING
}

// IsBlock reports whether t is a brace-delimited group.
func (t *Token) IsBlock() bool {
	return t != nil && t.Kind == Group && t.Delim == Brace
}

// String renders a token dump, one token per line, groups indented.
func String(tokens []Token) string {
	var b strings.Builder
	dump(&b, tokens, 0)
	return b.String()
}

func dump(b *strings.Builder, tokens []Token, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, t := range tokens {
		switch t.Kind {
		case Group:
			fmt.Fprintf(b, "%s%s %s %s\n", indent, t.Pos, t.Kind, t.Delim.open())
			dump(b, t.Children, depth+1)
			fmt.Fprintf(b, "%s%s\n", indent, t.Delim.close())
		default:
			fmt.Fprintf(b, "%s%s %s %s\n", indent, t.Pos, t.Kind, t.Text)
		}
	}
}

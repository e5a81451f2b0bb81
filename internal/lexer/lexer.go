package lexer

import (
	"fmt"
	"go/scanner"
	gotoken "go/token"
	"strings"
)

// Error is a lexical error: a scanner failure or an unbalanced delimiter.
type Error struct {
	Filename string
	Pos      Pos
	Message  string
}

func (e *Error) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("%s:%s: %s", e.Filename, e.Pos, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

type frame struct {
	group    Token
	innerOff int
	children []Token
}

// Tokenize splits src into a token tree using Go's lexical rules.
// Semicolons inserted at line ends are dropped and comments are skipped;
// both survive in the Inner text of the enclosing group.
func Tokenize(filename string, src []byte) ([]Token, error) {
	fset := gotoken.NewFileSet()
	file := fset.AddFile(filename, -1, len(src))

	var scanErr *Error
	var s scanner.Scanner
	s.Init(file, src, func(pos gotoken.Position, msg string) {
		if scanErr == nil {
			scanErr = &Error{Filename: filename, Pos: Pos{Line: pos.Line, Column: pos.Column}, Message: msg}
		}
	}, 0)

	stack := []*frame{{}}
	for {
		p, tok, lit := s.Scan()
		if scanErr != nil {
			return nil, scanErr
		}
		if tok == gotoken.EOF {
			break
		}

		position := file.Position(p)
		pos := Pos{Line: position.Line, Column: position.Column}
		top := stack[len(stack)-1]

		switch {
		case tok == gotoken.SEMICOLON && lit == "\n":
			continue
		case openDelim(tok) != NoDelim:
			stack = append(stack, &frame{
				group:    Token{Kind: Group, Delim: openDelim(tok), Pos: pos},
				innerOff: file.Offset(p) + 1,
			})
		case closeDelim(tok) != NoDelim:
			d := closeDelim(tok)
			if len(stack) == 1 {
				return nil, &Error{Filename: filename, Pos: pos, Message: fmt.Sprintf("unexpected %s", d.close())}
			}
			if top.group.Delim != d {
				return nil, &Error{
					Filename: filename,
					Pos:      pos,
					Message:  fmt.Sprintf("mismatched %s, %s opened at %s", d.close(), top.group.Delim.open(), top.group.Pos),
				}
			}
			g := top.group
			g.Children = top.children
			g.Inner = strings.TrimSpace(string(src[top.innerOff:file.Offset(p)]))
			stack = stack[:len(stack)-1]
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, g)
		case tok == gotoken.IDENT:
			top.children = append(top.children, Token{Kind: Ident, Text: lit, Pos: pos})
		case tok.IsKeyword():
			top.children = append(top.children, Token{Kind: Ident, Text: tok.String(), Pos: pos})
		case tok.IsLiteral():
			top.children = append(top.children, Token{Kind: Literal, Text: lit, LitKind: tok, Pos: pos})
		default:
			top.children = append(top.children, Token{Kind: Punct, Text: tok.String(), Pos: pos})
		}
	}

	if len(stack) > 1 {
		open := stack[len(stack)-1].group
		return nil, &Error{Filename: filename, Pos: open.Pos, Message: fmt.Sprintf("unclosed %s", open.Delim.open())}
	}
	return stack[0].children, nil
}

func openDelim(tok gotoken.Token) Delim {
	switch tok {
	case gotoken.LBRACE:
		return Brace
	case gotoken.LPAREN:
		return Paren
	case gotoken.LBRACK:
		return Bracket
	}
	return NoDelim
}

func closeDelim(tok gotoken.Token) Delim {
	switch tok {
	case gotoken.RBRACE:
		return Brace
	case gotoken.RPAREN:
		return Paren
	case gotoken.RBRACK:
		return Bracket
	}
	return NoDelim
}

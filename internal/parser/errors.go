package parser

import "fmt"

type ErrorKind int

const (
	MissingKeyword ErrorKind = iota + 1
	UnexpectedKeyword
	MissingLiteral
	MissingBlock
	EmptyScope
)

func (k ErrorKind) String() string {
	switch k {
	case MissingKeyword:
		return "MissingKeyword"
	case UnexpectedKeyword:
		return "UnexpectedKeyword"
	case MissingLiteral:
		return "MissingLiteral"
	case MissingBlock:
		return "MissingBlock"
	case EmptyScope:
		return "EmptyScope"
	}
	return "Unknown"
}

// Sentinels for errors.Is; only Kind is compared.
var (
	ErrMissingKeyword    = &ParseError{Kind: MissingKeyword}
	ErrUnexpectedKeyword = &ParseError{Kind: UnexpectedKeyword}
	ErrMissingLiteral    = &ParseError{Kind: MissingLiteral}
	ErrMissingBlock      = &ParseError{Kind: MissingBlock}
	ErrEmptyScope        = &ParseError{Kind: EmptyScope}
)

const (
	msgTopKeyword       = "expected describe or context keyword"
	msgContainerKeyword = "expected it, describe or context keyword"
	msgDescribeName     = "expected describe name string"
	msgItName           = "expected it name string"
	msgDescribeBlock    = "expected describe block"
	msgItBlock          = "expected it block"
	msgEmptyScope       = "no recognized keyword found in describe block"
)

func msgHookBlock(k Keyword) string {
	return fmt.Sprintf("expected %s block", k)
}

// ParseError is fatal; parsing stops at the first one.
type ParseError struct {
	Kind     ErrorKind
	Message  string
	Filename string
	Line     int
	Column   int
	// Found is the offending identifier for UnexpectedKeyword.
	Found string
}

func (e *ParseError) Error() string {
	switch {
	case e.Message == "":
		return e.Kind.String()
	case e.Line == 0:
		return e.Message
	case e.Filename != "":
		return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Message)
	default:
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
	}
}

func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}

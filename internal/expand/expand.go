// Package expand turns a parsed scope tree into Go test code.
//
// A top-level scope becomes a TestXxx function, a nested scope a t.Run
// namespace inside its parent, and a test case a t.Run leaf whose body is
// the scope's setup, the subject binding, the test body and the teardown, in
// that order. Hooks apply only to test cases declared directly in their
// scope; nested scopes do not inherit them.
package expand

import (
	"fmt"
	"go/scanner"
	gotoken "go/token"
	"strings"

	"github.com/chriserin/gospec/internal/naming"
	"github.com/chriserin/gospec/internal/parser"
)

// SubjectName is the variable a subject hook is bound to.
const SubjectName = "subject"

// Unit is one generated top-level test function.
type Unit struct {
	Name string
	Code string
}

// Expand renders every top-level scope in source order. It never fails.
func Expand(scopes []*parser.Scope) []Unit {
	units := make([]Unit, 0, len(scopes))
	for _, s := range scopes {
		var b strings.Builder
		name := naming.TestFunc(s.Name)
		fmt.Fprintf(&b, "func %s(t *testing.T) {\n", name)
		expandChildren(&b, s)
		b.WriteString("}\n")
		units = append(units, Unit{Name: name, Code: b.String()})
	}
	return units
}

func expandChildren(b *strings.Builder, s *parser.Scope) {
	for _, child := range s.Children {
		switch {
		case child.Scope != nil:
			fmt.Fprintf(b, "t.Run(%q, func(t *testing.T) {\n", child.Scope.Name)
			expandChildren(b, child.Scope)
			b.WriteString("})\n")
		case child.Test != nil:
			fmt.Fprintf(b, "t.Run(%q, func(t *testing.T) {\n", child.Test.Name)
			for _, stmt := range Body(s, child.Test) {
				b.WriteString(stmt)
				b.WriteString("\n")
			}
			b.WriteString("})\n")
		}
	}
}

// Body returns the statements of a test case's effective body. Each test
// gets its own copy, so the subject is evaluated once per test run.
func Body(s *parser.Scope, tc *parser.TestCase) []string {
	var stmts []string
	add := func(f parser.Fragment) {
		if f != "" {
			stmts = append(stmts, string(f))
		}
	}

	add(hookBody(s.Setup))
	if s.Subject != nil && strings.TrimSpace(string(s.Subject.Body)) != "" {
		stmts = append(stmts, subjectBinding(s.Subject.Body))
	}
	add(tc.Body)
	add(hookBody(s.Teardown))
	return stmts
}

func hookBody(h *parser.Hook) parser.Fragment {
	if h == nil {
		return ""
	}
	return h.Body
}

// subjectBinding also discards the subject so tests that never read it
// still compile. A fragment with a line comment gets the closing paren on
// its own line.
func subjectBinding(expr parser.Fragment) string {
	if hasLineComment(expr) {
		return fmt.Sprintf("%s := (\n%s\n)\n_ = %s", SubjectName, expr, SubjectName)
	}
	return fmt.Sprintf("%s := (%s)\n_ = %s", SubjectName, expr, SubjectName)
}

func hasLineComment(f parser.Fragment) bool {
	src := []byte(f)
	fset := gotoken.NewFileSet()
	var s scanner.Scanner
	s.Init(fset.AddFile("", -1, len(src)), src, nil, scanner.ScanComments)
	for {
		_, tok, lit := s.Scan()
		switch {
		case tok == gotoken.EOF:
			return false
		case tok == gotoken.COMMENT && strings.HasPrefix(lit, "//"):
			return true
		}
	}
}

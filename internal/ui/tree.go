package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/chriserin/gospec/internal/parser"
)

var (
	scopeStyle = lipgloss.NewStyle().Bold(true)
	hookStyle  = lipgloss.NewStyle().Faint(true)
)

// Tree prints scopes as an indented tree. Scopes show their hooks, tests
// their display names.
func Tree(w io.Writer, scopes []*parser.Scope) {
	for _, s := range scopes {
		fmt.Fprintln(w, scopeTree(s).String())
	}
}

func scopeTree(s *parser.Scope) *tree.Tree {
	t := tree.Root(scopeLabel(s))
	for _, c := range s.Children {
		switch {
		case c.Scope != nil:
			t.Child(scopeTree(c.Scope))
		case c.Test != nil:
			t.Child("it " + c.Test.Display)
		}
	}
	return t
}

func scopeLabel(s *parser.Scope) string {
	label := scopeStyle.Render("describe " + s.Display)
	var hooks []string
	if s.Setup != nil {
		hooks = append(hooks, "before")
	}
	if s.Subject != nil {
		hooks = append(hooks, "subject")
	}
	if s.Teardown != nil {
		hooks = append(hooks, "after")
	}
	if len(hooks) > 0 {
		label += " " + hookStyle.Render("["+strings.Join(hooks, " ")+"]")
	}
	return label
}

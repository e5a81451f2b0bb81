package parser

// Fragment is the verbatim interior of a block. It is never inspected.
type Fragment string

type Hook struct {
	Body Fragment
	Line int
}

// Scope is a describe or context node.
type Scope struct {
	Name     string // sanitized
	Display  string // literal text, unquoted
	Line     int
	Setup    *Hook
	Teardown *Hook
	Subject  *Hook
	Children []Container
}

// TestCase is an it node.
type TestCase struct {
	Name    string
	Display string
	Line    int
	Body    Fragment
}

// Container is exactly one of Scope or Test.
type Container struct {
	Scope *Scope
	Test  *TestCase
}

// HasHooks reports whether any hook is declared directly on s.
func (s *Scope) HasHooks() bool {
	return s.Setup != nil || s.Teardown != nil || s.Subject != nil
}

// Walk calls fn for every scope reachable from scopes, depth first in source
// order. path holds the names of the enclosing scopes including s.
func Walk(scopes []*Scope, fn func(path []string, s *Scope)) {
	for _, s := range scopes {
		walk(nil, s, fn)
	}
}

func walk(parent []string, s *Scope, fn func(path []string, s *Scope)) {
	path := append(parent[:len(parent):len(parent)], s.Name)
	fn(path, s)
	for _, c := range s.Children {
		if c.Scope != nil {
			walk(path, c.Scope, fn)
		}
	}
}

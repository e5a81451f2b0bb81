// Package spectree stores parsed scope trees. Trees are encoded as canonical
// CBOR so that equal trees always produce equal bytes, and the blake2b digest
// of that encoding fingerprints a spec file.
package spectree

import (
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"

	"github.com/chriserin/gospec/internal/parser"
)

// Version is bumped whenever Node changes shape.
const Version = 1

const (
	KindScope = "scope"
	KindTest  = "test"
)

type Tree struct {
	Version int    `cbor:"v"`
	Nodes   []Node `cbor:"n"`
}

type Node struct {
	Kind     string  `cbor:"k"`
	Name     string  `cbor:"n"`
	Display  string  `cbor:"d"`
	Line     int     `cbor:"l,omitempty"`
	Setup    *string `cbor:"before,omitempty"`
	Teardown *string `cbor:"after,omitempty"`
	Subject  *string `cbor:"subject,omitempty"`
	Body     string  `cbor:"body,omitempty"`
	Children []Node  `cbor:"c,omitempty"`
}

var encMode = func() cbor.EncMode {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("cbor encoder: %v", err))
	}
	return em
}()

// FromScopes converts a parse result into its storable form.
func FromScopes(scopes []*parser.Scope) Tree {
	t := Tree{Version: Version}
	for _, s := range scopes {
		t.Nodes = append(t.Nodes, fromScope(s))
	}
	return t
}

func fromScope(s *parser.Scope) Node {
	n := Node{
		Kind:     KindScope,
		Name:     s.Name,
		Display:  s.Display,
		Line:     s.Line,
		Setup:    hookText(s.Setup),
		Teardown: hookText(s.Teardown),
		Subject:  hookText(s.Subject),
	}
	for _, c := range s.Children {
		switch {
		case c.Scope != nil:
			n.Children = append(n.Children, fromScope(c.Scope))
		case c.Test != nil:
			n.Children = append(n.Children, Node{
				Kind:    KindTest,
				Name:    c.Test.Name,
				Display: c.Test.Display,
				Line:    c.Test.Line,
				Body:    string(c.Test.Body),
			})
		}
	}
	return n
}

func hookText(h *parser.Hook) *string {
	if h == nil {
		return nil
	}
	body := string(h.Body)
	return &body
}

// Scopes rebuilds the parser tree. Hook lines are not stored.
func (t Tree) Scopes() []*parser.Scope {
	scopes := make([]*parser.Scope, 0, len(t.Nodes))
	for _, n := range t.Nodes {
		scopes = append(scopes, n.scope())
	}
	return scopes
}

func (n Node) scope() *parser.Scope {
	s := &parser.Scope{
		Name:     n.Name,
		Display:  n.Display,
		Line:     n.Line,
		Setup:    hook(n.Setup),
		Teardown: hook(n.Teardown),
		Subject:  hook(n.Subject),
	}
	for _, c := range n.Children {
		switch c.Kind {
		case KindScope:
			s.Children = append(s.Children, parser.Container{Scope: c.scope()})
		case KindTest:
			s.Children = append(s.Children, parser.Container{Test: &parser.TestCase{
				Name:    c.Name,
				Display: c.Display,
				Line:    c.Line,
				Body:    parser.Fragment(c.Body),
			}})
		}
	}
	return s
}

func hook(body *string) *parser.Hook {
	if body == nil {
		return nil
	}
	return &parser.Hook{Body: parser.Fragment(*body)}
}

// Encode produces the canonical CBOR encoding of t.
func Encode(t Tree) ([]byte, error) {
	data, err := encMode.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("encoding tree: %w", err)
	}
	return data, nil
}

func Decode(data []byte) (Tree, error) {
	var t Tree
	if err := cbor.Unmarshal(data, &t); err != nil {
		return Tree{}, fmt.Errorf("decoding tree: %w", err)
	}
	if t.Version != Version {
		return Tree{}, fmt.Errorf("decoding tree: unsupported version %d", t.Version)
	}
	return t, nil
}

// Fingerprint hashes t with line numbers cleared, so moving code around
// without changing it keeps the fingerprint.
func Fingerprint(t Tree) (string, error) {
	stripped := Tree{Version: t.Version, Nodes: withoutLines(t.Nodes)}
	data, err := Encode(stripped)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func withoutLines(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		n.Line = 0
		n.Children = withoutLines(n.Children)
		out[i] = n
	}
	return out
}

// Count returns the number of scopes and tests in t.
func Count(t Tree) (scopes, tests int) {
	var visit func(nodes []Node)
	visit = func(nodes []Node) {
		for _, n := range nodes {
			switch n.Kind {
			case KindScope:
				scopes++
				visit(n.Children)
			case KindTest:
				tests++
			}
		}
	}
	visit(t.Nodes)
	return scopes, tests
}

package expand

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"sort"

	"golang.org/x/tools/imports"

	"github.com/chriserin/gospec/internal/parser"
)

const generatedHeader = "// Code generated by gospec. DO NOT EDIT."

type Options struct {
	Package string
	// Imports are added next to "testing".
	Imports []string
	// Source is recorded in the file header when set.
	Source string
	// Goimports runs the result through goimports, which adds missing and
	// drops unused imports. Filename anchors its package lookups.
	Goimports bool
	Filename  string
}

// Compile parses a spec file and renders the generated test file.
func Compile(filename string, src []byte, opts Options) ([]byte, error) {
	scopes, err := parser.ParseSource(filename, src)
	if err != nil {
		return nil, err
	}
	return Render(Expand(scopes), opts)
}

// Render assembles units into a formatted Go file. Errors come from bodies
// that are not valid Go.
func Render(units []Unit, opts Options) ([]byte, error) {
	if opts.Package == "" {
		return nil, errors.New("package name is required")
	}

	var b bytes.Buffer
	b.WriteString(generatedHeader + "\n")
	if opts.Source != "" {
		fmt.Fprintf(&b, "// Source: %s\n", opts.Source)
	}
	fmt.Fprintf(&b, "\npackage %s\n\n", opts.Package)

	b.WriteString("import (\n")
	for _, path := range importSet(opts.Imports) {
		fmt.Fprintf(&b, "\t%q\n", path)
	}
	b.WriteString(")\n")

	for _, u := range units {
		b.WriteString("\n")
		b.WriteString(u.Code)
	}

	out, err := format.Source(b.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated code: %w", err)
	}
	if opts.Goimports {
		out, err = imports.Process(opts.Filename, out, &imports.Options{
			Comments:  true,
			TabIndent: true,
			TabWidth:  8,
		})
		if err != nil {
			return nil, fmt.Errorf("running goimports: %w", err)
		}
	}
	return out, nil
}

func importSet(extra []string) []string {
	seen := map[string]bool{"testing": true}
	paths := []string{"testing"}
	for _, p := range extra {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Package config reads the optional project file, specs/gospec.json.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/mod/module"

	"github.com/chriserin/gospec/internal/naming"
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "schema://gospec.json"

type Config struct {
	// Package of the generated files. Derived from the output directory when
	// empty.
	Package string   `json:"package,omitempty"`
	Output  string   `json:"output,omitempty"`
	Imports []string `json:"imports,omitempty"`
	// Goimports runs generated files through goimports.
	Goimports bool `json:"goimports"`
}

func Default() Config {
	return Config{Output: "."}
}

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaURL)
})

// Load reads path over the defaults. A missing file yields Default().
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}

	schema, err := compileSchema()
	if err != nil {
		return cfg, fmt.Errorf("compiling config schema: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := schema.Validate(raw); err != nil {
		return cfg, fmt.Errorf("invalid %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks what the schema cannot: import paths.
func (c Config) Validate() error {
	for _, imp := range c.Imports {
		if err := module.CheckImportPath(imp); err != nil {
			return err
		}
	}
	return nil
}

func Write(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// PackageName returns the configured package, or one derived from the base
// name of dir.
func (c Config) PackageName(dir string) string {
	if c.Package != "" {
		return c.Package
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	name := naming.Sanitize(filepath.Base(abs))
	if name == "" || (name[0] >= '0' && name[0] <= '9') {
		name = "spec_" + name
	}
	return name
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gospec.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `{
  "package": "login",
  "output": "internal/login",
  "imports": ["github.com/stretchr/testify/assert"],
  "goimports": false
}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Package:   "login",
		Output:    "internal/login",
		Imports:   []string{"github.com/stretchr/testify/assert"},
		Goimports: false,
	}, cfg)
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{"package": "p"}`))
	require.NoError(t, err)
	assert.Equal(t, "p", cfg.Package)
	assert.Equal(t, ".", cfg.Output)
	assert.False(t, cfg.Goimports)
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeConfig(t, `{"pkg": "p"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")
}

func TestLoad_RejectsBadPackageName(t *testing.T) {
	_, err := Load(writeConfig(t, `{"package": "not a name"}`))
	assert.Error(t, err)
}

func TestLoad_RejectsWrongTypes(t *testing.T) {
	_, err := Load(writeConfig(t, `{"goimports": "yes"}`))
	assert.Error(t, err)
}

func TestLoad_RejectsBadImportPath(t *testing.T) {
	_, err := Load(writeConfig(t, `{"imports": ["has space"]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")
}

func TestLoad_MalformedJSON(t *testing.T) {
	_, err := Load(writeConfig(t, `{`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}

func TestWrite_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gospec.json")
	want := Config{Package: "p", Output: "out", Goimports: true}
	require.NoError(t, Write(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPackageName(t *testing.T) {
	assert.Equal(t, "fixed", Config{Package: "fixed"}.PackageName("whatever"))

	dir := filepath.Join(t.TempDir(), "Login-Flow")
	assert.Equal(t, "login_flow", Config{}.PackageName(dir))

	dir = filepath.Join(t.TempDir(), "2fa")
	assert.Equal(t, "spec_2fa", Config{}.PackageName(dir))
}

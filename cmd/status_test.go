package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runStatus(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunStatus(&buf))
	return buf.String()
}

func TestStatus_RequiresInit(t *testing.T) {
	inTempDir(t)
	var buf bytes.Buffer
	assert.EqualError(t, RunStatus(&buf), "run `gospec init` first")
}

func TestStatus_Empty(t *testing.T) {
	inTempDir(t)
	runInit(t)

	assert.Equal(t, "Files: 0\n", runStatus(t))
}

func TestStatus_Counts(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeSpec(t, "login.spec", loginSpec)
	writeSpec(t, "checkout.spec", `describe "checkout" { it "works" {} }`)
	runSync(t)

	out := runStatus(t)

	assert.Equal(t, "Files: 2\n"+
		"  scopes: 3\n"+
		"  tests: 3\n"+
		"  specs/checkout.spec: 1\n"+
		"  specs/login.spec: 2\n", out)
}

func TestStatus_FileWithoutTests(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeSpec(t, "hooks.spec", `describe "hooks" { before { setup() } }`)
	runSync(t)

	out := runStatus(t)

	assert.Contains(t, out, "  tests: 0\n")
	assert.Contains(t, out, "  specs/hooks.spec: 0\n")
}

func TestStatus_AfterRemoval(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeSpec(t, "login.spec", loginSpec)
	runSync(t)

	require.NoError(t, removeSpec("login.spec"))
	runSync(t)

	assert.Equal(t, "Files: 0\n", runStatus(t))
}

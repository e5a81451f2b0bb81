package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/gospec/internal/parser"
)

func TestStatusLines(t *testing.T) {
	var buf bytes.Buffer
	NewLine(&buf, "specs/a.spec")
	ChgLine(&buf, "specs/b.spec")
	TrkLine(&buf, "specs/c.spec")
	DelLine(&buf, "specs/d.spec")
	SummaryLine(&buf, 3)

	out := buf.String()
	assert.Contains(t, out, "new  specs/a.spec")
	assert.Contains(t, out, "chg  specs/b.spec")
	assert.Contains(t, out, "trk  specs/c.spec")
	assert.Contains(t, out, "del  specs/d.spec")
	assert.Contains(t, out, "synced 3 files")
}

func TestErrorAndHint(t *testing.T) {
	var buf bytes.Buffer
	ErrorLine(&buf, errors.New("boom"))
	HintLine(&buf, "describe")

	assert.Contains(t, buf.String(), "error: boom")
	assert.Contains(t, buf.String(), "hint: did you mean `describe`?")
}

func TestListRow_Pads(t *testing.T) {
	var buf bytes.Buffer
	ListRow(&buf, "a.spec", 3, "Test_a/x", 12)
	assert.Contains(t, buf.String(), "a.spec:3      Test_a/x")
}

func TestTree(t *testing.T) {
	scopes, err := parser.ParseSource("t.spec", []byte(`describe "login" {
	before { u := user() }
	subject { u.Login() }
	it "succeeds" {}
	context "bad password" { it "fails" {} }
}`))
	require.NoError(t, err)

	var buf bytes.Buffer
	Tree(&buf, scopes)
	out := buf.String()

	assert.Contains(t, out, "describe login [before subject]")
	assert.Contains(t, out, "it succeeds")
	assert.Contains(t, out, "describe bad password")
	assert.Contains(t, out, "it fails")
	assert.NotContains(t, out, "describe bad password [")
}

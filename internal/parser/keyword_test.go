package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chriserin/gospec/internal/lexer"
)

func TestLookupKeyword(t *testing.T) {
	assert.Equal(t, Describe, LookupKeyword("describe"))
	assert.Equal(t, Describe, LookupKeyword("context"))
	assert.Equal(t, Before, LookupKeyword("before"))
	assert.Equal(t, After, LookupKeyword("after"))
	assert.Equal(t, It, LookupKeyword("it"))
	assert.Equal(t, Subject, LookupKeyword("subject"))
	assert.Equal(t, Unmatched, LookupKeyword("Describe"))
	assert.Equal(t, Unmatched, LookupKeyword(""))
}

func TestKeyword_IsHook(t *testing.T) {
	assert.True(t, Before.IsHook())
	assert.True(t, After.IsHook())
	assert.True(t, Subject.IsHook())
	assert.False(t, Describe.IsHook())
	assert.False(t, It.IsHook())
	assert.False(t, Unmatched.IsHook())
}

func TestKeywordNames(t *testing.T) {
	assert.Equal(t, []string{"after", "before", "context", "describe", "it", "subject"}, KeywordNames())
}

func TestSuggest(t *testing.T) {
	assert.Equal(t, "describe", Suggest("descrbe"))
	assert.Equal(t, "before", Suggest("befor"))
	assert.Equal(t, "subject", Suggest("subjct"))
	assert.Empty(t, Suggest("it"))
	assert.Empty(t, Suggest("xyzzy"))
	assert.Empty(t, Suggest(""))
}

func TestCursor(t *testing.T) {
	c := newCursor([]lexer.Token{{Text: "a"}, {Text: "b"}})
	assert.Equal(t, "a", c.current.Text)
	assert.Equal(t, "b", c.peek.Text)

	c.advance()
	assert.Equal(t, "b", c.current.Text)
	assert.Nil(t, c.peek)
	assert.False(t, c.done())

	c.advance()
	assert.True(t, c.done())
	assert.Nil(t, c.peek)

	c.advance()
	assert.True(t, c.done())
}

func TestCursor_Empty(t *testing.T) {
	c := newCursor(nil)
	assert.True(t, c.done())
	assert.Nil(t, c.peek)
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestionFilter(t *testing.T) {
	f := NewSuggestionFilter(false)
	assert.True(t, f.ShouldInclude("total"))
	assert.False(t, f.ShouldInclude("total"))
	assert.True(t, f.ShouldInclude("Total"), "case sensitive by default")
}

func TestSuggestionFilterFoldCase(t *testing.T) {
	f := NewSuggestionFilter(true)
	assert.True(t, f.ShouldInclude("Total"))
	assert.False(t, f.ShouldInclude("total"))
	assert.False(t, f.ShouldInclude("TOTAL"))
}

func TestSuggestionFilterExclude(t *testing.T) {
	f := NewSuggestionFilter(false, "const", "let")
	assert.False(t, f.ShouldInclude("const"))
	assert.False(t, f.ShouldInclude("let"))
	assert.True(t, f.ShouldInclude("counter"))
}

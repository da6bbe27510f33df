package render

import (
	"strings"
	"testing"

	"github.com/bastiangx/codeserve/pkg/suggest"
	"github.com/stretchr/testify/assert"
)

var plain = Options{Color: false, DescriptionMax: 40}

func TestHeader(t *testing.T) {
	assert.Equal(t, "1 suggestion available", Header(1))
	assert.Equal(t, "4 suggestions available", Header(4))
}

func TestDropdownEmpty(t *testing.T) {
	assert.Empty(t, Dropdown(nil, 0, plain))
	assert.Empty(t, Dropdown(nil, 0, DefaultOptions()))
}

func TestDropdownSingleCategory(t *testing.T) {
	list := []suggest.Entry{
		{Text: "display", Kind: suggest.StyleProperty, Description: "Display type", Category: suggest.CategoryProperties},
		{Text: "direction", Kind: suggest.StyleProperty, Category: suggest.CategoryProperties},
	}
	want := strings.Join([]string{
		"2 suggestions available",
		"> display   [property] Display type ↵",
		"  direction [property]",
		Footer,
	}, "\n")
	assert.Equal(t, want, Dropdown(list, 0, plain))
}

func TestDropdownGroupsByFirstAppearance(t *testing.T) {
	list := []suggest.Entry{
		{Text: "const", Kind: suggest.Keyword, Description: "Constant declaration", Category: suggest.CategoryKeywords},
		{Text: "console.log", Kind: suggest.Callable, Description: "Log to console", Category: suggest.CategoryBuiltins},
		{Text: "counter", Kind: suggest.Identifier, Description: "User-defined variable", Category: suggest.CategoryVariables},
		{Text: "continue", Kind: suggest.Keyword, Category: suggest.CategoryKeywords},
		{Text: "x", Kind: suggest.Identifier},
	}
	want := strings.Join([]string{
		"5 suggestions available",
		"── JavaScript Keywords ──",
		"  const       [keyword] Constant declaration",
		"  continue    [keyword]",
		"── JavaScript Built-ins ──",
		"  console.log [function] Log to console",
		"── Your Variables ──",
		"> counter     [variable] User-defined variable ↵",
		"── Other ──",
		"  x           [variable]",
		Footer,
	}, "\n")
	assert.Equal(t, want, Dropdown(list, 2, plain))
}

func TestDropdownTruncatesDescription(t *testing.T) {
	list := []suggest.Entry{
		{Text: "a", Kind: suggest.Element, Description: "Anchor/link element", Category: suggest.CategoryTags},
	}
	out := Dropdown(list, 5, Options{Color: false, DescriptionMax: 6})
	assert.Contains(t, out, "  a [tag] Ancho…\n")
	assert.NotContains(t, out, "↵", "out of range selection marks nothing")
}

func TestDropdownColorKeepsText(t *testing.T) {
	list := []suggest.Entry{
		{Text: "div", Kind: suggest.Element, Description: "Generic container element", Category: suggest.CategoryTags},
	}
	out := Dropdown(list, 0, DefaultOptions())
	assert.Contains(t, out, "div")
	assert.Contains(t, out, "[tag]")
	assert.Contains(t, out, "Generic container element")
	assert.Contains(t, out, Footer)
}

package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(list []Entry) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.Text
	}
	return out
}

func TestExtractSymbols(t *testing.T) {
	got := ExtractSymbols("const total = 5;\nfunction render() {}")
	require.Len(t, got, 2)

	assert.Equal(t, Entry{
		Text:        "total",
		Kind:        Identifier,
		Description: "User-defined variable",
		InsertText:  "total",
		Category:    CategoryVariables,
	}, got[0])
	assert.Equal(t, Entry{
		Text:        "render",
		Kind:        Callable,
		Description: "User-defined function",
		InsertText:  "render()",
		Category:    CategoryFunctions,
	}, got[1])
}

func TestExtractSymbolsOrder(t *testing.T) {
	script := `function boot() {}
let count = 0;
const add = (a, b) => a + b;
var $el = null;
function tick() {}`

	got := ExtractSymbols(script)
	// variables, then functions, then arrow bindings
	assert.Equal(t, []string{"count", "add", "$el", "boot", "tick", "add"}, texts(got))
	assert.Equal(t, CategoryVariables, got[1].Category)
	assert.Equal(t, CategoryFunctions, got[5].Category)
	assert.Equal(t, "User-defined arrow function", got[5].Description)
	assert.Equal(t, "add()", got[5].InsertText)
}

func TestExtractSymbolsKeepsDuplicates(t *testing.T) {
	got := ExtractSymbols("let i = 0;\nlet i = 1;\nfor (let i = 0;;) {}")
	assert.Equal(t, []string{"i", "i", "i"}, texts(got))
}

func TestExtractSymbolsEdgeCases(t *testing.T) {
	testCases := []struct {
		name   string
		script string
		want   []string
	}{
		{"empty", "", []string{}},
		{"no declarations", "console.log('hi');", []string{}},
		{"keyword without name", "const = 5", []string{}},
		{"name starting with digit", "let 9lives = 1", []string{}},
		{"inside a word", "outlet value = 1", []string{"value"}},
		{"arrow with no parameters", "const go = () => 1", []string{"go", "go"}},
		{"async function", "async function load() {}", []string{"load"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, texts(ExtractSymbols(tc.script)))
		})
	}
}

func TestDedupeSymbols(t *testing.T) {
	script := "let i = 0;\nlet i = 1;\nlet I = 2;\nconst f = () => 1;\nfunction f() {}"
	got := DedupeSymbols(ExtractSymbols(script))
	assert.Equal(t, []string{"i", "I", "f", "f"}, texts(got))
	assert.Equal(t, CategoryVariables, got[2].Category)
	assert.Equal(t, CategoryFunctions, got[3].Category)
	assert.Equal(t, "User-defined function", got[3].Description)
}

package suggest

import (
	"regexp"

	"github.com/bastiangx/codeserve/internal/utils"
)

// Pattern scanning, not parsing: the expressions over- and under-match on
// unusual input and that is accepted.
var (
	variablePattern = regexp.MustCompile(`(?:let|const|var)\s+([a-zA-Z_$][a-zA-Z0-9_$]*)`)
	functionPattern = regexp.MustCompile(`function\s+([a-zA-Z_$][a-zA-Z0-9_$]*)`)
	arrowPattern    = regexp.MustCompile(`(?:let|const|var)\s+([a-zA-Z_$][a-zA-Z0-9_$]*)\s*=\s*\([^)]*\)\s*=>`)
)

// ExtractSymbols scans a script buffer for user declared names.
// Variables come first, then named functions, then arrow function bindings,
// each group in buffer order. Repeated declarations yield repeated entries.
func ExtractSymbols(script string) []Entry {
	var symbols []Entry

	for _, m := range variablePattern.FindAllStringSubmatch(script, -1) {
		symbols = append(symbols, Entry{
			Text:        m[1],
			Kind:        Identifier,
			Description: "User-defined variable",
			InsertText:  m[1],
			Category:    CategoryVariables,
		})
	}
	for _, m := range functionPattern.FindAllStringSubmatch(script, -1) {
		symbols = append(symbols, functionSymbol(m[1], "User-defined function"))
	}
	for _, m := range arrowPattern.FindAllStringSubmatch(script, -1) {
		symbols = append(symbols, functionSymbol(m[1], "User-defined arrow function"))
	}
	return symbols
}

func functionSymbol(name, desc string) Entry {
	return Entry{
		Text:        name,
		Kind:        Callable,
		Description: desc,
		InsertText:  name + "()",
		Category:    CategoryFunctions,
	}
}

// DedupeSymbols keeps the first entry of every (category, text) pair.
func DedupeSymbols(symbols []Entry) []Entry {
	filters := make(map[string]*utils.SuggestionFilter)
	out := symbols[:0:0]
	for _, s := range symbols {
		f, ok := filters[s.Category]
		if !ok {
			f = utils.NewSuggestionFilter(false)
			filters[s.Category] = f
		}
		if f.ShouldInclude(s.Text) {
			out = append(out, s)
		}
	}
	return out
}

// Package suggest is the core, providing the suggestion corpus, cursor context resolution,
// user symbol extraction and the prefix ranking for the three editor languages.
package suggest

// IRanker defines the interface for suggestion ranking engines
type IRanker interface {
	// Rank returns the ordered, capped suggestions for a partial word in a language
	Rank(lang Language, partial string, buffers BufferSet) []Entry

	// Fuzzy returns approximate matches for a partial word, capped at limit
	Fuzzy(lang Language, partial string, buffers BufferSet, limit int) []Entry

	// Stats returns statistics about the loaded corpus
	Stats() map[string]int
}

package utils

import (
	"strings"
)

// SuggestionFilter drops words that were already seen.
// Not safe for concurrent use.
type SuggestionFilter struct {
	seenWords map[string]bool
	foldCase  bool
}

// NewSuggestionFilter creates a filter. Words listed in exclude are treated as seen.
// With foldCase set, words differing only in case count as duplicates.
func NewSuggestionFilter(foldCase bool, exclude ...string) *SuggestionFilter {
	f := &SuggestionFilter{
		seenWords: make(map[string]bool, len(exclude)),
		foldCase:  foldCase,
	}
	for _, w := range exclude {
		f.seenWords[f.key(w)] = true
	}
	return f
}

// ShouldInclude reports whether word is new, and marks it as seen.
func (f *SuggestionFilter) ShouldInclude(word string) bool {
	k := f.key(word)
	if f.seenWords[k] {
		return false
	}
	f.seenWords[k] = true
	return true
}

func (f *SuggestionFilter) key(word string) string {
	if f.foldCase {
		return strings.ToLower(word)
	}
	return word
}

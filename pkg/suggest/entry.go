package suggest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLanguage is returned when a language tag can't be parsed.
var ErrUnknownLanguage = errors.New("unknown language")

// Language selects which buffer and which corpus tables are active.
type Language int

const (
	Markup Language = iota
	Stylesheet
	Script
)

// Languages lists every language in tab order.
var Languages = []Language{Markup, Stylesheet, Script}

func (l Language) String() string {
	switch l {
	case Markup:
		return "html"
	case Stylesheet:
		return "css"
	case Script:
		return "javascript"
	default:
		return fmt.Sprintf("Language(%d)", int(l))
	}
}

// ParseLanguage maps the tab names used by the editor to a Language.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "html", "markup":
		return Markup, nil
	case "css", "stylesheet":
		return Stylesheet, nil
	case "javascript", "js", "script":
		return Script, nil
	}
	return Markup, fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
}

// Kind is the semantic tag of an entry.
type Kind int

const (
	Element Kind = iota
	Attribute
	StyleProperty
	StyleValue
	Keyword
	Callable
	Identifier
)

var kindLabels = map[Kind]string{
	Element:       "tag",
	Attribute:     "attribute",
	StyleProperty: "property",
	StyleValue:    "value",
	Keyword:       "keyword",
	Callable:      "function",
	Identifier:    "variable",
}

// Label is the short badge shown next to an entry.
func (k Kind) Label() string {
	if label, ok := kindLabels[k]; ok {
		return label
	}
	return "other"
}

func (k Kind) String() string { return k.Label() }

// Entry is a single completion candidate.
type Entry struct {
	Text        string
	Kind        Kind
	Description string
	InsertText  string
	Category    string
}

// Insertion returns the text spliced into the buffer on acceptance.
func (e Entry) Insertion() string {
	if e.InsertText == "" {
		return e.Text
	}
	return e.InsertText
}

// BufferSet holds the three co-edited buffers.
type BufferSet struct {
	Markup     string
	Stylesheet string
	Script     string
}

// Get returns the buffer of a language.
func (b BufferSet) Get(lang Language) string {
	switch lang {
	case Stylesheet:
		return b.Stylesheet
	case Script:
		return b.Script
	default:
		return b.Markup
	}
}

// With returns a copy of the set with one buffer replaced.
func (b BufferSet) With(lang Language, text string) BufferSet {
	switch lang {
	case Stylesheet:
		b.Stylesheet = text
	case Script:
		b.Script = text
	default:
		b.Markup = text
	}
	return b
}

// CursorContext is the word under or before the cursor and its byte offsets.
type CursorContext struct {
	Word      string
	WordStart int
	WordEnd   int
}

package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveContext(t *testing.T) {
	testCases := []struct {
		name   string
		buffer string
		cursor int
		want   CursorContext
	}{
		{"mid statement", "const myVar = 1", 9, CursorContext{"myVar", 6, 11}},
		{"hyphenated property", "background-col", 14, CursorContext{"background-col", 0, 14}},
		{"cursor inside word", "document", 3, CursorContext{"document", 0, 8}},
		{"dollar and underscore", "x = $el_2", 9, CursorContext{"$el_2", 4, 9}},
		{"after space", "div ", 4, CursorContext{"", 4, 4}},
		{"between punctuation", "a(;)", 2, CursorContext{"", 2, 2}},
		{"empty buffer", "", 0, CursorContext{"", 0, 0}},
		{"word at start", "span>", 0, CursorContext{"span", 0, 4}},
		{"tag bracket", "<di", 3, CursorContext{"di", 1, 3}},
		{"cursor past end clamps", "color", 99, CursorContext{"color", 0, 5}},
		{"negative cursor clamps", "color", -3, CursorContext{"color", 0, 5}},
		{"dot splits words", "console.lo", 10, CursorContext{"lo", 8, 10}},
		{"non ascii is a boundary", "héllo", 6, CursorContext{"llo", 3, 6}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveContext(tc.buffer, tc.cursor)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.buffer[got.WordStart:got.WordEnd], got.Word)
		})
	}
}

func TestIsWordChar(t *testing.T) {
	for _, r := range "azAZ09_$-" {
		assert.True(t, IsWordChar(r), "%q", r)
	}
	for _, r := range " .(;:<>\"'\n\té" {
		assert.False(t, IsWordChar(r), "%q", r)
	}
}

func TestSplice(t *testing.T) {
	testCases := []struct {
		name       string
		buffer     string
		ctx        CursorContext
		entry      Entry
		wantText   string
		wantCursor int
	}{
		{
			name:       "property insert text",
			buffer:     "body { disp }",
			ctx:        CursorContext{"disp", 7, 11},
			entry:      Entry{Text: "display", InsertText: "display: "},
			wantText:   "body { display:  }",
			wantCursor: 16,
		},
		{
			name:       "falls back to text",
			buffer:     "ret",
			ctx:        CursorContext{"ret", 0, 3},
			entry:      Entry{Text: "return"},
			wantText:   "return",
			wantCursor: 6,
		},
		{
			name:       "replaces whole word around cursor",
			buffer:     "let x = docment;",
			ctx:        CursorContext{"docment", 8, 15},
			entry:      Entry{Text: "document.querySelector", InsertText: "document.querySelector()"},
			wantText:   "let x = document.querySelector();",
			wantCursor: 32,
		},
		{
			name:       "empty word inserts at cursor",
			buffer:     "a b",
			ctx:        CursorContext{"", 2, 2},
			entry:      Entry{Text: "div", InsertText: "<div></div>"},
			wantText:   "a <div></div>b",
			wantCursor: 13,
		},
		{
			name:       "out of range context clamps",
			buffer:     "ab",
			ctx:        CursorContext{"ab", 0, 40},
			entry:      Entry{Text: "abc"},
			wantText:   "abc",
			wantCursor: 3,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			text, cursor := Splice(tc.buffer, tc.ctx, tc.entry)
			assert.Equal(t, tc.wantText, text)
			assert.Equal(t, tc.wantCursor, cursor)

			ins := tc.entry.Insertion()
			assert.Equal(t, ins, text[cursor-len(ins):cursor])
		})
	}
}

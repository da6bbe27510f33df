package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorpusTables(t *testing.T) {
	c := NewCorpus()
	want := []struct {
		name string
		lang Language
		size int
	}{
		{CategoryTags, Markup, 26},
		{CategoryAttributes, Markup, 12},
		{CategoryProperties, Stylesheet, 34},
		{CategoryValues, Stylesheet, 21},
		{CategoryKeywords, Script, 23},
		{CategoryBuiltins, Script, 21},
	}

	tables := c.Tables()
	require.Len(t, tables, len(want))
	for i, w := range want {
		assert.Equal(t, w.name, tables[i].Name)
		assert.Equal(t, w.lang, tables[i].Language)
		assert.Equal(t, w.size, tables[i].Len())
		for _, e := range tables[i].Entries() {
			assert.Equal(t, w.name, e.Category, e.Text)
			assert.NotEmpty(t, e.Description, e.Text)
		}
	}

	assert.Equal(t, 38, c.Size(Markup))
	assert.Equal(t, 55, c.Size(Stylesheet))
	assert.Equal(t, 44, c.Size(Script))
}

func TestCorpusPoolOrder(t *testing.T) {
	c := NewCorpus()

	html := c.Pool(Markup)
	assert.Equal(t, "div", html[0].Text)
	assert.Equal(t, "class", html[26].Text)
	assert.Equal(t, Attribute, html[26].Kind)

	css := c.Pool(Stylesheet)
	assert.Equal(t, "display", css[0].Text)
	assert.Equal(t, "block", css[34].Text)

	js := c.Pool(Script)
	assert.Equal(t, "function", js[0].Text)
	assert.Equal(t, "console.log", js[23].Text)
	assert.Equal(t, "console.log()", js[23].Insertion())
}

func TestCorpusIsReadOnly(t *testing.T) {
	c := NewCorpus()
	pool := c.Pool(Markup)
	pool[0].Text = "changed"
	tables := c.Tables()
	tables[0].Name = "changed"
	entries := tables[1].Entries()
	entries[0].Text = "changed"

	assert.Equal(t, "div", c.At(Markup, 0).Text)
	assert.Equal(t, CategoryTags, c.Tables()[0].Name)
	assert.Equal(t, "class", c.Tables()[1].Entries()[0].Text)

	// every corpus owns its tables
	other := NewCorpus()
	assert.Equal(t, "div", other.At(Markup, 0).Text)
}

func TestCorpusMatch(t *testing.T) {
	c := NewCorpus()

	assert.ElementsMatch(t, []int{0, 35}, c.Match(Markup, "DI"))
	assert.Empty(t, c.Match(Markup, "zz"))
	assert.Len(t, c.Match(Markup, ""), 38)

	// equal texts in one pool share a key
	flex := c.Match(Stylesheet, "flex")
	assert.Len(t, flex, 3)
}

func TestInsertion(t *testing.T) {
	assert.Equal(t, "x", Entry{Text: "x"}.Insertion())
	assert.Equal(t, "x()", Entry{Text: "x", InsertText: "x()"}.Insertion())
}

func TestParseLanguage(t *testing.T) {
	testCases := []struct {
		in   string
		want Language
	}{
		{"html", Markup},
		{" HTML ", Markup},
		{"css", Stylesheet},
		{"javascript", Script},
		{"js", Script},
	}
	for _, tc := range testCases {
		got, err := ParseLanguage(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}

	_, err := ParseLanguage("python")
	assert.ErrorIs(t, err, ErrUnknownLanguage)
}

func TestBufferSet(t *testing.T) {
	b := BufferSet{}.With(Stylesheet, "a {}")
	assert.Equal(t, "a {}", b.Get(Stylesheet))
	assert.Empty(t, b.Get(Markup))
	assert.Empty(t, b.Get(Script))

	c := b.With(Script, "let x;")
	assert.Empty(t, b.Get(Script), "With returns a copy")
	assert.Equal(t, "let x;", c.Get(Script))
}

package suggest

import (
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"
)

// Table is one named group of static entries.
type Table struct {
	Name     string
	Language Language
	entries  []Entry
}

// Len returns the number of entries in the table.
func (t Table) Len() int { return len(t.entries) }

// Entries returns a copy of the table entries.
func (t Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Corpus is the read-only static suggestion data, built once at startup and
// shared by rankers. Nothing mutates it after NewCorpus returns.
type Corpus struct {
	tables []Table
	pools  map[Language][]Entry
	index  map[Language]*patricia.Trie
}

// NewCorpus builds the static tables and their per-language prefix index.
func NewCorpus() *Corpus {
	tables := []Table{
		{Name: CategoryTags, Language: Markup, entries: htmlTags()},
		{Name: CategoryAttributes, Language: Markup, entries: htmlAttributes()},
		{Name: CategoryProperties, Language: Stylesheet, entries: cssProperties()},
		{Name: CategoryValues, Language: Stylesheet, entries: cssValues()},
		{Name: CategoryKeywords, Language: Script, entries: jsKeywords()},
		{Name: CategoryBuiltins, Language: Script, entries: jsBuiltins()},
	}
	return newCorpus(tables)
}

func newCorpus(tables []Table) *Corpus {
	c := &Corpus{
		tables: tables,
		pools:  make(map[Language][]Entry, len(Languages)),
		index:  make(map[Language]*patricia.Trie, len(Languages)),
	}
	for _, t := range tables {
		c.pools[t.Language] = append(c.pools[t.Language], t.entries...)
	}
	for _, lang := range Languages {
		c.index[lang] = buildIndex(c.pools[lang])
	}
	return c
}

// Tables returns the table list in pool order.
func (c *Corpus) Tables() []Table {
	out := make([]Table, len(c.tables))
	copy(out, c.tables)
	return out
}

// Pool returns a copy of the static pool of a language in table order.
func (c *Corpus) Pool(lang Language) []Entry {
	pool := c.pools[lang]
	out := make([]Entry, len(pool))
	copy(out, pool)
	return out
}

// Size returns the static pool length of a language.
func (c *Corpus) Size(lang Language) int {
	return len(c.pools[lang])
}

// At returns the pool entry at a position.
func (c *Corpus) At(lang Language, pos int) Entry {
	return c.pools[lang][pos]
}

// Match returns pool positions whose text starts with prefix, case-insensitively.
func (c *Corpus) Match(lang Language, prefix string) []int {
	return SearchTrie(c.index[lang], strings.ToLower(prefix))
}

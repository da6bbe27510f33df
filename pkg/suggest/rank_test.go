package suggest

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRanker() *Ranker {
	return NewRanker(NewCorpus(), DefaultRankerOptions())
}

func TestRankPrefixInvariant(t *testing.T) {
	r := newTestRanker()
	corpus := r.Corpus()

	for _, lang := range Languages {
		for _, e := range corpus.Pool(lang) {
			for n := 1; n <= len(e.Text); n++ {
				partial := e.Text[:n]
				got := r.Rank(lang, partial, BufferSet{})
				require.NotEmpty(t, got, "%s %q", lang, partial)
				require.LessOrEqual(t, len(got), DefaultLimit)
				for _, s := range got {
					require.True(t, strings.HasPrefix(strings.ToLower(s.Text), strings.ToLower(partial)),
						"%s: %q does not start with %q", lang, s.Text, partial)
				}
			}
		}
	}
}

func TestRankOrdering(t *testing.T) {
	r := newTestRanker()

	testCases := []struct {
		name    string
		lang    Language
		partial string
		buffers BufferSet
		want    []string
	}{
		{
			name:    "exact match first",
			lang:    Markup,
			partial: "a",
			want:    []string{"a", "alt", "article", "aside"},
		},
		{
			name:    "byte order after exact",
			lang:    Markup,
			partial: "t",
			want:    []string{"table", "td", "th", "title", "tr", "type"},
		},
		{
			name:    "exact keyword before user symbols",
			lang:    Script,
			partial: "for",
			buffers: BufferSet{Script: "const forEach = 1;\nlet format = 2;"},
			want:    []string{"for", "forEach", "format"},
		},
		{
			name:    "case insensitive filter",
			lang:    Script,
			partial: "MATH.",
			want:    []string{"Math.ceil", "Math.floor", "Math.random", "Math.round"},
		},
		{
			name:    "user function and builtins",
			lang:    Script,
			partial: "set",
			buffers: BufferSet{Script: "function setup() {}"},
			want:    []string{"setInterval", "setTimeout", "setup"},
		},
		{
			name:    "mixed case symbols sort ignoring case",
			lang:    Script,
			partial: "it",
			buffers: BufferSet{Script: "const item = 1;\nconst Items = [];"},
			want:    []string{"item", "Items"},
		},
		{
			name:    "case only differences fall back to bytes",
			lang:    Script,
			partial: "va",
			buffers: BufferSet{Script: "let val = 1;\nlet Val = 2;"},
			want:    []string{"Val", "val", "var"},
		},
		{
			name:    "symbols only for script",
			lang:    Stylesheet,
			partial: "tot",
			buffers: BufferSet{Script: "let total = 1;"},
			want:    []string{},
		},
		{
			name:    "no match",
			lang:    Stylesheet,
			partial: "zzz",
			want:    []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, texts(r.Rank(tc.lang, tc.partial, tc.buffers)))
		})
	}
}

func TestRankEqualTextsKeepPoolOrder(t *testing.T) {
	r := newTestRanker()
	got := r.Rank(Stylesheet, "flex", BufferSet{})

	require.Equal(t, []string{"flex", "flex", "flex-direction"}, texts(got))
	assert.Equal(t, StyleProperty, got[0].Kind)
	assert.Equal(t, StyleValue, got[1].Kind)
}

func TestRankEmptyPartial(t *testing.T) {
	r := newTestRanker()
	for _, lang := range Languages {
		got := r.Rank(lang, "", BufferSet{Script: "let a = 1;"})
		assert.Equal(t, r.Corpus().Pool(lang)[:DefaultEmptyLimit], got, lang.String())
	}
}

func TestRankCap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&b, "let v%d = %d;\n", i, i)
	}
	buffers := BufferSet{Script: b.String()}

	got := newTestRanker().Rank(Script, "v", buffers)
	assert.Len(t, got, DefaultLimit)
	assert.Equal(t, "v0", got[0].Text)

	small := NewRanker(nil, RankerOptions{Limit: 3, EmptyLimit: 2})
	assert.Len(t, small.Rank(Script, "v", buffers), 3)
	assert.Len(t, small.Rank(Script, "", buffers), 2)
}

func TestRankDuplicateSymbols(t *testing.T) {
	buffers := BufferSet{Script: "let i = 0;\nlet i = 1;"}

	got := newTestRanker().Rank(Script, "i", buffers)
	assert.Equal(t, []string{"i", "i", "if", "import"}, texts(got))

	opts := DefaultRankerOptions()
	opts.DedupeSymbols = true
	got = NewRanker(nil, opts).Rank(Script, "i", buffers)
	assert.Equal(t, []string{"i", "if", "import"}, texts(got))
}

func TestNewRankerClampsOversizedCaps(t *testing.T) {
	r := NewRanker(nil, RankerOptions{Limit: 40, EmptyLimit: 25})
	assert.Equal(t, DefaultLimit, r.Options().Limit)
	assert.Equal(t, DefaultEmptyLimit, r.Options().EmptyLimit)

	var b strings.Builder
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&b, "let v%d = %d;\n", i, i)
	}
	buffers := BufferSet{Script: b.String()}
	assert.Len(t, r.Rank(Script, "v", buffers), DefaultLimit)
	assert.Len(t, r.Rank(Script, "", buffers), DefaultEmptyLimit)
}

func TestNewRankerDefaults(t *testing.T) {
	r := NewRanker(nil, RankerOptions{Limit: -1})
	assert.Equal(t, DefaultLimit, r.Options().Limit)
	assert.Equal(t, DefaultEmptyLimit, r.Options().EmptyLimit)
	assert.NotNil(t, r.Corpus())
}

func TestFuzzy(t *testing.T) {
	r := newTestRanker()

	got := r.Fuzzy(Stylesheet, "bgc", BufferSet{}, 3)
	require.NotEmpty(t, got)
	assert.Equal(t, "background-color", got[0].Text)

	got = r.Fuzzy(Script, "qsa", BufferSet{}, 0)
	require.NotEmpty(t, got)
	assert.Equal(t, "document.querySelectorAll", got[0].Text)

	got = r.Fuzzy(Script, "ttl", BufferSet{Script: "let total = 1;"}, 0)
	assert.Contains(t, texts(got), "total")
	assert.NotContains(t, texts(got), "const")

	got = r.Fuzzy(Markup, "", BufferSet{}, 100)
	assert.Len(t, got, DefaultLimit)
}

func TestStats(t *testing.T) {
	r := newTestRanker()
	r.Rank(Markup, "d", BufferSet{})
	r.Rank(Markup, "", BufferSet{})

	stats := r.Stats()
	assert.Equal(t, 2, stats["passes"])
	assert.Equal(t, 38, stats["html"])
	assert.Equal(t, 55, stats["css"])
	assert.Equal(t, 44, stats["javascript"])
	assert.Equal(t, DefaultLimit, stats["limit"])
	assert.Equal(t, DefaultEmptyLimit, stats["emptyLimit"])
}

// A Ranker is shared between the server and its controller, so ranking must
// hold up under concurrent typing.
func TestRankConcurrent(t *testing.T) {
	r := newTestRanker()
	patterns := [][]string{
		{"d", "di", "dis", "disp", "displ", "displa", "display"},
		{"b", "ba", "bac", "back", "background", "background-c"},
		{"c", "co", "con", "cons", "const"},
		{"M", "Ma", "Mat", "Math", "Math.", "Math.r"},
	}
	buffers := BufferSet{Script: "const counter = 0;\nfunction compute() {}"}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				for _, p := range patterns {
					for _, prefix := range p {
						for _, lang := range Languages {
							r.Rank(lang, prefix, buffers)
						}
					}
				}
			}
		}()
	}
	wg.Wait()

	total := 0
	for _, p := range patterns {
		total += len(p)
	}
	assert.Equal(t, 8*50*total*len(Languages), r.Stats()["passes"])
}

func BenchmarkRank(b *testing.B) {
	r := newTestRanker()
	buffers := BufferSet{Script: "const counter = 0;\nfunction compute() {}\nconst add = (a, b) => a + b;"}
	prefixes := []string{"c", "co", "con", "cons", "const"}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Rank(Script, prefixes[i%len(prefixes)], buffers)
	}
}

package suggest

import (
	"sort"
	"strings"
	"sync/atomic"

	"github.com/bastiangx/codeserve/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

const (
	DefaultLimit      = 15
	DefaultEmptyLimit = 10
)

// RankerOptions tune the result caps.
type RankerOptions struct {
	Limit         int
	EmptyLimit    int
	DedupeSymbols bool
}

// DefaultRankerOptions returns the stock caps.
func DefaultRankerOptions() RankerOptions {
	return RankerOptions{
		Limit:      DefaultLimit,
		EmptyLimit: DefaultEmptyLimit,
	}
}

// Ranker assembles, filters and orders candidates for one moment of typing.
// It holds no per-call state and may be shared.
type Ranker struct {
	corpus *Corpus
	opts   RankerOptions
	passes atomic.Int64
}

// NewRanker creates a ranker over a corpus. Non-positive caps fall back to
// defaults and caps above the defaults are clamped to them.
func NewRanker(corpus *Corpus, opts RankerOptions) *Ranker {
	if opts.Limit <= 0 || opts.Limit > DefaultLimit {
		opts.Limit = DefaultLimit
	}
	if opts.EmptyLimit <= 0 || opts.EmptyLimit > DefaultEmptyLimit {
		opts.EmptyLimit = DefaultEmptyLimit
	}
	if corpus == nil {
		corpus = NewCorpus()
	}
	return &Ranker{corpus: corpus, opts: opts}
}

// Options returns the caps in use.
func (r *Ranker) Options() RankerOptions { return r.opts }

// Corpus returns the static corpus the ranker reads.
func (r *Ranker) Corpus() *Corpus { return r.corpus }

// candidate remembers the pool position for tie breaks between equal texts.
type candidate struct {
	entry Entry
	fold  string
	pos   int
}

// Rank returns the suggestions for partial in lang.
//
// An empty partial returns the head of the pool unfiltered. Otherwise entries
// whose text starts with partial (ignoring case) are kept, exact matches are
// moved first, the rest ordered by text ignoring case (then by bytes), and the
// list is capped.
func (r *Ranker) Rank(lang Language, partial string, buffers BufferSet) []Entry {
	r.passes.Add(1)
	symbols := r.symbols(lang, buffers)
	static := r.corpus.Size(lang)

	if partial == "" {
		n := min(r.opts.EmptyLimit, static+len(symbols))
		out := make([]Entry, 0, n)
		for i := 0; i < static && len(out) < n; i++ {
			out = append(out, r.corpus.At(lang, i))
		}
		for i := 0; len(out) < n; i++ {
			out = append(out, symbols[i])
		}
		return out
	}

	var matches []candidate
	for _, pos := range r.corpus.Match(lang, partial) {
		e := r.corpus.At(lang, pos)
		matches = append(matches, candidate{entry: e, fold: strings.ToLower(e.Text), pos: pos})
	}
	for i, s := range symbols {
		if utils.HasPrefixIgnoreCase(s.Text, partial) {
			matches = append(matches, candidate{entry: s, fold: strings.ToLower(s.Text), pos: static + i})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		aExact := strings.EqualFold(a.entry.Text, partial)
		bExact := strings.EqualFold(b.entry.Text, partial)
		if aExact != bExact {
			return aExact
		}
		if a.fold != b.fold {
			return a.fold < b.fold
		}
		if a.entry.Text != b.entry.Text {
			return a.entry.Text < b.entry.Text
		}
		return a.pos < b.pos
	})

	if len(matches) > r.opts.Limit {
		matches = matches[:r.opts.Limit]
	}
	out := make([]Entry, len(matches))
	for i, m := range matches {
		out[i] = m.entry
	}
	log.Debug("ranked", "lang", lang, "partial", partial, "count", len(out))
	return out
}

// Fuzzy ranks the pool by fuzzy distance to partial. It backs the explicit
// fuzzy lookups of the server and CLI, never the typing flow.
func (r *Ranker) Fuzzy(lang Language, partial string, buffers BufferSet, limit int) []Entry {
	if limit <= 0 || limit > r.opts.Limit {
		limit = r.opts.Limit
	}
	pool := append(r.corpus.Pool(lang), r.symbols(lang, buffers)...)
	if partial == "" {
		return pool[:min(limit, len(pool))]
	}

	targets := make([]string, len(pool))
	for i, e := range pool {
		targets[i] = e.Text
	}
	ranks := fuzzy.RankFindFold(partial, targets)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	out := make([]Entry, 0, min(limit, len(ranks)))
	for _, rk := range ranks {
		if len(out) == limit {
			break
		}
		out = append(out, pool[rk.OriginalIndex])
	}
	return out
}

// Stats returns corpus sizes and the number of ranking passes served.
func (r *Ranker) Stats() map[string]int {
	stats := map[string]int{
		"limit":      r.opts.Limit,
		"emptyLimit": r.opts.EmptyLimit,
		"passes":     int(r.passes.Load()),
	}
	for _, lang := range Languages {
		stats[lang.String()] = r.corpus.Size(lang)
	}
	return stats
}

func (r *Ranker) symbols(lang Language, buffers BufferSet) []Entry {
	if lang != Script {
		return nil
	}
	symbols := ExtractSymbols(buffers.Script)
	if r.opts.DedupeSymbols {
		symbols = DedupeSymbols(symbols)
	}
	return symbols
}

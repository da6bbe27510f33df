package suggest

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// buildIndex inserts every pool entry into a trie keyed by its lowercased text.
// Items are the pool positions sharing that key, in pool order.
func buildIndex(pool []Entry) *patricia.Trie {
	trie := patricia.NewTrie()
	for i, e := range pool {
		key := patricia.Prefix(strings.ToLower(e.Text))
		if item := trie.Get(key); item != nil {
			trie.Set(key, append(item.([]int), i))
			continue
		}
		trie.Insert(key, []int{i})
	}
	return trie
}

// SearchTrie returns the pool positions whose key starts with lowerPrefix.
// The order follows trie traversal, callers sort the result.
func SearchTrie(trie *patricia.Trie, lowerPrefix string) []int {
	if trie == nil {
		return []int{}
	}

	var positions []int
	err := trie.VisitSubtree(patricia.Prefix(lowerPrefix), func(p patricia.Prefix, item patricia.Item) error {
		switch v := item.(type) {
		case []int:
			positions = append(positions, v...)
		default:
			log.Errorf("Unknown item type: %T for key %s", item, p)
		}
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
	}
	return positions
}

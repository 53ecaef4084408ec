package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/sessionbrew/internal/domain"
)

// Index implements sahilm/fuzzy.Source over flattened library labels
type Index struct {
	entries     []Entry
	lowerLabels []string // Pre-computed lowercase labels
}

// NewIndex flattens the tree into a searchable index
func NewIndex(nodes []domain.LibraryNode) *Index {
	entries := Flatten(nodes)
	lower := make([]string, len(entries))
	for i, e := range entries {
		lower[i] = strings.ToLower(e.Node.Label)
	}
	return &Index{entries: entries, lowerLabels: lower}
}

// String returns the lowercase label at index i (implements fuzzy.Source)
func (idx *Index) String(i int) string { return idx.lowerLabels[i] }

// Len returns the number of entries (implements fuzzy.Source)
func (idx *Index) Len() int { return len(idx.entries) }

// Entries returns every entry in display order
func (idx *Index) Entries() []Entry {
	return idx.entries
}

// Filter returns entries whose label fuzzily matches query, best first.
// An empty query returns nil.
func (idx *Index) Filter(query string) []Result {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, idx)
	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Entry:          idx.entries[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}

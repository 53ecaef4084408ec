// Package search finds library nodes by name.
//
// The TUI filters the library pane with an incremental Index (sahilm/fuzzy);
// the CLI ranks whole-library lookups with Rank (lithammer/fuzzysearch).
package search

import (
	"strings"

	"github.com/mmcdole/sessionbrew/internal/domain"
)

// Entry is a library node flattened out of the tree
type Entry struct {
	Node  domain.LibraryNode
	Trail []string // Labels of the enclosing folders, outermost first
}

// Depth returns the nesting level of the entry (0 for top-level nodes)
func (e Entry) Depth() int {
	return len(e.Trail)
}

// Location returns the folder trail joined for display
func (e Entry) Location() string {
	return strings.Join(e.Trail, " / ")
}

// Flatten lists every node of the tree in display (pre-)order
func Flatten(nodes []domain.LibraryNode) []Entry {
	var out []Entry
	var walk func(nodes []domain.LibraryNode, trail []string)
	walk = func(nodes []domain.LibraryNode, trail []string) {
		for _, n := range nodes {
			out = append(out, Entry{Node: n, Trail: trail})
			if len(n.Children) > 0 {
				next := make([]string, len(trail)+1)
				copy(next, trail)
				next[len(trail)] = n.Label
				walk(n.Children, next)
			}
		}
	}
	walk(nodes, nil)
	return out
}

// Result is a matched entry
type Result struct {
	Entry
	MatchedIndexes []int // Character positions in the label (for highlighting)
	Score          int
}

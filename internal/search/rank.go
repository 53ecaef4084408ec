package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/sessionbrew/internal/domain"
)

// Rank finds nodes whose label contains the characters of query in order
// (case and accent insensitive), closest first. Folders can be limited out
// with filesOnly. limit <= 0 returns every match.
func Rank(nodes []domain.LibraryNode, query string, filesOnly bool, limit int) []Result {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	entries := Flatten(nodes)
	if filesOnly {
		files := entries[:0:0]
		for _, e := range entries {
			if !e.Node.IsFolder() {
				files = append(files, e)
			}
		}
		entries = files
	}

	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.Node.Label
	}

	ranks := fuzzy.RankFindNormalizedFold(query, labels)
	sort.Stable(ranks)

	if limit > 0 && len(ranks) > limit {
		ranks = ranks[:limit]
	}
	results := make([]Result, len(ranks))
	for i, r := range ranks {
		results[i] = Result{Entry: entries[r.OriginalIndex], Score: r.Distance}
	}
	return results
}

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/sessionbrew/internal/domain"
)

func tree() []domain.LibraryNode {
	return []domain.LibraryNode{
		{Label: "Onboarding", Children: []domain.LibraryNode{
			{Label: "Welcome.pptx", Type: "pptx"},
			{Label: "Safety", Children: []domain.LibraryNode{
				{Label: "Fire drill.pdf", Type: "pdf"},
			}},
		}},
		{Label: "Pricing.xlsx", Type: "xlsx"},
	}
}

func labels(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Node.Label
	}
	return out
}

func TestFlatten(t *testing.T) {
	entries := Flatten(tree())
	require.Len(t, entries, 5)

	assert.Equal(t, "Onboarding", entries[0].Node.Label)
	assert.Equal(t, 0, entries[0].Depth())
	assert.Equal(t, "Fire drill.pdf", entries[3].Node.Label)
	assert.Equal(t, []string{"Onboarding", "Safety"}, entries[3].Trail)
	assert.Equal(t, "Onboarding / Safety", entries[3].Location())
	assert.Equal(t, "Pricing.xlsx", entries[4].Node.Label)
	assert.Empty(t, entries[4].Trail)
}

func TestIndexFilter(t *testing.T) {
	idx := NewIndex(tree())
	assert.Equal(t, 5, idx.Len())

	assert.Nil(t, idx.Filter("   "))

	results := idx.Filter("FIRE")
	require.NotEmpty(t, results)
	assert.Equal(t, "Fire drill.pdf", results[0].Node.Label)
	assert.Equal(t, []int{0, 1, 2, 3}, results[0].MatchedIndexes)

	assert.Empty(t, idx.Filter("zzz"))
}

func TestRank(t *testing.T) {
	results := Rank(tree(), "pr", false, 0)
	assert.Equal(t, []string{"Pricing.xlsx"}, labels(results))

	results = Rank(tree(), "o", false, 0)
	assert.Contains(t, labels(results), "Onboarding")

	results = Rank(tree(), "o", true, 0)
	assert.NotContains(t, labels(results), "Onboarding")

	results = Rank(tree(), "e", false, 1)
	assert.Len(t, results, 1)

	assert.Nil(t, Rank(tree(), "", false, 0))
}

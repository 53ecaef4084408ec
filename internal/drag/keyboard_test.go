package drag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNudgeItemAcrossSections(t *testing.T) {
	c := NewController(nil)
	require.NoError(t, c.Start(fixture(), ItemSubject{ID: "a2"}))

	steps := []struct {
		delta   int
		changed bool
		section string
		want    []string
	}{
		{+1, true, "A", []string{"a1", "a3", "a2"}},
		{+1, true, "B", []string{"a2", "b1", "b2"}},
		{+1, true, "B", []string{"b1", "a2", "b2"}},
		{+1, true, "B", []string{"b1", "b2", "a2"}},
		{+1, true, "C", []string{"a2"}},
		{+1, false, "C", []string{"a2"}}, // outro is locked
		{-1, true, "B", []string{"b1", "b2", "a2"}},
	}

	for i, st := range steps {
		changed, err := c.Nudge(st.delta)
		require.NoError(t, err)
		assert.Equal(t, st.changed, changed, "step %d", i)
		assert.Equal(t, st.want, items(t, c.Preview(), st.section), "step %d", i)
	}

	got, err := c.Commit()
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "b2", "a2"}, items(t, got, "B"))
	assert.Equal(t, []string{"a1", "a3"}, items(t, got, "A"))
}

func TestNudgeItemStopsAtLeadSentinel(t *testing.T) {
	c := NewController(nil)
	require.NoError(t, c.Start(fixture(), ItemSubject{ID: "a1"}))

	changed, err := c.Nudge(-1)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, fixture(), c.Preview())
}

func TestNudgeSection(t *testing.T) {
	c := NewController(nil)
	require.NoError(t, c.Start(fixture(), SectionSubject{ID: "B"}))

	changed, err := c.Nudge(-1)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"intro", "B", "A", "C", "outro"}, order(c.Preview()))

	changed, err = c.Nudge(-1)
	require.NoError(t, err)
	assert.False(t, changed, "cannot pass the leading sentinel")

	got := c.Cancel()
	assert.Equal(t, fixture(), got)
}

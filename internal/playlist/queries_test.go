package playlist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmcdole/sessionbrew/internal/domain"
)

func TestGapToAbsolute(t *testing.T) {
	p := fixture() // intro, A, B, C, outro

	assert.Equal(t, 1, GapToAbsolute(p, 0))
	assert.Equal(t, 2, GapToAbsolute(p, 1))
	assert.Equal(t, 4, GapToAbsolute(p, 3))
	assert.Equal(t, 4, GapToAbsolute(p, 9))
	assert.Equal(t, 1, GapToAbsolute(p, -2))

	bare := domain.Playlist{Sections: []domain.Section{section("A", false), section("B", false)}}
	assert.Equal(t, 0, GapToAbsolute(bare, 0))
	assert.Equal(t, 2, GapToAbsolute(bare, 2))
}

func TestVisibleSections(t *testing.T) {
	assert.Len(t, VisibleSections(fixture()), 3)

	empty := domain.NewPlaylist(domain.NewSequence("s"), domain.PlaylistOptions{})
	assert.Empty(t, VisibleSections(empty))
	lo, hi := InsertBounds(empty)
	assert.Equal(t, 1, lo)
	assert.Equal(t, 1, hi)
}

func TestFindItem(t *testing.T) {
	sec, idx, ok := FindItem(fixture(), "a3")
	assert.True(t, ok)
	assert.Equal(t, "A", sec)
	assert.Equal(t, 2, idx)

	_, _, ok = FindItem(fixture(), "missing")
	assert.False(t, ok)
}

func TestDefaultTarget(t *testing.T) {
	id, ok := DefaultTarget(fixture())
	assert.True(t, ok)
	assert.Equal(t, "A", id)

	p := fixture()
	p.Sections[1].Locked = true
	id, ok = DefaultTarget(p)
	assert.True(t, ok)
	assert.Equal(t, "B", id)

	_, ok = DefaultTarget(domain.NewPlaylist(domain.NewSequence("s"), domain.PlaylistOptions{}))
	assert.False(t, ok)
}

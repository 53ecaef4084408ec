package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/sessionbrew/internal/domain"
)

func sampleTree() []domain.LibraryNode {
	return []domain.LibraryNode{
		{Key: "/lib/Basics", Label: "Basics", Data: "/lib/Basics", Children: []domain.LibraryNode{
			{Key: "/lib/Basics/welcome.pptx", Label: "welcome.pptx", Data: "/lib/Basics/welcome.pptx", Type: "pptx"},
		}},
	}
}

func stores(t *testing.T) map[string]*LibraryStore {
	t.Helper()
	disk, err := NewLibraryStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { disk.Close() })

	mem, err := NewLibraryStore("")
	require.NoError(t, err)

	return map[string]*LibraryStore{"bolt": disk, "memory": mem}
}

func TestTreeRoundTripAndFreshness(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok := s.GetTree("/lib")
			assert.False(t, ok)
			assert.False(t, s.IsValid("/lib", 1))

			require.NoError(t, s.SaveTree("/lib/", sampleTree(), 100))

			got, ok := s.GetTree("/lib")
			require.True(t, ok)
			assert.Equal(t, sampleTree(), got)

			assert.True(t, s.IsValid("/lib", 100))
			assert.True(t, s.IsValid("/lib", 99))
			assert.False(t, s.IsValid("/lib", 101))
		})
	}
}

func TestResolutions(t *testing.T) {
	files := []domain.FileDescriptor{{Name: "a.pdf", Path: "/lib/m/a.pdf", Type: "pdf"}}

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.SaveResolution("/lib/m", files))
			require.NoError(t, s.SaveResolution("/lib/empty", nil))
			require.NoError(t, s.SaveResolution("/other/x", files))

			got, ok := s.GetResolution("/lib/m")
			require.True(t, ok)
			assert.Equal(t, files, got)

			got, ok = s.GetResolution("/lib/empty")
			require.True(t, ok, "empty resolutions are cached too")
			assert.Empty(t, got)

			require.NoError(t, s.SaveTree("/lib", sampleTree(), 1))
			s.InvalidateTree("/lib")

			_, ok = s.GetTree("/lib")
			assert.False(t, ok)
			_, ok = s.GetResolution("/lib/m")
			assert.False(t, ok)
			_, ok = s.GetResolution("/other/x")
			assert.True(t, ok, "resolutions outside the root survive")
		})
	}
}

func TestInvalidateAll(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.SaveTree("/lib", sampleTree(), 1))
			require.NoError(t, s.SaveResolution("/lib/m", nil))

			s.InvalidateAll()

			_, ok := s.GetTree("/lib")
			assert.False(t, ok)
			_, ok = s.GetResolution("/lib/m")
			assert.False(t, ok)
			assert.Zero(t, s.Stats()["trees"])

			// Still usable afterwards
			require.NoError(t, s.SaveResolution("/lib/m", nil))
			assert.Equal(t, 1, s.Stats()["resolutions"])
		})
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewLibraryStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.SaveTree("/lib", sampleTree(), 42))
	require.NoError(t, s.Close())

	s, err = NewLibraryStore(dir)
	require.NoError(t, err)
	defer s.Close()

	got, ok := s.GetTree("/lib")
	require.True(t, ok)
	assert.Equal(t, sampleTree(), got)
	assert.True(t, s.IsValid("/lib", 42))
}

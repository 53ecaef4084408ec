package titleedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/sessionbrew/internal/domain"
)

type recordingRenamer struct {
	calls [][2]string
	err   error
}

func (r *recordingRenamer) RenameSection(sectionID, title string) error {
	r.calls = append(r.calls, [2]string{sectionID, title})
	return r.err
}

func TestCommitRenames(t *testing.T) {
	var e Editor
	require.NoError(t, e.Begin(domain.Section{ID: "s1", Title: "Basics"}))
	assert.True(t, e.Editing())
	assert.Equal(t, "Basics", e.Draft())

	e.SetDraft("  Advanced  ")
	r := &recordingRenamer{}
	renamed, err := e.Commit(r)
	require.NoError(t, err)
	assert.True(t, renamed)
	assert.Equal(t, [][2]string{{"s1", "Advanced"}}, r.calls)
	assert.False(t, e.Editing())
}

func TestCommitBlankReverts(t *testing.T) {
	for _, draft := range []string{"", "   ", "Basics"} {
		var e Editor
		require.NoError(t, e.Begin(domain.Section{ID: "s1", Title: "Basics"}))
		e.SetDraft(draft)

		r := &recordingRenamer{}
		renamed, err := e.Commit(r)
		require.NoError(t, err)
		assert.False(t, renamed)
		assert.Empty(t, r.calls, "draft %q", draft)
		assert.False(t, e.Editing())
	}
}

func TestBeginLockedRefused(t *testing.T) {
	var e Editor
	err := e.Begin(domain.Section{ID: "intro", Title: "Introduction", Locked: true})
	require.ErrorIs(t, err, domain.ErrLockedSection)
	assert.False(t, e.Editing())

	e.SetDraft("ignored")
	assert.Empty(t, e.Draft())
}

func TestCancelDiscardsDraft(t *testing.T) {
	var e Editor
	require.NoError(t, e.Begin(domain.Section{ID: "s1", Title: "Basics"}))
	e.SetDraft("Other")
	e.Cancel()

	assert.False(t, e.Editing())
	r := &recordingRenamer{}
	renamed, err := e.Commit(r)
	require.NoError(t, err)
	assert.False(t, renamed)
	assert.Empty(t, r.calls)
}

func TestCommitPropagatesRenameError(t *testing.T) {
	var e Editor
	require.NoError(t, e.Begin(domain.Section{ID: "s1", Title: "Basics"}))
	e.SetDraft("New")

	_, err := e.Commit(&recordingRenamer{err: domain.ErrLockedSection})
	require.ErrorIs(t, err, domain.ErrLockedSection)
	assert.False(t, e.Editing())
}

package drop

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/sessionbrew/internal/domain"
	"github.com/mmcdole/sessionbrew/internal/hittest"
	"github.com/mmcdole/sessionbrew/internal/notify"
)

// fakeResolver returns canned files and records the data it was asked for
type fakeResolver struct {
	files []domain.FileDescriptor
	err   error
	calls []string
}

func (f *fakeResolver) Resolve(_ context.Context, data json.RawMessage) ([]domain.FileDescriptor, error) {
	f.calls = append(f.calls, string(data))
	return f.files, f.err
}

func twoFiles() []domain.FileDescriptor {
	return []domain.FileDescriptor{
		{Name: "z-intro.pptx", Path: "/lib/m/z-intro.pptx", Type: "pptx"},
		{Name: "a-handout.pdf", Path: "/lib/m/a-handout.pdf", Type: "pdf"},
	}
}

// session returns [Intro(locked), A, B, Outro(locked)]
func session() domain.Playlist {
	return domain.Playlist{Sections: []domain.Section{
		{ID: "intro", Title: "Introduction", Locked: true, Items: []domain.Item{}},
		{ID: "A", Title: "A", Items: []domain.Item{{ID: "a1", Name: "a1"}}},
		{ID: "B", Title: "B", Items: []domain.Item{}},
		{ID: "outro", Title: "Outro", Locked: true, Items: []domain.Item{}},
	}}
}

func payload(label, data string) []byte {
	raw, _ := json.Marshal(map[string]any{"label": label, "data": data})
	return raw
}

func newAdapter(r domain.DropResolver) (*Adapter, *notify.History) {
	sink := notify.NewHistory(0)
	return NewAdapter(r, domain.NewSequence("n"), sink, nil), sink
}

func order(p domain.Playlist) []string {
	ids := make([]string, len(p.Sections))
	for i, s := range p.Sections {
		ids[i] = s.ID
	}
	return ids
}

func TestDropIntoGapCreatesSection(t *testing.T) {
	res := &fakeResolver{files: twoFiles()}
	a, sink := newAdapter(res)

	got, changed, err := a.Drop(context.Background(), session(), payload("Module C", "/lib/m"), hittest.GapTarget{Index: 1})
	require.NoError(t, err)
	require.True(t, changed)

	// [Intro, A, C, B, Outro]
	require.Len(t, got.Sections, 5)
	assert.Equal(t, []string{"intro", "A", "n3", "B", "outro"}, order(got))

	c := got.Sections[2]
	assert.Equal(t, "Module C", c.Title)
	assert.False(t, c.Locked)
	require.Len(t, c.Items, 2)
	assert.Equal(t, "z-intro.pptx", c.Items[0].Name)
	assert.Equal(t, "a-handout.pdf", c.Items[1].Name)
	assert.Equal(t, "pdf", c.Items[1].FileType)
	assert.NotEqual(t, c.Items[0].ID, c.Items[1].ID)

	assert.Equal(t, []string{`"/lib/m"`}, res.calls)

	last, ok := sink.Last()
	require.True(t, ok)
	assert.Equal(t, domain.SeveritySuccess, last.Severity)
	assert.Contains(t, last.Detail, "2 items")
	assert.Contains(t, last.Detail, "Module C")
}

func TestDropGapIndexes(t *testing.T) {
	tests := []struct {
		gap  int
		want []string
	}{
		{0, []string{"intro", "n3", "A", "B", "outro"}},
		{2, []string{"intro", "A", "B", "n3", "outro"}},
		{7, []string{"intro", "A", "B", "n3", "outro"}},
	}
	for _, tt := range tests {
		a, _ := newAdapter(&fakeResolver{files: twoFiles()})
		got, _, err := a.Drop(context.Background(), session(), payload("X", "x"), hittest.GapTarget{Index: tt.gap})
		require.NoError(t, err)
		assert.Equal(t, tt.want, order(got), "gap %d", tt.gap)
	}
}

func TestDropIntoSectionAppends(t *testing.T) {
	a, sink := newAdapter(&fakeResolver{files: twoFiles()})

	got, changed, err := a.Drop(context.Background(), session(), payload("m", "/lib/m"), hittest.SectionTarget{SectionID: "A"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, order(session()), order(got))

	sec, _ := got.Section("A")
	require.Len(t, sec.Items, 3)
	assert.Equal(t, "a1", sec.Items[0].ID)
	assert.Equal(t, "z-intro.pptx", sec.Items[1].Name)

	last, _ := sink.Last()
	assert.Equal(t, domain.SeveritySuccess, last.Severity)
}

func TestDropOnBackgroundGoesBeforeOutro(t *testing.T) {
	a, _ := newAdapter(&fakeResolver{files: twoFiles()})

	got, changed, err := a.Drop(context.Background(), session(), payload("Extra", "x"), hittest.BackgroundTarget{})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"intro", "A", "B", "n3", "outro"}, order(got))
	assert.Equal(t, "Extra", got.Sections[3].Title)
}

func TestDropOnLockedSectionRejected(t *testing.T) {
	for _, id := range []string{"intro", "outro"} {
		a, sink := newAdapter(&fakeResolver{files: twoFiles()})

		got, changed, err := a.Drop(context.Background(), session(), payload("m", "x"), hittest.SectionTarget{SectionID: id})
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, session(), got)

		last, ok := sink.Last()
		require.True(t, ok)
		assert.Equal(t, domain.SeverityWarn, last.Severity)
		assert.Equal(t, "Cannot drop here", last.Summary)
	}
}

func TestDropResolvingToNothing(t *testing.T) {
	a, sink := newAdapter(&fakeResolver{})

	got, changed, err := a.Drop(context.Background(), session(), payload("Empty", "/lib/empty"), hittest.GapTarget{Index: 1})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, session(), got)

	notices := sink.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, domain.SeverityInfo, notices[0].Severity)
}

func TestDropResolverFailure(t *testing.T) {
	a, sink := newAdapter(&fakeResolver{err: errors.New("disk unplugged")})

	got, changed, err := a.Drop(context.Background(), session(), payload("m", "x"), hittest.GapTarget{Index: 0})
	require.ErrorIs(t, err, domain.ErrResolutionFailure)
	assert.False(t, changed)
	assert.Equal(t, session(), got)

	last, ok := sink.Last()
	require.True(t, ok)
	assert.Equal(t, domain.SeverityError, last.Severity)
	assert.Contains(t, last.Detail, "disk unplugged")
}

func TestDropMalformedPayloadIgnored(t *testing.T) {
	res := &fakeResolver{files: twoFiles()}
	a, sink := newAdapter(res)

	for _, raw := range []string{`not json`, `{"label":"x"}`, `{"label":"x","data":null}`} {
		got, changed, err := a.Drop(context.Background(), session(), []byte(raw), hittest.BackgroundTarget{})
		require.ErrorIs(t, err, domain.ErrMalformedPayload)
		assert.False(t, changed)
		assert.Equal(t, session(), got)
	}
	assert.Empty(t, res.calls)
	assert.Empty(t, sink.Notices())
	assert.False(t, a.Busy())
}

func TestApplyAgainstChangedPlaylist(t *testing.T) {
	a, sink := newAdapter(&fakeResolver{files: twoFiles()})

	pending, err := a.Begin(payload("m", "x"), hittest.SectionTarget{SectionID: "B"})
	require.NoError(t, err)
	assert.True(t, a.Busy())

	r := pending.Wait(context.Background())

	// B was deleted while resolving
	current := session()
	current.Sections = append(current.Sections[:2], current.Sections[3:]...)

	got, changed := a.Apply(current, r)
	assert.True(t, changed)
	assert.False(t, a.Busy())
	assert.Equal(t, []string{"intro", "A", "n3", "outro"}, order(got))
	assert.Equal(t, "m", got.Sections[2].Title)

	notices := sink.Notices()
	require.Len(t, notices, 2)
	assert.Equal(t, domain.SeverityWarn, notices[0].Severity)
	assert.Equal(t, domain.SeveritySuccess, notices[1].Severity)
}

func TestDropEmptyLabelUsesDefaultTitle(t *testing.T) {
	a, _ := newAdapter(&fakeResolver{files: twoFiles()[:1]})

	got, _, err := a.Drop(context.Background(), session(), payload("", "x"), hittest.GapTarget{Index: 0})
	require.NoError(t, err)
	assert.Equal(t, "New Section", got.Sections[1].Title)
}

func TestWaitHonoursContext(t *testing.T) {
	res := domain.DropResolverFunc(func(ctx context.Context, _ json.RawMessage) ([]domain.FileDescriptor, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	a, _ := newAdapter(res)

	pending, err := a.Begin(payload("m", "x"), nil)
	require.NoError(t, err)
	assert.Equal(t, hittest.BackgroundTarget{}, pending.Request().Target)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := pending.Wait(ctx)
	require.ErrorIs(t, r.Err, domain.ErrResolutionFailure)
}

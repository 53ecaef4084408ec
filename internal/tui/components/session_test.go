package components

import (
	"testing"

	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/sessionbrew/internal/domain"
	"github.com/mmcdole/sessionbrew/internal/hittest"
)

func sampleSession() domain.Playlist {
	return domain.Playlist{Sections: []domain.Section{
		{ID: "intro", Title: "Introduction", Locked: true, Items: []domain.Item{}},
		{ID: "A", Title: "A", Items: []domain.Item{{ID: "a1", Name: "a1.pptx", FileType: "pptx"}}},
		{ID: "B", Title: "B", Items: []domain.Item{}},
		{ID: "outro", Title: "Outro", Locked: true, Items: []domain.Item{}},
	}}
}

func keys(rows []SessionRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Key()
	}
	return out
}

func TestBuildSessionRows(t *testing.T) {
	tests := []struct {
		name string
		p    domain.Playlist
		want []string
	}{
		{
			name: "gaps between sentinels",
			p:    sampleSession(),
			want: []string{"s:intro", "g:0", "s:A", "i:a1", "g:1", "s:B", "g:2", "s:outro"},
		},
		{
			name: "only sentinels",
			p: domain.Playlist{Sections: []domain.Section{
				{ID: "intro", Locked: true},
				{ID: "outro", Locked: true},
			}},
			want: []string{"s:intro", "g:0", "s:outro"},
		},
		{
			name: "no sentinels",
			p: domain.Playlist{Sections: []domain.Section{
				{ID: "A"},
				{ID: "B"},
			}},
			want: []string{"g:0", "s:A", "g:1", "s:B", "g:2"},
		},
		{
			name: "empty",
			p:    domain.Playlist{},
			want: []string{"g:0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keys(BuildSessionRows(tt.p)))
		})
	}
}

func newPane() *SessionPane {
	p := NewSessionPane(hittest.NewMarker(zone.New()))
	p.SetSize(60, 30)
	p.SetPlaylist(sampleSession())
	return p
}

func TestSessionPaneCursorSkipsGaps(t *testing.T) {
	p := newPane()

	row, ok := p.Selected()
	require.True(t, ok)
	assert.Equal(t, "s:intro", row.Key())

	p.MoveCursor(1)
	row, _ = p.Selected()
	assert.Equal(t, "s:A", row.Key())

	p.MoveCursor(2)
	row, _ = p.Selected()
	assert.Equal(t, "s:B", row.Key())

	p.End()
	row, _ = p.Selected()
	assert.Equal(t, "s:outro", row.Key())

	p.MoveCursor(5)
	row, _ = p.Selected()
	assert.Equal(t, "s:outro", row.Key())
}

func TestSessionPaneKeepsSelectionAcrossChanges(t *testing.T) {
	p := newPane()
	require.True(t, p.SelectKey(ItemKey("a1")))

	// a1 moves to B
	next := sampleSession()
	next.Sections[2].Items = []domain.Item{next.Sections[1].Items[0]}
	next.Sections[1].Items = []domain.Item{}
	p.SetPlaylist(next)

	row, ok := p.Selected()
	require.True(t, ok)
	assert.Equal(t, RowItem, row.Kind)
	assert.Equal(t, "B", row.Section.ID)
}

func TestSessionPaneEdit(t *testing.T) {
	p := newPane()

	p.BeginEdit(domain.Section{ID: "A", Title: "A"})
	id, editing := p.Editing()
	assert.True(t, editing)
	assert.Equal(t, "A", id)
	assert.Equal(t, "A", p.EditValue())

	p.EndEdit()
	_, editing = p.Editing()
	assert.False(t, editing)
}

func TestSessionPaneViewRendersTitles(t *testing.T) {
	p := newPane()
	p.SetFocused(true)

	view := p.View()
	assert.Contains(t, view, "Introduction")
	assert.Contains(t, view, "a1.pptx")
	assert.Contains(t, view, "2 sections")
}

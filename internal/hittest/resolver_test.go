package hittest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func row(y int) Rect {
	return Rect{MinX: 0, MinY: y, MaxX: 39, MaxY: y}
}

// layout mimics the session pane:
//
//	0 gap 0
//	1 A header
//	2   a0
//	3   a1 (two rows tall)
//	5 gap 1
//	6 B header
//	7 gap 2
func layout() *Registry {
	r := NewRegistry()
	r.Register(
		SectionZone("A", Rect{MinX: 0, MinY: 1, MaxX: 39, MaxY: 4}),
		SectionZone("B", row(6)),
		ItemZone("A", 0, row(2)),
		ItemZone("A", 1, Rect{MinX: 0, MinY: 3, MaxX: 39, MaxY: 4}),
		GapZone(0, row(0)),
		GapZone(1, row(5)),
		GapZone(2, row(7)),
	)
	return r
}

func TestResolve(t *testing.T) {
	r := layout()

	tests := []struct {
		name string
		p    Point
		want Target
	}{
		{"first gap", Point{X: 3, Y: 0}, GapTarget{Index: 0}},
		{"section header", Point{X: 3, Y: 1}, SectionTarget{SectionID: "A"}},
		{"item row counts as its section", Point{X: 10, Y: 3}, SectionTarget{SectionID: "A"}},
		{"middle gap", Point{X: 0, Y: 5}, GapTarget{Index: 1}},
		{"last gap", Point{X: 39, Y: 7}, GapTarget{Index: 2}},
		{"right of pane", Point{X: 40, Y: 1}, BackgroundTarget{}},
		{"below everything", Point{X: 1, Y: 20}, BackgroundTarget{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.p))
		})
	}
}

func TestResolveGapBeatsSection(t *testing.T) {
	r := NewRegistry()
	r.Register(GapZone(1, row(3)))
	r.Register(SectionZone("A", Rect{MinX: 0, MinY: 0, MaxX: 39, MaxY: 5}))
	r.Register(ItemZone("A", 2, row(3)))

	assert.Equal(t, GapTarget{Index: 1}, r.Resolve(Point{X: 5, Y: 3}))
	assert.Equal(t, SectionTarget{SectionID: "A"}, r.Resolve(Point{X: 5, Y: 4}))
}

func TestResolveTopmostGapWins(t *testing.T) {
	r := NewRegistry()
	r.Register(GapZone(1, Rect{MinX: 0, MinY: 0, MaxX: 9, MaxY: 2}))
	r.Register(GapZone(2, Rect{MinX: 0, MinY: 2, MaxX: 9, MaxY: 4}))

	assert.Equal(t, GapTarget{Index: 1}, r.Resolve(Point{X: 1, Y: 1}))
	assert.Equal(t, GapTarget{Index: 2}, r.Resolve(Point{X: 1, Y: 2}))
}

func TestHoverAt(t *testing.T) {
	r := layout()

	h, ok := r.HoverAt(Point{X: 1, Y: 2})
	assert.True(t, ok)
	assert.Equal(t, Hover{SectionID: "A", Index: 0, Below: false}, h)

	h, ok = r.HoverAt(Point{X: 1, Y: 4})
	assert.True(t, ok)
	assert.Equal(t, Hover{SectionID: "A", Index: 1, Below: true}, h)

	h, ok = r.HoverAt(Point{X: 1, Y: 6})
	assert.True(t, ok)
	assert.True(t, h.OnHeader())
	assert.Equal(t, "B", h.SectionID)

	_, ok = r.HoverAt(Point{X: 1, Y: 5})
	assert.False(t, ok, "gap markers are not hover targets")
}

func TestHoverInsertIndex(t *testing.T) {
	assert.Equal(t, 2, Hover{Index: 2}.InsertIndex(5))
	assert.Equal(t, 3, Hover{Index: 2, Below: true}.InsertIndex(5))
	assert.Equal(t, 5, Hover{Index: -1}.InsertIndex(5))
}

func TestRegistryReset(t *testing.T) {
	r := layout()
	assert.Equal(t, 7, r.Len())

	r.Reset()
	assert.Zero(t, r.Len())
	assert.Equal(t, BackgroundTarget{}, r.Resolve(Point{X: 0, Y: 0}))
}

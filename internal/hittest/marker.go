package hittest

import (
	"strconv"

	zone "github.com/lrstanley/bubblezone"
)

// Marker tags rendered rows with bubblezone markers and turns the screen
// positions bubblezone records back into Registry zones.
//
// Markers are never nested: a section contributes its header row (and its
// empty body row) as section zones and each item row as an item zone.
type Marker struct {
	mgr    *zone.Manager
	prefix string
	frame  []marked
}

type marked struct {
	id   string
	zone Zone
}

// NewMarker creates a marker bound to a bubblezone manager
func NewMarker(mgr *zone.Manager) *Marker {
	return &Marker{mgr: mgr, prefix: mgr.NewPrefix()}
}

// Begin starts a new frame, forgetting the zones of the previous one
func (m *Marker) Begin() {
	m.frame = m.frame[:0]
}

// Mark wraps v in a marker for z. Call in paint order.
func (m *Marker) Mark(z Zone, v string) string {
	id := m.id(z)
	m.frame = append(m.frame, marked{id: id, zone: z})
	return m.mgr.Mark(id, v)
}

// Collect replaces the registry contents with the zones of the last frame
// whose positions bubblezone has resolved.
func (m *Marker) Collect(r *Registry) {
	r.Reset()
	for _, mk := range m.frame {
		info := m.mgr.Get(mk.id)
		if info.IsZero() {
			continue
		}
		z := mk.zone
		z.Rect = Rect{MinX: info.StartX, MinY: info.StartY, MaxX: info.EndX, MaxY: info.EndY}
		r.Register(z)
	}
}

func (m *Marker) id(z Zone) string {
	switch z.Kind {
	case ZoneGap:
		return m.prefix + "gap:" + strconv.Itoa(z.Gap)
	case ZoneItem:
		return m.prefix + "item:" + strconv.Itoa(z.Item) + ":" + z.SectionID
	default:
		return m.prefix + "section:" + z.SectionID
	}
}

package hittest

// Resolver classifies points against drop zones
type Resolver interface {
	Resolve(p Point) Target
	HoverAt(p Point) (Hover, bool)
}

// Registry is a Resolver over explicitly registered zones.
// Zones registered later are considered drawn on top of earlier ones.
type Registry struct {
	zones []Zone
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds zones in paint order
func (r *Registry) Register(zones ...Zone) {
	r.zones = append(r.zones, zones...)
}

// Reset drops every zone; call before registering a new frame
func (r *Registry) Reset() {
	r.zones = r.zones[:0]
}

// Len returns the number of registered zones
func (r *Registry) Len() int {
	return len(r.zones)
}

// Resolve classifies p. Gap markers win over section bodies; among
// overlapping zones of the same kind the topmost wins.
func (r *Registry) Resolve(p Point) Target {
	if z, ok := r.topmost(p, ZoneGap); ok {
		return GapTarget{Index: z.Gap}
	}
	if z, ok := r.topmost(p, ZoneItem, ZoneSection); ok {
		return SectionTarget{SectionID: z.SectionID}
	}
	return BackgroundTarget{}
}

// HoverAt returns the section element under p. Gap markers are ignored so
// that a drag passing over a marker keeps tracking the nearest item.
func (r *Registry) HoverAt(p Point) (Hover, bool) {
	if z, ok := r.topmost(p, ZoneItem); ok {
		return Hover{SectionID: z.SectionID, Index: z.Item, Below: z.Rect.below(p)}, true
	}
	if z, ok := r.topmost(p, ZoneSection); ok {
		return Hover{SectionID: z.SectionID, Index: -1}, true
	}
	return Hover{}, false
}

func (r *Registry) topmost(p Point, kinds ...ZoneKind) (Zone, bool) {
	for i := len(r.zones) - 1; i >= 0; i-- {
		z := r.zones[i]
		if !z.Rect.Contains(p) {
			continue
		}
		for _, k := range kinds {
			if z.Kind == k {
				return z, true
			}
		}
	}
	return Zone{}, false
}

package hittest

// Point is a cell position (column, row)
type Point struct {
	X, Y int
}

// Rect is an inclusive cell rectangle
type Rect struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Contains reports whether p lies inside r
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Height returns the number of rows covered by r
func (r Rect) Height() int {
	return r.MaxY - r.MinY + 1
}

// below reports whether p is in the lower half of r
func (r Rect) below(p Point) bool {
	return 2*(p.Y-r.MinY) >= r.Height()
}

// ZoneKind identifies what a zone represents
type ZoneKind int

const (
	ZoneGap ZoneKind = iota
	ZoneSection
	ZoneItem
)

// Zone is a registered hit region
type Zone struct {
	Kind      ZoneKind
	Gap       int    // ZoneGap
	SectionID string // ZoneSection, ZoneItem
	Item      int    // ZoneItem: index within the section
	Rect      Rect
}

// GapZone returns the marker region for visible gap k
func GapZone(k int, r Rect) Zone {
	return Zone{Kind: ZoneGap, Gap: k, Rect: r}
}

// SectionZone returns the body region (header included) of a section
func SectionZone(sectionID string, r Rect) Zone {
	return Zone{Kind: ZoneSection, SectionID: sectionID, Rect: r}
}

// ItemZone returns the region of the item at index within a section
func ItemZone(sectionID string, index int, r Rect) Zone {
	return Zone{Kind: ZoneItem, SectionID: sectionID, Item: index, Rect: r}
}

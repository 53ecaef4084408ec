// Package hittest classifies pointer positions against registered drop zones.
//
// The renderer registers a zone for every section body, every item row and
// every insertion gap it draws. Resolve turns a point into exactly one
// Target; HoverAt adds the item-level detail a drag preview needs.
package hittest

import "fmt"

// Target is where a drop lands. It is one of GapTarget, SectionTarget or
// BackgroundTarget.
type Target interface {
	isTarget()
	String() string
}

// GapTarget is the insertion marker before visible section Index.
// Index ranges from 0 to the number of visible sections.
type GapTarget struct {
	Index int
}

// SectionTarget is the body of a section (sentinels included, so callers can
// reject them explicitly)
type SectionTarget struct {
	SectionID string
}

// BackgroundTarget is anywhere else. Drops here go before the trailing sentinel.
type BackgroundTarget struct{}

func (GapTarget) isTarget()        {}
func (SectionTarget) isTarget()    {}
func (BackgroundTarget) isTarget() {}

func (t GapTarget) String() string     { return fmt.Sprintf("gap(%d)", t.Index) }
func (t SectionTarget) String() string { return fmt.Sprintf("section(%s)", t.SectionID) }
func (BackgroundTarget) String() string { return "background" }

// Hover is the element under the pointer during a drag
type Hover struct {
	SectionID string
	Index     int  // Hovered item index, -1 for the section header or an empty body
	Below     bool // Pointer is below the vertical midpoint of the hovered item
}

// OnHeader reports whether the pointer is over the section itself rather than an item
func (h Hover) OnHeader() bool {
	return h.Index < 0
}

// InsertIndex returns the item index a dragged item would take in a section
// of length n: the hovered index (+1 when below), or the end for headers.
func (h Hover) InsertIndex(n int) int {
	if h.OnHeader() {
		return n
	}
	if h.Below {
		return h.Index + 1
	}
	return h.Index
}

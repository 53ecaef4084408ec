package playlist

import (
	"sort"

	"github.com/mmcdole/sessionbrew/internal/domain"
)

// InsertBounds returns the inclusive range of absolute indexes at which a new
// section may be inserted: after the leading sentinel, before the trailing one.
func InsertBounds(p domain.Playlist) (lo, hi int) {
	lo, hi = 0, len(p.Sections)
	if p.HasLeadSentinel() {
		lo = 1
	}
	if p.HasTrailSentinel() {
		hi = len(p.Sections) - 1
	}
	return lo, hi
}

// VisibleSections returns the user-managed sections (everything between the sentinels)
func VisibleSections(p domain.Playlist) []domain.Section {
	lo, hi := InsertBounds(p)
	if hi < lo {
		return nil
	}
	return p.Sections[lo:hi]
}

// GapToAbsolute translates a gap index relative to the visible section list
// into an absolute playlist index. Gap k sits before visible section k.
func GapToAbsolute(p domain.Playlist, gap int) int {
	lo, hi := InsertBounds(p)
	return clamp(lo+gap, lo, hi)
}

// FindItem locates an item across all sections
func FindItem(p domain.Playlist, itemID string) (sectionID string, index int, ok bool) {
	for _, s := range p.Sections {
		if i := s.IndexOf(itemID); i >= 0 {
			return s.ID, i, true
		}
	}
	return "", -1, false
}

// DefaultTarget picks the section an external drop lands in when no
// location is known: the first unlocked section between the sentinels.
// ok is false when only sentinels exist; callers then create a new section
// before the trailing sentinel instead.
func DefaultTarget(p domain.Playlist) (sectionID string, ok bool) {
	for _, s := range VisibleSections(p) {
		if !s.Locked {
			return s.ID, true
		}
	}
	return "", false
}

// ItemIDs returns every item ID in the playlist, sorted
func ItemIDs(p domain.Playlist) []string {
	ids := make([]string, 0, p.ItemCount())
	for _, s := range p.Sections {
		for _, it := range s.Items {
			ids = append(ids, it.ID)
		}
	}
	sort.Strings(ids)
	return ids
}

// SectionIDs returns every section ID in the playlist, sorted
func SectionIDs(p domain.Playlist) []string {
	ids := make([]string, len(p.Sections))
	for i, s := range p.Sections {
		ids[i] = s.ID
	}
	sort.Strings(ids)
	return ids
}

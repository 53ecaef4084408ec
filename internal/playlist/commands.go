// Package playlist implements the structural operations of a session.
//
// Every operation takes an immutable domain.Playlist and returns a new one;
// the input is never modified, so callers can keep it as a snapshot for
// preview/discard. Operations never move, rename or empty a locked section.
package playlist

import (
	"fmt"
	"strings"

	"github.com/mmcdole/sessionbrew/internal/domain"
)

// MoveItem moves an item from one section to toIndex in another (or the same)
// section. toIndex is clamped to the valid range of the destination.
// Moving an item to its current index returns p unchanged.
func MoveItem(p domain.Playlist, itemID, fromSectionID, toSectionID string, toIndex int) (domain.Playlist, error) {
	fromIdx := p.IndexOf(fromSectionID)
	toIdx := p.IndexOf(toSectionID)
	if fromIdx < 0 || toIdx < 0 {
		return p, fmt.Errorf("move item %s: section: %w", itemID, domain.ErrNotFound)
	}
	if p.Sections[fromIdx].Locked || p.Sections[toIdx].Locked {
		return p, fmt.Errorf("move item %s: %w", itemID, domain.ErrLockedSection)
	}

	cur := p.Sections[fromIdx].IndexOf(itemID)
	if cur < 0 {
		return p, fmt.Errorf("move item %s: %w", itemID, domain.ErrNotFound)
	}

	if fromIdx == toIdx {
		// Final index is measured after the item is lifted out
		toIndex = clamp(toIndex, 0, len(p.Sections[fromIdx].Items)-1)
		if toIndex == cur {
			return p, nil
		}
	}

	out := p.Clone()
	src := &out.Sections[fromIdx]
	item := src.Items[cur]
	src.Items = append(src.Items[:cur], src.Items[cur+1:]...)

	dst := &out.Sections[toIdx]
	toIndex = clamp(toIndex, 0, len(dst.Items))
	dst.Items = insertAt(dst.Items, toIndex, item)
	return out, nil
}

// MoveSection moves a section to toIndex. Sentinels never move and no
// section may be moved past a locked one.
func MoveSection(p domain.Playlist, sectionID string, toIndex int) (domain.Playlist, error) {
	from := p.IndexOf(sectionID)
	if from < 0 {
		return p, fmt.Errorf("move section %s: %w", sectionID, domain.ErrNotFound)
	}
	if p.Sections[from].Locked {
		return p, fmt.Errorf("move section %s: %w", sectionID, domain.ErrLockedSection)
	}

	toIndex = clamp(toIndex, 0, len(p.Sections)-1)
	if toIndex == from {
		return p, nil
	}

	lo, hi := from, toIndex
	if lo > hi {
		lo, hi = hi, lo
	}
	for i := lo; i <= hi; i++ {
		if p.Sections[i].Locked {
			return p, fmt.Errorf("move section %s to %d: %w", sectionID, toIndex, domain.ErrLockedSection)
		}
	}

	out := p.Clone()
	sec := out.Sections[from]
	out.Sections = append(out.Sections[:from], out.Sections[from+1:]...)
	out.Sections = insertAt(out.Sections, toIndex, sec)
	return out, nil
}

// InsertSection inserts s (forced unlocked) at atIndex, clamped between the
// leading and trailing sentinels. Returns the index the section landed at.
func InsertSection(p domain.Playlist, atIndex int, s domain.Section) (domain.Playlist, int, error) {
	if p.IndexOf(s.ID) >= 0 {
		return p, -1, fmt.Errorf("insert section %s: %w", s.ID, domain.ErrDuplicateID)
	}
	if id, dup := firstDuplicate(p, s.Items); dup {
		return p, -1, fmt.Errorf("insert section %s: item %s: %w", s.ID, id, domain.ErrDuplicateID)
	}

	lo, hi := InsertBounds(p)
	atIndex = clamp(atIndex, lo, hi)

	s = s.Clone()
	s.Locked = false
	if s.Items == nil {
		s.Items = []domain.Item{}
	}

	out := p.Clone()
	out.Sections = insertAt(out.Sections, atIndex, s)
	return out, atIndex, nil
}

// RemoveSection deletes a section. Removing a missing section is a no-op
// reported through the removed flag.
func RemoveSection(p domain.Playlist, sectionID string) (domain.Playlist, bool, error) {
	idx := p.IndexOf(sectionID)
	if idx < 0 {
		return p, false, nil
	}
	if p.Sections[idx].Locked {
		return p, false, fmt.Errorf("remove section %s: %w", sectionID, domain.ErrLockedSection)
	}

	out := p.Clone()
	out.Sections = append(out.Sections[:idx], out.Sections[idx+1:]...)
	return out, true, nil
}

// RemoveItem deletes an item from a section. A missing section or item is a
// no-op reported through the removed flag.
func RemoveItem(p domain.Playlist, sectionID, itemID string) (domain.Playlist, bool, error) {
	idx := p.IndexOf(sectionID)
	if idx < 0 {
		return p, false, nil
	}
	if p.Sections[idx].Locked {
		return p, false, fmt.Errorf("remove item %s: %w", itemID, domain.ErrLockedSection)
	}
	at := p.Sections[idx].IndexOf(itemID)
	if at < 0 {
		return p, false, nil
	}

	out := p.Clone()
	sec := &out.Sections[idx]
	sec.Items = append(sec.Items[:at], sec.Items[at+1:]...)
	return out, true, nil
}

// RenameSection changes a section title. A title that trims to empty leaves
// the section untouched and returns ErrEmptyTitle.
func RenameSection(p domain.Playlist, sectionID, title string) (domain.Playlist, error) {
	idx := p.IndexOf(sectionID)
	if idx < 0 {
		return p, fmt.Errorf("rename section %s: %w", sectionID, domain.ErrNotFound)
	}
	if p.Sections[idx].Locked {
		return p, fmt.Errorf("rename section %s: %w", sectionID, domain.ErrLockedSection)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return p, domain.ErrEmptyTitle
	}
	if p.Sections[idx].Title == title {
		return p, nil
	}

	out := p.Clone()
	out.Sections[idx].Title = title
	return out, nil
}

// AppendOption configures AppendItems
type AppendOption func(*appendOptions)

type appendOptions struct {
	allowLocked bool
}

// Authorized allows appending to a locked section. Drag and drop routing
// never passes this; it exists for seeding sentinel content.
func Authorized() AppendOption {
	return func(o *appendOptions) { o.allowLocked = true }
}

// AppendItems adds items to the end of a section
func AppendItems(p domain.Playlist, sectionID string, items []domain.Item, opts ...AppendOption) (domain.Playlist, error) {
	var o appendOptions
	for _, opt := range opts {
		opt(&o)
	}

	idx := p.IndexOf(sectionID)
	if idx < 0 {
		return p, fmt.Errorf("append to section %s: %w", sectionID, domain.ErrNotFound)
	}
	if p.Sections[idx].Locked && !o.allowLocked {
		return p, fmt.Errorf("append to section %s: %w", sectionID, domain.ErrLockedSection)
	}
	if id, dup := firstDuplicate(p, items); dup {
		return p, fmt.Errorf("append to section %s: item %s: %w", sectionID, id, domain.ErrDuplicateID)
	}
	if len(items) == 0 {
		return p, nil
	}

	out := p.Clone()
	sec := &out.Sections[idx]
	sec.Items = append(sec.Items, items...)
	return out, nil
}

// NewSection builds an unlocked section with a fresh ID
func NewSection(ids domain.IDGenerator, title string, items []domain.Item) domain.Section {
	if items == nil {
		items = []domain.Item{}
	}
	return domain.Section{ID: ids.NewID(), Title: title, Items: items}
}

// NewItems wraps resolved files into items with fresh IDs, preserving order
func NewItems(ids domain.IDGenerator, files []domain.FileDescriptor) []domain.Item {
	items := make([]domain.Item, len(files))
	for i, f := range files {
		items[i] = domain.Item{
			ID:       ids.NewID(),
			Name:     f.Name,
			Path:     f.Path,
			FileType: f.Type,
		}
	}
	return items
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func insertAt[T any](s []T, i int, v T) []T {
	s = append(s, v)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

// firstDuplicate reports an item ID that already exists in p or repeats within items
func firstDuplicate(p domain.Playlist, items []domain.Item) (string, bool) {
	if len(items) == 0 {
		return "", false
	}
	seen := make(map[string]bool, len(items))
	for _, s := range p.Sections {
		for _, it := range s.Items {
			seen[it.ID] = true
		}
	}
	for _, it := range items {
		if seen[it.ID] {
			return it.ID, true
		}
		seen[it.ID] = true
	}
	return "", false
}

// Package titleedit holds the edit state for renaming a section.
package titleedit

import (
	"strings"

	"github.com/mmcdole/sessionbrew/internal/domain"
)

// Renamer applies a committed title
type Renamer interface {
	RenameSection(sectionID, title string) error
}

// Editor is the rename state of a single section
type Editor struct {
	sectionID string
	original  string
	draft     string
	editing   bool
}

// Editing reports whether an edit is in progress
func (e *Editor) Editing() bool {
	return e.editing
}

// SectionID returns the section being edited
func (e *Editor) SectionID() string {
	return e.sectionID
}

// Draft returns the current draft title
func (e *Editor) Draft() string {
	return e.draft
}

// Begin starts editing s. Locked sections cannot be renamed.
func (e *Editor) Begin(s domain.Section) error {
	if s.Locked {
		return domain.ErrLockedSection
	}
	e.sectionID = s.ID
	e.original = s.Title
	e.draft = s.Title
	e.editing = true
	return nil
}

// SetDraft replaces the draft title
func (e *Editor) SetDraft(title string) {
	if e.editing {
		e.draft = title
	}
}

// Commit ends editing. A blank draft reverts to the original title without
// calling r. Reports whether a rename was applied.
func (e *Editor) Commit(r Renamer) (bool, error) {
	if !e.editing {
		return false, nil
	}
	defer e.reset()

	title := strings.TrimSpace(e.draft)
	if title == "" || title == e.original {
		return false, nil
	}
	if err := r.RenameSection(e.sectionID, title); err != nil {
		return false, err
	}
	return true, nil
}

// Cancel ends editing and discards the draft
func (e *Editor) Cancel() {
	e.reset()
}

func (e *Editor) reset() {
	*e = Editor{}
}

package domain

import "errors"

// Sentinel errors for session operations
var (
	// ErrNotFound indicates the referenced section or item does not exist
	ErrNotFound = errors.New("not found")

	// ErrLockedSection indicates the operation touches a locked section
	ErrLockedSection = errors.New("section is locked")

	// ErrDuplicateID indicates a new section or item reuses an existing identifier
	ErrDuplicateID = errors.New("duplicate identifier")

	// ErrEmptyTitle indicates a rename to a blank title (the old title is kept)
	ErrEmptyTitle = errors.New("title is empty")

	// ErrMalformedPayload indicates a drop payload could not be parsed
	ErrMalformedPayload = errors.New("malformed drop payload")

	// ErrResolutionFailure indicates the drop resolver failed
	ErrResolutionFailure = errors.New("drop resolution failed")

	// ErrDragActive indicates a drag was started while another is in progress
	ErrDragActive = errors.New("a drag is already in progress")

	// ErrNoDrag indicates a drag event arrived while idle
	ErrNoDrag = errors.New("no drag in progress")
)

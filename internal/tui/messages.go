package tui

import (
	"github.com/mmcdole/sessionbrew/internal/domain"
	"github.com/mmcdole/sessionbrew/internal/drop"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// TreeLoadedMsg signals that the library tree has been (re)loaded
type TreeLoadedMsg struct {
	Nodes []domain.LibraryNode
}

// DropResolvedMsg carries a resolved external drop back to the event loop
type DropResolvedMsg struct {
	Result drop.Resolved
}

// NoticeMsg is a notice raised by a service
type NoticeMsg struct {
	Notice domain.Notice
}

// FileOpenedMsg signals that an item was handed to its viewer
type FileOpenedMsg struct {
	Item domain.Item
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

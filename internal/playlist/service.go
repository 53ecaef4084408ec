package playlist

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmcdole/sessionbrew/internal/domain"
)

// DefaultSectionTitle is used for sections added from a separator
const DefaultSectionTitle = "New Section"

// Service owns the current session and applies user actions to it.
// It lives on the UI event loop and is not safe for concurrent use.
type Service struct {
	current domain.Playlist
	ids     domain.IDGenerator
	sink    domain.NotificationSink
	logger  *slog.Logger
}

// NewService creates a new playlist service around an initial session.
func NewService(initial domain.Playlist, ids domain.IDGenerator, sink domain.NotificationSink, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if sink == nil {
		sink = domain.DiscardSink{}
	}
	if ids == nil {
		ids = domain.UUIDGenerator{}
	}
	return &Service{current: initial.Clone(), ids: ids, sink: sink, logger: logger}
}

// Playlist returns a copy of the current session
func (s *Service) Playlist() domain.Playlist {
	return s.current.Clone()
}

// Replace commits a playlist produced elsewhere (drag controller, drop adapter)
func (s *Service) Replace(p domain.Playlist) {
	s.current = p.Clone()
	s.logger.Debug("playlist replaced", "sections", len(p.Sections), "items", p.ItemCount())
}

// AddSection inserts an empty section at the given absolute index
func (s *Service) AddSection(atIndex int, title string) (domain.Section, error) {
	if title == "" {
		title = DefaultSectionTitle
	}
	sec := NewSection(s.ids, title, nil)
	next, at, err := InsertSection(s.current, atIndex, sec)
	if err != nil {
		s.logger.Error("failed to add section", "error", err, "title", title)
		return domain.Section{}, err
	}
	s.current = next
	s.logger.Info("added section", "sectionID", sec.ID, "title", title, "index", at)
	return sec, nil
}

// RemoveSection deletes an unlocked section
func (s *Service) RemoveSection(sectionID string) error {
	next, removed, err := RemoveSection(s.current, sectionID)
	if err != nil {
		s.reject("Cannot delete section", err, "sectionID", sectionID)
		return err
	}
	if !removed {
		s.logger.Warn("section already removed", "sectionID", sectionID)
		s.sink.Notify(domain.Notice{Severity: domain.SeverityWarn, Summary: "Nothing to delete", Detail: "The section no longer exists"})
		return nil
	}
	s.current = next
	s.logger.Info("removed section", "sectionID", sectionID)
	return nil
}

// RemoveItem deletes an item from an unlocked section
func (s *Service) RemoveItem(sectionID, itemID string) error {
	next, removed, err := RemoveItem(s.current, sectionID, itemID)
	if err != nil {
		s.reject("Cannot remove item", err, "sectionID", sectionID, "itemID", itemID)
		return err
	}
	if !removed {
		s.logger.Warn("item already removed", "sectionID", sectionID, "itemID", itemID)
		s.sink.Notify(domain.Notice{Severity: domain.SeverityWarn, Summary: "Nothing to remove", Detail: "The item no longer exists"})
		return nil
	}
	s.current = next
	s.logger.Info("removed item", "sectionID", sectionID, "itemID", itemID)
	return nil
}

// RenameSection retitles a section. Blank titles are silently reverted.
func (s *Service) RenameSection(sectionID, title string) error {
	next, err := RenameSection(s.current, sectionID, title)
	switch {
	case errors.Is(err, domain.ErrEmptyTitle):
		s.logger.Debug("empty title reverted", "sectionID", sectionID)
		return nil
	case errors.Is(err, domain.ErrNotFound):
		s.logger.Debug("rename target not found", "sectionID", sectionID)
		return nil
	case err != nil:
		s.reject("Cannot rename section", err, "sectionID", sectionID)
		return err
	}
	s.current = next
	s.logger.Info("renamed section", "sectionID", sectionID, "title", title)
	return nil
}

// reject logs a refused operation and tells the user why
func (s *Service) reject(summary string, err error, args ...any) {
	s.logger.Warn(summary, append([]any{"error", err}, args...)...)
	detail := err.Error()
	if errors.Is(err, domain.ErrLockedSection) {
		detail = "Locked sections cannot be changed"
	}
	s.sink.Notify(domain.Notice{Severity: domain.SeverityWarn, Summary: summary, Detail: detail})
}

// Summary returns a one-line description of the session
func (s *Service) Summary() string {
	return fmt.Sprintf("%d sections, %d items", len(VisibleSections(s.current)), s.current.ItemCount())
}

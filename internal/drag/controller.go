package drag

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmcdole/sessionbrew/internal/domain"
	"github.com/mmcdole/sessionbrew/internal/hittest"
	"github.com/mmcdole/sessionbrew/internal/playlist"
)

// Controller tracks at most one active drag.
// It is driven from the UI event loop and is not safe for concurrent use.
type Controller struct {
	state    State
	subject  Subject
	origin   Origin
	snapshot domain.Playlist
	preview  domain.Playlist
	hover    hittest.Hover
	hovering bool
	logger   *slog.Logger
}

// NewController creates an idle controller
func NewController(logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{logger: logger}
}

// State returns the current state
func (c *Controller) State() State {
	return c.state
}

// Active returns the dragged subject while dragging
func (c *Controller) Active() (Subject, bool) {
	if c.state != Dragging {
		return nil, false
	}
	return c.subject, true
}

// Origin returns where the active subject was picked up
func (c *Controller) Origin() Origin {
	return c.origin
}

// Preview returns the playlist as it would look if the drag ended now.
// While idle it is the last committed or restored playlist.
func (c *Controller) Preview() domain.Playlist {
	return c.preview
}

// Start begins a drag of subject over p. Locked sections cannot be dragged
// and items cannot be dragged out of locked sections.
func (c *Controller) Start(p domain.Playlist, subject Subject) error {
	if c.state != Idle {
		return fmt.Errorf("start %s: %w", subject, domain.ErrDragActive)
	}

	var origin Origin
	switch s := subject.(type) {
	case SectionSubject:
		idx := p.IndexOf(s.ID)
		if idx < 0 {
			return fmt.Errorf("start %s: %w", subject, domain.ErrNotFound)
		}
		if p.Sections[idx].Locked {
			return fmt.Errorf("start %s: %w", subject, domain.ErrLockedSection)
		}
		origin = Origin{Index: idx}
	case ItemSubject:
		secID, idx, ok := playlist.FindItem(p, s.ID)
		if !ok {
			return fmt.Errorf("start %s: %w", subject, domain.ErrNotFound)
		}
		if sec, _ := p.Section(secID); sec.Locked {
			return fmt.Errorf("start %s: %w", subject, domain.ErrLockedSection)
		}
		origin = Origin{SectionID: secID, Index: idx}
	default:
		return fmt.Errorf("start: unknown subject %T", subject)
	}

	c.state = Dragging
	c.subject = subject
	c.origin = origin
	c.snapshot = p.Clone()
	c.preview = p.Clone()
	c.hover, c.hovering = hittest.Hover{}, false
	c.logger.Debug("drag started", "subject", subject.String(), "sectionID", origin.SectionID, "index", origin.Index)
	return nil
}

// Over updates the hovered element. For item drags hovering a different
// section moves the item into it on the preview; section drags only record
// the hover. Reports whether the preview changed.
func (c *Controller) Over(h hittest.Hover) (bool, error) {
	if c.state != Dragging {
		return false, domain.ErrNoDrag
	}
	c.hover, c.hovering = h, true

	item, ok := c.subject.(ItemSubject)
	if !ok {
		return false, nil
	}
	current, _, found := playlist.FindItem(c.preview, item.ID)
	if !found || current == h.SectionID {
		return false, nil
	}
	return c.previewMove(item.ID, current, h)
}

// previewMove moves an item into another section of the preview
func (c *Controller) previewMove(itemID, from string, h hittest.Hover) (bool, error) {
	dst, ok := c.preview.Section(h.SectionID)
	if !ok {
		return false, nil
	}
	next, err := playlist.MoveItem(c.preview, itemID, from, h.SectionID, h.InsertIndex(len(dst.Items)))
	if err != nil {
		// Locked or vanished sections are simply not valid hover targets
		c.logger.Debug("preview move refused", "itemID", itemID, "sectionID", h.SectionID, "error", err)
		return false, nil
	}
	c.preview = next
	return true, nil
}

// End finishes the drag at target and returns the playlist to commit.
// Drops on the background cancel the drag and return the snapshot. An item
// released on a gap keeps its preview position once it has hovered a
// section, and cancels otherwise. Rejected drops return the snapshot with an error wrapping
// ErrLockedSection.
func (c *Controller) End(target hittest.Target) (domain.Playlist, error) {
	if c.state != Dragging {
		return c.preview, domain.ErrNoDrag
	}

	var (
		next domain.Playlist
		err  error
	)
	switch s := c.subject.(type) {
	case SectionSubject:
		next, err = c.endSection(s, target)
	case ItemSubject:
		next, err = c.endItem(s, target)
	default:
		err = errCancelled
	}

	switch {
	case errors.Is(err, errCancelled):
		return c.Cancel(), nil
	case err != nil:
		c.logger.Info("drag rejected", "subject", c.subject.String(), "target", target.String(), "error", err)
		restored := c.Cancel()
		return restored, err
	}

	c.logger.Debug("drag committed", "subject", c.subject.String(), "target", target.String())
	c.finish(next)
	return next, nil
}

var errCancelled = errors.New("drag cancelled")

func (c *Controller) endSection(s SectionSubject, target hittest.Target) (domain.Playlist, error) {
	from := c.preview.IndexOf(s.ID)
	if from < 0 {
		return domain.Playlist{}, errCancelled
	}

	var to int
	switch t := target.(type) {
	case hittest.GapTarget:
		// The gap index counts the dragged section itself
		to = playlist.GapToAbsolute(c.preview, t.Index)
		if from < to {
			to--
		}
	case hittest.SectionTarget:
		to = c.preview.IndexOf(t.SectionID)
		if to < 0 {
			return domain.Playlist{}, errCancelled
		}
	default:
		return domain.Playlist{}, errCancelled
	}

	next, err := playlist.MoveSection(c.preview, s.ID, to)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Playlist{}, errCancelled
	}
	return next, err
}

func (c *Controller) endItem(s ItemSubject, target hittest.Target) (domain.Playlist, error) {
	t, ok := target.(hittest.SectionTarget)
	if !ok {
		if _, gap := target.(hittest.GapTarget); gap && c.hovering {
			// Released between sections: the last hovered section keeps it
			return c.preview, nil
		}
		return domain.Playlist{}, errCancelled
	}
	dst, ok := c.preview.Section(t.SectionID)
	if !ok {
		return domain.Playlist{}, errCancelled
	}
	if dst.Locked {
		return domain.Playlist{}, fmt.Errorf("drop %s on %s: %w", s, t, domain.ErrLockedSection)
	}

	current, _, found := playlist.FindItem(c.preview, s.ID)
	if !found {
		return domain.Playlist{}, errCancelled
	}

	h := c.hover
	if !c.hovering || h.SectionID != t.SectionID {
		h = hittest.Hover{SectionID: t.SectionID, Index: -1}
	}

	if current != t.SectionID {
		// Dropped without an Over on this section: apply it now
		if _, err := c.previewMove(s.ID, current, h); err != nil {
			return domain.Playlist{}, err
		}
		return c.preview, nil
	}

	if c.hovering && h.SectionID == current && !h.OnHeader() {
		return playlist.MoveItem(c.preview, s.ID, current, current, h.InsertIndex(len(dst.Items)))
	}
	// Header of its own section or no hover: keep the preview position
	return c.preview, nil
}

// Cancel abandons the drag and returns the snapshot taken at Start
func (c *Controller) Cancel() domain.Playlist {
	if c.state != Dragging {
		return c.preview
	}
	c.logger.Debug("drag cancelled", "subject", c.subject.String())
	snap := c.snapshot
	c.finish(snap)
	return snap
}

// Commit ends a keyboard drag, keeping the preview as is
func (c *Controller) Commit() (domain.Playlist, error) {
	if c.state != Dragging {
		return c.preview, domain.ErrNoDrag
	}
	next := c.preview
	c.logger.Debug("drag committed", "subject", c.subject.String())
	c.finish(next)
	return next, nil
}

func (c *Controller) finish(p domain.Playlist) {
	c.state = Idle
	c.subject = nil
	c.origin = Origin{}
	c.snapshot = domain.Playlist{}
	c.preview = p
	c.hover, c.hovering = hittest.Hover{}, false
}

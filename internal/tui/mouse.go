package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/sessionbrew/internal/domain"
	"github.com/mmcdole/sessionbrew/internal/drag"
	"github.com/mmcdole/sessionbrew/internal/hittest"
)

// handleMouseMsg turns pointer events into drags. Session elements are
// dragged through the drag controller; library nodes are dropped through
// the drop adapter on release.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.State != StateBrowsing {
		return m, nil
	}

	// Zones of the last rendered frame
	m.marker.Collect(m.registry)
	pt := hittest.Point{X: msg.X, Y: msg.Y}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scroll(msg, -1)
		case tea.MouseButtonWheelDown:
			m.scroll(msg, 1)
		case tea.MouseButtonLeft:
			m.handlePress(msg, pt)
		}
		return m, nil

	case tea.MouseActionMotion:
		m.handleMotion(pt)
		return m, nil

	case tea.MouseActionRelease:
		return m, m.handleRelease(msg, pt)
	}
	return m, nil
}

func (m *Model) scroll(msg tea.MouseMsg, delta int) {
	if msg.X < m.libraryWidth() {
		m.Library.MoveCursor(delta)
		return
	}
	m.Session.MoveCursor(delta)
}

func (m *Model) handlePress(msg tea.MouseMsg, pt hittest.Point) {
	// A click anywhere ends a title edit
	m.commitRename()

	if m.drag.State() == drag.Dragging {
		return
	}

	if row, ok := m.Library.RowAt(msg); ok {
		m.focus(true)
		m.Library.Select(row)
		if n, ok := m.Library.Selected(); ok {
			m.libDrag = &libraryDrag{node: n}
		}
		return
	}

	h, ok := m.registry.HoverAt(pt)
	if !ok {
		return
	}
	m.focus(false)

	p := m.PlaylistSvc.Playlist()
	sec, exists := p.Section(h.SectionID)
	if !exists {
		return
	}
	var subject drag.Subject = drag.SectionSubject{ID: sec.ID}
	if !h.OnHeader() && h.Index < len(sec.Items) {
		subject = drag.ItemSubject{ID: sec.Items[h.Index].ID}
	}
	m.Session.SelectKey(subjectKey(subject))

	if sec.Locked {
		// Locked elements are selectable, not draggable
		return
	}
	if !m.startDrag(subject) {
		return
	}
	m.mouseDrag = true
	m.dropTarget = nil
	m.syncSession()
}

func (m *Model) handleMotion(pt hittest.Point) {
	if m.libDrag != nil {
		m.libDrag.moved = true
		m.dropTarget = m.registry.Resolve(pt)
		m.Session.SetDrag("", m.dropTarget)
		return
	}

	if m.drag.State() != drag.Dragging || !m.mouseDrag {
		return
	}
	if h, ok := m.registry.HoverAt(pt); ok {
		if _, err := m.drag.Over(h); err != nil {
			m.logger.Debug("drag over failed", "error", err)
		}
	}
	m.dropTarget = m.registry.Resolve(pt)
	m.syncSession()
}

func (m *Model) handleRelease(msg tea.MouseMsg, pt hittest.Point) tea.Cmd {
	if ld := m.libDrag; ld != nil {
		m.libDrag = nil
		m.dropTarget = nil
		m.Session.ClearDrag()
		if !ld.moved || msg.X < m.libraryWidth() {
			// A click, or released back over the library
			return nil
		}
		return m.beginDrop(ld.node, m.registry.Resolve(pt))
	}

	if m.drag.State() != drag.Dragging || !m.mouseDrag {
		return nil
	}
	target := m.registry.Resolve(pt)
	next, err := m.drag.End(target)
	m.mouseDrag = false
	m.dropTarget = nil
	switch {
	case errors.Is(err, domain.ErrLockedSection):
		m.notify(domain.SeverityWarn, "Cannot drop here", "Locked sections cannot be changed")
	case err != nil:
		m.logger.Debug("drag end failed", "error", err, "target", describeTarget(target))
	default:
		m.PlaylistSvc.Replace(next)
	}
	m.syncSession()
	return nil
}

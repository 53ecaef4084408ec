package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/sessionbrew/internal/domain"
	"github.com/mmcdole/sessionbrew/internal/drag"
	"github.com/mmcdole/sessionbrew/internal/hittest"
	"github.com/mmcdole/sessionbrew/internal/playlist"
	"github.com/mmcdole/sessionbrew/internal/tui/components"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle state-specific keys
	switch m.State {
	case StateHelp:
		if key.Matches(msg, Keys.Escape, Keys.Help, Keys.Quit) {
			m.State = StateBrowsing
		}
		return m, nil

	case StateNotices:
		if key.Matches(msg, Keys.Escape, Keys.Notices, Keys.Quit) {
			m.State = StateBrowsing
		}
		return m, nil
	}

	// Modal-like inputs take every key
	if m.editor.Editing() {
		return m.handleTitleKey(msg)
	}
	if m.Library.IsFiltering() {
		return m.handleFilterKey(msg)
	}
	if m.drag.State() == drag.Dragging && !m.mouseDrag {
		return m.handleMoveKey(msg)
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Notices):
		m.State = StateNotices
		return m, nil

	case key.Matches(msg, Keys.SwitchPane):
		m.focus(!m.Library.Focused())
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.cancelPointerDrag() {
			return m, nil
		}
		if m.Library.Query() != "" {
			m.Library.ClearFilter()
		}
		return m, nil
	}

	if m.Library.Focused() {
		return m.handleLibraryKey(msg)
	}
	return m.handleSessionKey(msg)
}

func (m Model) handleLibraryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Up):
		m.Library.MoveCursor(-1)
	case key.Matches(msg, Keys.Down):
		m.Library.MoveCursor(1)
	case key.Matches(msg, Keys.Home):
		m.Library.Select(0)
	case key.Matches(msg, Keys.End):
		m.Library.Select(len(m.Library.Rows()) - 1)
	case key.Matches(msg, Keys.Expand):
		m.Library.Expand()
	case key.Matches(msg, Keys.Collapse):
		m.Library.Collapse()
	case key.Matches(msg, Keys.Filter):
		return m, m.Library.StartFilter()
	case key.Matches(msg, Keys.Refresh):
		m.StatusMsg = ""
		return m, RefreshTreeCmd(m.LibrarySvc)
	case key.Matches(msg, Keys.Enter):
		if n, ok := m.Library.Selected(); ok && n.IsFolder() && m.Library.Query() == "" {
			m.Library.Toggle()
			return m, nil
		}
		return m, m.addSelectedNode()
	case key.Matches(msg, Keys.Add):
		return m, m.addSelectedNode()
	}
	return m, nil
}

func (m Model) handleSessionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	row, hasRow := m.Session.Selected()

	switch {
	case key.Matches(msg, Keys.Up):
		m.Session.MoveCursor(-1)
	case key.Matches(msg, Keys.Down):
		m.Session.MoveCursor(1)
	case key.Matches(msg, Keys.Home):
		m.Session.Home()
	case key.Matches(msg, Keys.End):
		m.Session.End()

	case key.Matches(msg, Keys.Grab):
		if hasRow {
			m.startKeyboardDrag(row)
		}

	case key.Matches(msg, Keys.Rename):
		if hasRow {
			return m, m.beginRename(row.Section)
		}

	case key.Matches(msg, Keys.Enter):
		if !hasRow {
			return m, nil
		}
		if row.Kind == components.RowItem {
			return m, m.openItem(row.Item)
		}
		return m, m.beginRename(row.Section)

	case key.Matches(msg, Keys.NewSection):
		gap := m.gapAfter(row, hasRow)
		p := m.PlaylistSvc.Playlist()
		sec, err := m.PlaylistSvc.AddSection(playlist.GapToAbsolute(p, gap), playlist.DefaultSectionTitle)
		if err != nil {
			return m, nil
		}
		m.syncSession()
		m.Session.SelectKey(components.SectionKey(sec.ID))
		return m, m.beginRename(sec)

	case key.Matches(msg, Keys.Delete):
		if !hasRow {
			return m, nil
		}
		if row.Kind == components.RowItem {
			_ = m.PlaylistSvc.RemoveItem(row.Section.ID, row.Item.ID)
		} else {
			_ = m.PlaylistSvc.RemoveSection(row.Section.ID)
		}
		m.syncSession()

	case key.Matches(msg, Keys.Open):
		if hasRow && row.Kind == components.RowItem {
			return m, m.openItem(row.Item)
		}
	}
	return m, nil
}

// handleTitleKey routes keys to the section title input
func (m Model) handleTitleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Enter):
		m.commitRename()
		return m, nil
	case key.Matches(msg, Keys.Escape):
		m.editor.Cancel()
		m.Session.EndEdit()
		return m, nil
	}
	cmd := m.Session.UpdateEdit(msg)
	m.editor.SetDraft(m.Session.EditValue())
	return m, cmd
}

// handleFilterKey routes keys to the library filter input
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.Library.StopFilter()
		return m, nil
	case tea.KeyEsc:
		m.Library.ClearFilter()
		return m, nil
	case tea.KeyUp:
		m.Library.MoveCursor(-1)
		return m, nil
	case tea.KeyDown:
		m.Library.MoveCursor(1)
		return m, nil
	}
	return m, m.Library.UpdateFilter(msg)
}

// handleMoveKey drives a keyboard drag
func (m Model) handleMoveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Up):
		m.nudge(-1)
	case key.Matches(msg, Keys.Down):
		m.nudge(1)
	case key.Matches(msg, Keys.Grab, Keys.Enter):
		next, err := m.drag.Commit()
		if err == nil {
			m.PlaylistSvc.Replace(next)
		}
		m.syncSession()
	case key.Matches(msg, Keys.Escape):
		m.drag.Cancel()
		m.syncSession()
	case key.Matches(msg, Keys.Quit):
		m.drag.Cancel()
		return m, tea.Quit
	}
	return m, nil
}

// cancelPointerDrag drops whatever the mouse is holding. Reports whether
// there was anything to cancel.
func (m *Model) cancelPointerDrag() bool {
	switch {
	case m.libDrag != nil:
		m.libDrag = nil
	case m.drag.State() == drag.Dragging && m.mouseDrag:
		m.drag.Cancel()
		m.mouseDrag = false
	default:
		return false
	}
	m.dropTarget = nil
	m.syncSession()
	return true
}

func (m *Model) nudge(delta int) {
	if _, err := m.drag.Nudge(delta); err != nil {
		m.logger.Debug("nudge refused", "error", err, "delta", delta)
		return
	}
	m.syncSession()
}

// startKeyboardDrag picks up the selected row
func (m *Model) startKeyboardDrag(row components.SessionRow) {
	var subject drag.Subject = drag.SectionSubject{ID: row.Section.ID}
	if row.Kind == components.RowItem {
		subject = drag.ItemSubject{ID: row.Item.ID}
	}
	if !m.startDrag(subject) {
		return
	}
	m.mouseDrag = false
	m.dropTarget = nil
	m.syncSession()
}

// startDrag begins a drag unless an external drop is still resolving
func (m *Model) startDrag(subject drag.Subject) bool {
	if m.Drops.Busy() {
		m.notify(domain.SeverityInfo, "Please wait", "Files are still being added")
		return false
	}
	err := m.drag.Start(m.PlaylistSvc.Playlist(), subject)
	switch {
	case errors.Is(err, domain.ErrLockedSection):
		m.notify(domain.SeverityWarn, "Cannot move", "Locked sections cannot be changed")
		return false
	case err != nil:
		m.logger.Debug("drag not started", "error", err, "subject", subject.String())
		return false
	}
	return true
}

func (m *Model) beginRename(s domain.Section) tea.Cmd {
	if err := m.editor.Begin(s); err != nil {
		m.notify(domain.SeverityWarn, "Cannot rename", "Locked sections cannot be changed")
		return nil
	}
	m.focus(false)
	return m.Session.BeginEdit(s)
}

// commitRename applies the edited title. Blank titles revert silently.
func (m *Model) commitRename() {
	if !m.editor.Editing() {
		return
	}
	m.editor.SetDraft(m.Session.EditValue())
	if _, err := m.editor.Commit(m.PlaylistSvc); err != nil {
		m.logger.Debug("rename refused", "error", err)
	}
	m.Session.EndEdit()
	m.syncSession()
}

func (m *Model) openItem(it domain.Item) tea.Cmd {
	if it.Path == "" || m.Opener == nil {
		return nil
	}
	return OpenItemCmd(m.Opener, it)
}

// gapAfter returns the gap following the selected row's section
func (m Model) gapAfter(row components.SessionRow, ok bool) int {
	p := m.PlaylistSvc.Playlist()
	visible := playlist.VisibleSections(p)
	if !ok {
		return len(visible)
	}
	for i, s := range visible {
		if s.ID == row.Section.ID {
			return i + 1
		}
	}
	if p.HasLeadSentinel() && p.Sections[0].ID == row.Section.ID {
		return 0
	}
	return len(visible)
}

// addSelectedNode drops the selected library node on the session section
// under the session cursor, or on the default target
func (m *Model) addSelectedNode() tea.Cmd {
	n, ok := m.Library.Selected()
	if !ok {
		return nil
	}
	if m.drag.State() == drag.Dragging {
		return nil
	}
	return m.beginDrop(n, m.keyboardTarget())
}

func (m Model) keyboardTarget() hittest.Target {
	p := m.PlaylistSvc.Playlist()
	if row, ok := m.Session.Selected(); ok && row.Kind != components.RowGap {
		if s, exists := p.Section(row.Section.ID); exists && !s.Locked {
			return hittest.SectionTarget{SectionID: s.ID}
		}
	}
	if id, ok := playlist.DefaultTarget(p); ok {
		return hittest.SectionTarget{SectionID: id}
	}
	return hittest.BackgroundTarget{}
}

// beginDrop starts resolving a library node dropped on target
func (m *Model) beginDrop(n domain.LibraryNode, target hittest.Target) tea.Cmd {
	payload, err := domain.NodePayload(n)
	if err != nil {
		m.logger.Error("failed to build drop payload", "error", err, "key", n.Key)
		return nil
	}
	raw, err := payload.Encode()
	if err != nil {
		m.logger.Error("failed to encode drop payload", "error", err, "key", n.Key)
		return nil
	}
	pending, err := m.Drops.Begin(raw, target)
	if err != nil {
		return nil
	}
	m.logger.Debug("resolving drop", "key", n.Key, "target", describeTarget(target))
	return ResolveDropCmd(pending)
}

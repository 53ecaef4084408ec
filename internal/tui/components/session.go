package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/sessionbrew/internal/domain"
	"github.com/mmcdole/sessionbrew/internal/hittest"
	"github.com/mmcdole/sessionbrew/internal/playlist"
	"github.com/mmcdole/sessionbrew/internal/tui/styles"
)

// SessionRowKind identifies what a session row shows
type SessionRowKind int

const (
	RowGap SessionRowKind = iota
	RowSection
	RowItem
)

// SessionRow is a line of the session pane
type SessionRow struct {
	Kind      SessionRowKind
	Gap       int            // RowGap: visible gap index
	Section   domain.Section // RowSection, RowItem: the (owning) section
	Item      domain.Item    // RowItem
	ItemIndex int            // RowItem
}

// Key identifies the row across re-renders
func (r SessionRow) Key() string {
	switch r.Kind {
	case RowGap:
		return "g:" + strconv.Itoa(r.Gap)
	case RowItem:
		return "i:" + r.Item.ID
	default:
		return "s:" + r.Section.ID
	}
}

// SectionKey returns the row key of a section header
func SectionKey(sectionID string) string { return "s:" + sectionID }

// ItemKey returns the row key of an item
func ItemKey(itemID string) string { return "i:" + itemID }

// BuildSessionRows lays a playlist out as rows. Gap k is drawn before
// visible section k, so gaps only appear between the sentinels.
func BuildSessionRows(p domain.Playlist) []SessionRow {
	lo, hi := playlist.InsertBounds(p)
	var rows []SessionRow
	for i := 0; i <= len(p.Sections); i++ {
		if i >= lo && i <= hi {
			rows = append(rows, SessionRow{Kind: RowGap, Gap: i - lo})
		}
		if i == len(p.Sections) {
			break
		}
		s := p.Sections[i]
		rows = append(rows, SessionRow{Kind: RowSection, Section: s})
		for j, it := range s.Items {
			rows = append(rows, SessionRow{Kind: RowItem, Section: s, Item: it, ItemIndex: j})
		}
	}
	return rows
}

// SessionPane renders the session and registers a drop zone for every
// visible row through the hit-test marker.
type SessionPane struct {
	rows   []SessionRow
	marker *hittest.Marker

	cursor int
	offset int
	width  int
	height int

	focused bool
	summary string

	dragKey string         // Row being dragged
	target  hittest.Target // Drop target under the pointer

	editing string // Section whose title is being edited
	input   textinput.Model
}

// NewSessionPane creates a session pane drawing zones through marker
func NewSessionPane(marker *hittest.Marker) *SessionPane {
	ti := textinput.New()
	ti.CharLimit = 80
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)

	return &SessionPane{marker: marker, input: ti}
}

// SetPlaylist re-lays the pane, keeping the cursor on the same element
func (p *SessionPane) SetPlaylist(pl domain.Playlist) {
	key := ""
	if r, ok := p.Selected(); ok {
		key = r.Key()
	}
	p.rows = BuildSessionRows(pl)
	p.summary = fmt.Sprintf("%d sections · %d items", len(playlist.VisibleSections(pl)), pl.ItemCount())
	if key == "" || !p.SelectKey(key) {
		p.Select(p.cursor)
	}
}

// SetSize sets the outer dimensions of the pane
func (p *SessionPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = width - BorderWidth - 8
	p.ensureVisible()
}

// SetFocused marks the pane as the keyboard target
func (p *SessionPane) SetFocused(focused bool) {
	p.focused = focused
}

// Focused reports whether the pane has keyboard focus
func (p *SessionPane) Focused() bool {
	return p.focused
}

// Rows returns every row
func (p *SessionPane) Rows() []SessionRow {
	return p.rows
}

// Selected returns the row under the cursor
func (p *SessionPane) Selected() (SessionRow, bool) {
	if p.cursor < 0 || p.cursor >= len(p.rows) {
		return SessionRow{}, false
	}
	return p.rows[p.cursor], true
}

// Select moves the cursor to row i, stepping off gap rows
func (p *SessionPane) Select(i int) {
	if len(p.rows) == 0 {
		p.cursor = 0
		return
	}
	i = clamp(i, 0, len(p.rows)-1)
	if p.rows[i].Kind == RowGap {
		if next := p.nextSelectable(i, 1); next >= 0 {
			i = next
		} else if prev := p.nextSelectable(i, -1); prev >= 0 {
			i = prev
		}
	}
	p.cursor = i
	p.ensureVisible()
}

// SelectKey moves the cursor to the row with key
func (p *SessionPane) SelectKey(key string) bool {
	for i, r := range p.rows {
		if r.Key() == key {
			p.Select(i)
			return true
		}
	}
	return false
}

// MoveCursor moves by delta selectable rows
func (p *SessionPane) MoveCursor(delta int) {
	step := 1
	if delta < 0 {
		step, delta = -1, -delta
	}
	i := p.cursor
	for ; delta > 0; delta-- {
		next := p.nextSelectable(i, step)
		if next < 0 {
			break
		}
		i = next
	}
	p.cursor = i
	p.ensureVisible()
}

// Home moves to the first row
func (p *SessionPane) Home() { p.Select(0) }

// End moves to the last row
func (p *SessionPane) End() {
	p.Select(len(p.rows) - 1)
	if r, ok := p.Selected(); ok && r.Kind == RowGap {
		if prev := p.nextSelectable(p.cursor, -1); prev >= 0 {
			p.cursor = prev
		}
	}
}

func (p *SessionPane) nextSelectable(from, step int) int {
	for i := from + step; i >= 0 && i < len(p.rows); i += step {
		if p.rows[i].Kind != RowGap {
			return i
		}
	}
	return -1
}

// SetDrag marks the row being dragged and the current drop target
func (p *SessionPane) SetDrag(key string, target hittest.Target) {
	p.dragKey = key
	p.target = target
}

// ClearDrag removes drag decorations
func (p *SessionPane) ClearDrag() {
	p.dragKey = ""
	p.target = nil
}

// BeginEdit shows the title input on a section header
func (p *SessionPane) BeginEdit(s domain.Section) tea.Cmd {
	p.editing = s.ID
	p.input.SetValue(s.Title)
	p.input.CursorEnd()
	return p.input.Focus()
}

// Editing returns the section being renamed, if any
func (p *SessionPane) Editing() (string, bool) {
	return p.editing, p.editing != ""
}

// EditValue returns the title input text
func (p *SessionPane) EditValue() string {
	return p.input.Value()
}

// UpdateEdit feeds a key to the title input
func (p *SessionPane) UpdateEdit(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// EndEdit hides the title input
func (p *SessionPane) EndEdit() {
	p.editing = ""
	p.input.Blur()
}

// maxVisible is the number of rows that fit below the title
func (p *SessionPane) maxVisible() int {
	// border (2) + title + summary
	v := p.height - 4
	if v < 1 {
		v = 1
	}
	return v
}

func (p *SessionPane) ensureVisible() {
	visible := p.maxVisible()
	if p.cursor < p.offset {
		p.offset = p.cursor
		// Keep the gap above the first row in view
		if p.offset > 0 && p.rows[p.offset-1].Kind == RowGap {
			p.offset--
		}
	}
	if p.cursor >= p.offset+visible {
		p.offset = p.cursor - visible + 1
	}
	if p.offset > len(p.rows)-visible {
		p.offset = max(0, len(p.rows)-visible)
	}
}

// View renders the pane and records the drop zones of the visible rows
func (p *SessionPane) View() string {
	inner := p.width - BorderWidth
	if inner < 10 {
		inner = 10
	}

	lines := []string{
		styles.AccentStyle.Render(styles.Truncate("Session", inner)),
		styles.DimStyle.Render(styles.Truncate(p.summary, inner)),
	}

	p.marker.Begin()
	end := min(p.offset+p.maxVisible(), len(p.rows))
	for i := p.offset; i < end; i++ {
		r := p.rows[i]
		selected := i == p.cursor && p.focused
		switch r.Kind {
		case RowGap:
			lines = append(lines, p.marker.Mark(hittest.GapZone(r.Gap, hittest.Rect{}), p.renderGap(r, inner)))
		case RowSection:
			lines = append(lines, p.marker.Mark(hittest.SectionZone(r.Section.ID, hittest.Rect{}), p.renderSection(r, selected, inner)))
		case RowItem:
			lines = append(lines, p.marker.Mark(hittest.ItemZone(r.Section.ID, r.ItemIndex, hittest.Rect{}), p.renderItem(r, selected, inner)))
		}
	}
	for len(lines) < p.height-BorderWidth {
		lines = append(lines, "")
	}

	border := styles.InactiveBorder
	if p.focused {
		border = styles.ActiveBorder
	}
	return border.Width(inner).Height(p.height - BorderWidth).Render(strings.Join(lines, "\n"))
}

func (p *SessionPane) renderGap(r SessionRow, width int) string {
	if t, ok := p.target.(hittest.GapTarget); ok && t.Index == r.Gap {
		label := " new section here "
		side := max(0, (width-lipgloss.Width(label)-2)/2)
		return styles.DropTargetStyle.Render(" " + strings.Repeat(styles.GapChar, side) + label + strings.Repeat(styles.GapChar, side))
	}
	return styles.GapStyle.Render(" " + strings.Repeat(styles.GapChar, max(0, width-2)))
}

func (p *SessionPane) renderSection(r SessionRow, selected bool, width int) string {
	s := r.Section

	glyph := styles.GrabChar
	if s.Locked {
		glyph = styles.LockChar
	}

	count := "empty"
	if n := len(s.Items); n > 0 {
		count = strconv.Itoa(n)
	}

	if p.editing == s.ID {
		return " " + glyph + " " + p.input.View()
	}

	titleWidth := width - lipgloss.Width(glyph) - lipgloss.Width(count) - 6
	title := styles.Pad(styles.Truncate(s.Title, titleWidth), titleWidth)

	fg := styles.White
	if s.Locked {
		fg = styles.DimGray
	}
	parts := []styles.RowPart{
		{Text: glyph + " "},
		{Text: title, Foreground: styles.Color(fg), Bold: true},
		{Text: " " + count, Foreground: styles.Color(styles.DimGray)},
	}

	if t, ok := p.target.(hittest.SectionTarget); ok && t.SectionID == s.ID && p.dragKey != r.Key() {
		parts[0].Foreground = styles.Color(styles.Amber)
		parts[1].Foreground = styles.Color(styles.Amber)
	}
	if p.dragKey == r.Key() {
		return styles.DraggingRowStyle.Render(styles.Pad(" "+glyph+" "+styles.Truncate(s.Title, titleWidth), width))
	}
	return styles.RenderListRow(parts, selected, width)
}

func (p *SessionPane) renderItem(r SessionRow, selected bool, width int) string {
	it := r.Item
	badge := strings.ToUpper(it.FileType)
	nameWidth := width - lipgloss.Width(badge) - 8
	name := styles.Pad(styles.Truncate(it.Name, nameWidth), nameWidth)

	if p.dragKey == r.Key() {
		return styles.DraggingRowStyle.Render(styles.Pad("    "+styles.GrabChar+" "+strings.TrimRight(name, " "), width))
	}

	badgeStyle := styles.FileTypeStyle(it.FileType)
	fg := badgeStyle.GetForeground()
	var badgeColor *lipgloss.Color
	if c, ok := fg.(lipgloss.Color); ok {
		badgeColor = styles.Color(c)
	}
	parts := []styles.RowPart{
		{Text: "   "},
		{Text: name},
		{Text: " " + badge, Foreground: badgeColor},
	}
	return styles.RenderListRow(parts, selected, width)
}

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mmcdole/sessionbrew/internal/domain"
	"github.com/mmcdole/sessionbrew/internal/search"
	"github.com/mmcdole/sessionbrew/internal/tui/styles"
)

// BorderWidth is the horizontal space taken by a pane border
const BorderWidth = 2

// LibraryRow is a visible line of the library pane
type LibraryRow struct {
	Node     domain.LibraryNode
	Depth    int
	Location string // Folder trail, set for filter results
	Matched  []int  // Matched byte offsets of the label
}

// LibraryPane shows the content library as a collapsible tree, or as a flat
// list of fuzzy matches while a filter is set.
type LibraryPane struct {
	nodes    []domain.LibraryNode
	index    *search.Index
	expanded map[string]bool
	rows     []LibraryRow

	cursor int
	offset int
	width  int
	height int

	focused   bool
	loading   bool
	filtering bool // Filter input has focus
	filter    textinput.Model

	zones  *zone.Manager
	prefix string
}

// NewLibraryPane creates an empty library pane
func NewLibraryPane(zones *zone.Manager) *LibraryPane {
	ti := textinput.New()
	ti.Placeholder = "filter..."
	ti.CharLimit = 64
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return &LibraryPane{
		index:    search.NewIndex(nil),
		expanded: make(map[string]bool),
		filter:   ti,
		loading:  true,
		zones:    zones,
		prefix:   zones.NewPrefix(),
	}
}

// SetNodes replaces the tree, keeping expansion state and the selected key
func (p *LibraryPane) SetNodes(nodes []domain.LibraryNode) {
	selected, hadSelection := p.Selected()
	p.nodes = nodes
	p.index = search.NewIndex(nodes)
	p.loading = false
	p.rebuild()
	if hadSelection {
		p.SelectKey(selected.Key)
	}
}

// SetSize sets the outer dimensions of the pane
func (p *LibraryPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.filter.Width = width - BorderWidth - 4
	p.ensureVisible()
}

// SetFocused marks the pane as the keyboard target
func (p *LibraryPane) SetFocused(focused bool) {
	p.focused = focused
}

// Focused reports whether the pane has keyboard focus
func (p *LibraryPane) Focused() bool {
	return p.focused
}

// Rows returns the visible rows
func (p *LibraryPane) Rows() []LibraryRow {
	return p.rows
}

// Cursor returns the selected row index
func (p *LibraryPane) Cursor() int {
	return p.cursor
}

// Selected returns the node under the cursor
func (p *LibraryPane) Selected() (domain.LibraryNode, bool) {
	if p.cursor < 0 || p.cursor >= len(p.rows) {
		return domain.LibraryNode{}, false
	}
	return p.rows[p.cursor].Node, true
}

// Select moves the cursor to row i
func (p *LibraryPane) Select(i int) {
	if len(p.rows) == 0 {
		p.cursor = 0
		return
	}
	p.cursor = clamp(i, 0, len(p.rows)-1)
	p.ensureVisible()
}

// SelectKey moves the cursor to the row showing key, if visible
func (p *LibraryPane) SelectKey(key string) bool {
	for i, r := range p.rows {
		if r.Node.Key == key {
			p.Select(i)
			return true
		}
	}
	return false
}

// MoveCursor moves the cursor by delta rows
func (p *LibraryPane) MoveCursor(delta int) {
	p.Select(p.cursor + delta)
}

// Expand opens the selected folder
func (p *LibraryPane) Expand() {
	n, ok := p.Selected()
	if !ok || !n.IsFolder() || p.Query() != "" {
		return
	}
	p.expanded[n.Key] = true
	p.rebuild()
}

// Collapse closes the selected folder, or jumps to the enclosing one
func (p *LibraryPane) Collapse() {
	n, ok := p.Selected()
	if !ok || p.Query() != "" {
		return
	}
	if n.IsFolder() && p.expanded[n.Key] {
		delete(p.expanded, n.Key)
		p.rebuild()
		return
	}
	depth := p.rows[p.cursor].Depth
	for i := p.cursor - 1; i >= 0; i-- {
		if p.rows[i].Depth < depth {
			p.Select(i)
			return
		}
	}
}

// Toggle expands or collapses the selected folder
func (p *LibraryPane) Toggle() {
	n, ok := p.Selected()
	if !ok || !n.IsFolder() {
		return
	}
	if p.expanded[n.Key] {
		p.Collapse()
		return
	}
	p.Expand()
}

// StartFilter focuses the filter input
func (p *LibraryPane) StartFilter() tea.Cmd {
	p.filtering = true
	return p.filter.Focus()
}

// IsFiltering reports whether the filter input has focus
func (p *LibraryPane) IsFiltering() bool {
	return p.filtering
}

// Query returns the active filter text
func (p *LibraryPane) Query() string {
	return strings.TrimSpace(p.filter.Value())
}

// StopFilter keeps the results but returns focus to the list
func (p *LibraryPane) StopFilter() {
	p.filtering = false
	p.filter.Blur()
}

// ClearFilter drops the filter and returns to the tree
func (p *LibraryPane) ClearFilter() {
	p.StopFilter()
	p.filter.SetValue("")
	p.rebuild()
}

// UpdateFilter feeds a key to the filter input
func (p *LibraryPane) UpdateFilter(msg tea.Msg) tea.Cmd {
	before := p.filter.Value()
	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(msg)
	if p.filter.Value() != before {
		p.rebuild()
		p.Select(0)
	}
	return cmd
}

// RowAt returns the row under a mouse event
func (p *LibraryPane) RowAt(msg tea.MouseMsg) (int, bool) {
	end := min(p.offset+p.maxVisible(), len(p.rows))
	for i := p.offset; i < end; i++ {
		if p.zones.Get(p.rowID(i)).InBounds(msg) {
			return i, true
		}
	}
	return -1, false
}

func (p *LibraryPane) rebuild() {
	p.rows = p.rows[:0]
	if q := p.Query(); q != "" {
		for _, r := range p.index.Filter(q) {
			p.rows = append(p.rows, LibraryRow{
				Node:     r.Node,
				Location: r.Location(),
				Matched:  r.MatchedIndexes,
			})
		}
	} else {
		p.appendTree(p.nodes, 0)
	}
	p.Select(p.cursor)
}

func (p *LibraryPane) appendTree(nodes []domain.LibraryNode, depth int) {
	for _, n := range nodes {
		p.rows = append(p.rows, LibraryRow{Node: n, Depth: depth})
		if n.IsFolder() && p.expanded[n.Key] {
			p.appendTree(n.Children, depth+1)
		}
	}
}

// maxVisible is the number of list rows that fit below the title and filter
func (p *LibraryPane) maxVisible() int {
	// border (2) + title + filter line
	v := p.height - 4
	if v < 1 {
		v = 1
	}
	return v
}

func (p *LibraryPane) ensureVisible() {
	visible := p.maxVisible()
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+visible {
		p.offset = p.cursor - visible + 1
	}
	if p.offset > len(p.rows)-visible {
		p.offset = max(0, len(p.rows)-visible)
	}
}

func (p *LibraryPane) rowID(i int) string {
	return p.prefix + "row:" + strconv.Itoa(i)
}

// View renders the pane
func (p *LibraryPane) View() string {
	inner := p.width - BorderWidth
	if inner < 10 {
		inner = 10
	}

	lines := []string{styles.AccentStyle.Render(styles.Truncate("Library", inner))}
	if p.filtering || p.Query() != "" {
		lines = append(lines, p.filter.View())
	} else {
		lines = append(lines, styles.DimStyle.Render(styles.Truncate("/ to filter · a to add", inner)))
	}

	switch {
	case p.loading:
		lines = append(lines, styles.DimStyle.Render("Scanning..."))
	case len(p.rows) == 0 && p.Query() != "":
		lines = append(lines, styles.DimStyle.Render("No matches"))
	case len(p.rows) == 0:
		lines = append(lines, styles.DimStyle.Render("Library is empty"))
	}

	end := min(p.offset+p.maxVisible(), len(p.rows))
	for i := p.offset; i < end; i++ {
		lines = append(lines, p.zones.Mark(p.rowID(i), p.renderRow(p.rows[i], i == p.cursor, inner)))
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

func (p *LibraryPane) renderRow(r LibraryRow, selected bool, width int) string {
	n := r.Node
	indent := strings.Repeat("  ", r.Depth)

	glyph := " "
	if n.IsFolder() {
		glyph = styles.FolderClosed
		if p.expanded[n.Key] && p.Query() == "" {
			glyph = styles.FolderOpen
		}
	}

	badge := n.DisplayType()
	if n.IsFolder() {
		badge = strconv.Itoa(n.FileCount())
	}
	labelWidth := width - lipgloss.Width(indent) - lipgloss.Width(badge) - 5
	label := styles.Truncate(n.Label, labelWidth)

	parts := []styles.RowPart{{Text: indent + glyph + " "}}
	parts = append(parts, highlight(label, r.Matched, selected)...)
	pad := labelWidth - lipgloss.Width(label)
	if pad > 0 {
		parts = append(parts, styles.RowPart{Text: strings.Repeat(" ", pad)})
	}
	badgeColor := styles.DimGray
	if !n.IsFolder() {
		badgeColor = styles.LightGray
	}
	parts = append(parts, styles.RowPart{Text: " " + badge, Foreground: styles.Color(badgeColor)})
	return styles.RenderListRow(parts, selected, width)
}

// highlight splits a label into parts, coloring the matched runes
func highlight(label string, matched []int, selected bool) []styles.RowPart {
	if len(matched) == 0 {
		return []styles.RowPart{{Text: label, Bold: selected}}
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var parts []styles.RowPart
	var run []rune
	runHit := false
	flush := func() {
		if len(run) == 0 {
			return
		}
		part := styles.RowPart{Text: string(run), Bold: selected}
		if runHit {
			part.Foreground = styles.Color(styles.Amber)
			part.Bold = true
		}
		parts = append(parts, part)
		run = run[:0]
	}
	for i, r := range label {
		if hit[i] != runHit {
			flush()
			runHit = hit[i]
		}
		run = append(run, r)
	}
	flush()
	return parts
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

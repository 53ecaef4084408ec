package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mmcdole/sessionbrew/internal/domain"
	"github.com/mmcdole/sessionbrew/internal/drag"
	"github.com/mmcdole/sessionbrew/internal/drop"
	"github.com/mmcdole/sessionbrew/internal/hittest"
	"github.com/mmcdole/sessionbrew/internal/notify"
	"github.com/mmcdole/sessionbrew/internal/playlist"
	"github.com/mmcdole/sessionbrew/internal/titleedit"
	"github.com/mmcdole/sessionbrew/internal/tui/components"
	"github.com/mmcdole/sessionbrew/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
	StateNotices
)

// Layout
const (
	DefaultLibraryPercent = 40
	MinPaneWidth          = 20

	// Vertical layout: single footer line
	ChromeHeight = 1

	statusTimeout = 4 * time.Second
)

// Library is what the TUI needs from the content library
type Library interface {
	domain.LibraryProvider
	Refresher
}

// Services wires the model to the session, library and notices
type Services struct {
	Playlist *playlist.Service
	Library  Library
	Drops    *drop.Adapter
	Opener   Opener
	Sink     domain.NotificationSink // Where the TUI raises its own notices
	History  *notify.History
	Notices  <-chan domain.Notice // Fed by a notify.ChannelSink
	Logger   *slog.Logger
}

// Options holds UI settings
type Options struct {
	LibraryPercent int
}

// libraryDrag is a library node held by the pointer
type libraryDrag struct {
	node  domain.LibraryNode
	moved bool
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	PlaylistSvc *playlist.Service
	LibrarySvc  Library
	Drops       *drop.Adapter
	Opener      Opener
	sink        domain.NotificationSink
	history     *notify.History
	notices     <-chan domain.Notice
	logger      *slog.Logger

	// UI Components
	Library *components.LibraryPane
	Session *components.SessionPane

	// Drag and drop
	zones      *zone.Manager
	marker     *hittest.Marker
	registry   *hittest.Registry
	drag       *drag.Controller
	mouseDrag  bool         // The active drag follows the pointer
	libDrag    *libraryDrag // Library node being dragged onto the session
	editor     *titleedit.Editor
	dropTarget hittest.Target

	// Dimensions
	Width          int
	Height         int
	libraryPercent int

	// UI state
	StatusMsg      string
	StatusSeverity domain.Severity
}

// NewModel creates a new application model
func NewModel(svc Services, opts Options) Model {
	logger := svc.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sink := svc.Sink
	if sink == nil {
		sink = domain.DiscardSink{}
	}
	history := svc.History
	if history == nil {
		history = notify.NewHistory(0)
	}
	percent := opts.LibraryPercent
	if percent <= 0 || percent >= 100 {
		percent = DefaultLibraryPercent
	}

	zones := zone.New()
	marker := hittest.NewMarker(zones)

	m := Model{
		State:          StateBrowsing,
		PlaylistSvc:    svc.Playlist,
		LibrarySvc:     svc.Library,
		Drops:          svc.Drops,
		Opener:         svc.Opener,
		sink:           sink,
		history:        history,
		notices:        svc.Notices,
		logger:         logger,
		Library:        components.NewLibraryPane(zones),
		Session:        components.NewSessionPane(marker),
		zones:          zones,
		marker:         marker,
		registry:       hittest.NewRegistry(),
		drag:           drag.NewController(logger),
		editor:         &titleedit.Editor{},
		libraryPercent: percent,
	}
	m.Library.SetFocused(true)
	m.Session.SetPlaylist(m.PlaylistSvc.Playlist())
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{LoadTreeCmd(m.LibrarySvc)}
	if m.notices != nil {
		cmds = append(cmds, WaitNoticeCmd(m.notices))
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case TreeLoadedMsg:
		m.Library.SetNodes(msg.Nodes)
		m.logger.Debug("library loaded", "nodes", len(msg.Nodes))
		return m, nil

	case DropResolvedMsg:
		next, changed := m.Drops.Apply(m.PlaylistSvc.Playlist(), msg.Result)
		if changed {
			m.PlaylistSvc.Replace(next)
			m.syncSession()
		}
		return m, nil

	case NoticeMsg:
		m.StatusMsg = components.FormatNotice(msg.Notice, max(10, m.Width/2))
		m.StatusSeverity = msg.Notice.Severity
		return m, tea.Batch(WaitNoticeCmd(m.notices), ClearStatusCmd(statusTimeout))

	case FileOpenedMsg:
		m.logger.Info("opened item", "itemID", msg.Item.ID, "path", msg.Item.Path)
		m.StatusMsg = styles.DimStyle.Render("Opened " + msg.Item.Name)
		m.StatusSeverity = domain.SeverityInfo
		return m, ClearStatusCmd(2 * time.Second)

	case ErrMsg:
		m.logger.Error("operation failed", "error", msg.Err, "context", msg.Context)
		m.sink.Notify(domain.Notice{Severity: domain.SeverityError, Summary: "Something went wrong", Detail: msg.Error()})
		return m, nil

	case ClearStatusMsg:
		m.StatusMsg = ""
		return m, nil
	}

	return m, nil
}

// currentPlaylist is what the session pane shows: the drag preview while
// dragging, the committed session otherwise
func (m Model) currentPlaylist() domain.Playlist {
	if m.drag.State() == drag.Dragging {
		return m.drag.Preview()
	}
	return m.PlaylistSvc.Playlist()
}

// syncSession re-lays the session pane after a change
func (m *Model) syncSession() {
	m.Session.SetPlaylist(m.currentPlaylist())
	if subject, ok := m.drag.Active(); ok {
		key := subjectKey(subject)
		m.Session.SelectKey(key)
		m.Session.SetDrag(key, m.dropTarget)
		return
	}
	m.Session.ClearDrag()
}

func subjectKey(s drag.Subject) string {
	switch s := s.(type) {
	case drag.SectionSubject:
		return components.SectionKey(s.ID)
	case drag.ItemSubject:
		return components.ItemKey(s.ID)
	}
	return ""
}

// focus moves keyboard focus to the library (true) or session pane
func (m *Model) focus(library bool) {
	m.Library.SetFocused(library)
	m.Session.SetFocused(!library)
}

// notify raises a notice from the TUI itself
func (m Model) notify(severity domain.Severity, summary, detail string) {
	m.sink.Notify(domain.Notice{Severity: severity, Summary: summary, Detail: detail})
}

func (m *Model) updateLayout() {
	contentHeight := m.Height - ChromeHeight
	libWidth := m.Width * m.libraryPercent / 100
	if libWidth < MinPaneWidth {
		libWidth = MinPaneWidth
	}
	sessionWidth := m.Width - libWidth
	if sessionWidth < MinPaneWidth {
		sessionWidth = MinPaneWidth
	}
	m.Library.SetSize(libWidth, contentHeight)
	m.Session.SetSize(sessionWidth, contentHeight)
}

// libraryWidth is the number of columns taken by the library pane
func (m Model) libraryWidth() int {
	return max(MinPaneWidth, m.Width*m.libraryPercent/100)
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	switch m.State {
	case StateHelp:
		return m.renderHelp()
	case StateNotices:
		return components.RenderNoticeConsole(m.history.Notices(), m.Width, m.Height)
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, m.Library.View(), m.Session.View())
	return m.zones.Scan(lipgloss.JoinVertical(lipgloss.Left, content, m.renderFooter()))
}

func (m Model) renderFooter() string {
	var left string
	switch {
	case m.libDrag != nil && m.libDrag.moved:
		left = styles.AccentStyle.Render(styles.GrabChar + " " + m.libDrag.node.Label)
	case m.drag.State() == drag.Dragging && !m.mouseDrag:
		left = styles.AccentStyle.Render("Moving") + styles.DimStyle.Render(" · j/k move · space drop · esc cancel")
	case m.Drops.Busy():
		left = styles.DimStyle.Render("Adding files...")
	case m.StatusMsg != "":
		left = m.StatusMsg
	default:
		left = styles.DimStyle.Render(m.PlaylistSvc.Summary())
	}

	var center string
	if row, ok := m.Session.Selected(); ok && m.Session.Focused() {
		switch row.Kind {
		case components.RowSection:
			if !row.Section.Locked {
				center = hint("r", "Rename") + "  " + hint("x", "Delete") + "  " + hint("space", "Move")
			}
		case components.RowItem:
			center = hint("o", "Open") + "  " + hint("x", "Remove") + "  " + hint("space", "Move")
		}
	}

	right := hint("?", "help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)
	if leftWidth+centerWidth+rightWidth >= m.Width {
		gap := max(0, m.Width-leftWidth-rightWidth)
		return left + strings.Repeat(" ", gap) + right
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad
	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

func hint(k, desc string) string {
	return styles.HelpKeyStyle.Render(k) + styles.HelpDescStyle.Render(" "+desc)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
LIBRARY                          SESSION
  j/k        Up/down               space  Pick up / drop
  h/l        Collapse/expand       j/k    Move picked element
  /          Filter                r      Rename section
  a, enter   Add to session        n      New section
  R          Rescan                x      Delete section/item
                                   o      Open file
MOUSE                              esc    Cancel move
  Drag library entries onto a section, a gap or the background.
  Drag section headers and items to reorder them.

GENERAL
  tab        Switch pane           N      Notices
  ?          Help                  q      Quit
`
	content := styles.ModalTitleStyle.Render("Keyboard Shortcuts") + help
	modal := styles.ModalStyle.Render(content)
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, modal)
}

// describeTarget names a drop target for log lines
func describeTarget(t hittest.Target) string {
	if t == nil {
		return "none"
	}
	return fmt.Sprint(t)
}

package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/sessionbrew/internal/domain"
	"github.com/mmcdole/sessionbrew/internal/drop"
)

// Command factories for async operations

// LoadTreeCmd loads the library tree
func LoadTreeCmd(provider domain.LibraryProvider) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		nodes, err := provider.Tree(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading library"}
		}
		return TreeLoadedMsg{Nodes: nodes}
	}
}

// Refresher rescans the library, bypassing the cache
type Refresher interface {
	Refresh(ctx context.Context) ([]domain.LibraryNode, error)
}

// RefreshTreeCmd rescans the library
func RefreshTreeCmd(r Refresher) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
		defer cancel()

		nodes, err := r.Refresh(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "rescanning library"}
		}
		return TreeLoadedMsg{Nodes: nodes}
	}
}

// ResolveDropCmd resolves an external drop off the event loop
func ResolveDropCmd(p *drop.Pending) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		return DropResolvedMsg{Result: p.Wait(ctx)}
	}
}

// WaitNoticeCmd waits for the next notice raised by a service
func WaitNoticeCmd(ch <-chan domain.Notice) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return NoticeMsg{Notice: n}
	}
}

// Opener hands a file to an external viewer
type Opener interface {
	Open(path, fileType string) error
}

// OpenItemCmd opens an item in its viewer
func OpenItemCmd(o Opener, item domain.Item) tea.Cmd {
	return func() tea.Msg {
		if err := o.Open(item.Path, item.FileType); err != nil {
			return ErrMsg{Err: err, Context: "opening " + item.Name}
		}
		return FileOpenedMsg{Item: item}
	}
}

// ClearStatusCmd returns a command that clears the status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

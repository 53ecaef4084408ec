package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/sessionbrew/internal/adapter"
	"github.com/mmcdole/sessionbrew/internal/domain"
	"github.com/mmcdole/sessionbrew/internal/drop"
	"github.com/mmcdole/sessionbrew/internal/library"
	"github.com/mmcdole/sessionbrew/internal/notify"
	"github.com/mmcdole/sessionbrew/internal/playlist"
	"github.com/mmcdole/sessionbrew/internal/tui"
)

// noticeBuffer bounds notices queued for the TUI. Extra notices still
// reach the log and the notice console.
const noticeBuffer = 64

func runTUI(cmd *cobra.Command, ctx *commandContext) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("sessionbrew needs an interactive terminal; use a subcommand for scripted use")
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger := ctx.ensureLogger()

	cache, err := ctx.openStore()
	if err != nil {
		logger.Warn("library cache unavailable, scanning without it", "error", err)
	}

	var libStore domain.LibraryStore
	if cache != nil {
		libStore = cache
	}

	// Notices fan out to the log, the console history and the status line
	notices := make(chan domain.Notice, noticeBuffer)
	history := notify.NewHistory(cfg.UI.NoticeHistory)
	sink := notify.Fanout{history, notify.NewLogSink(logger), notify.NewChannelSink(notices)}

	ids := domain.UUIDGenerator{}
	session := domain.NewPlaylist(ids, domain.PlaylistOptions{
		IntroTitle:       cfg.Session.IntroTitle,
		OutroTitle:       cfg.Session.OutroTitle,
		WithoutSentinels: !cfg.Session.Sentinels,
	})

	lib := library.NewService(cfg.Library.Path, libStore, logger)
	resolver := library.NewResolver(libStore, logger)

	model := tui.NewModel(tui.Services{
		Playlist: playlist.NewService(session, ids, sink, logger),
		Library:  lib,
		Drops:    drop.NewAdapter(resolver, ids, sink, logger),
		Opener:   adapter.NewLauncher(cfg.Open.Command, cfg.Open.Args, logger),
		Sink:     sink,
		History:  history,
		Notices:  notices,
		Logger:   logger,
	}, tui.Options{LibraryPercent: cfg.UI.LibraryWidth})

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(cmd.Context())}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	logger.Info("starting TUI", "library", lib.Root(), "cache", cfg.CacheDir())
	p := tea.NewProgram(model, opts...)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("run TUI: %w", err)
	}
	logger.Info("shutting down")
	return nil
}

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmcdole/sessionbrew/internal/adapter"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			open := cfg.Open.Command
			if open == "" {
				open = "(system default)"
			} else if len(cfg.Open.Args) > 0 {
				open += " " + strings.Join(cfg.Open.Args, " ")
			}
			rows := [][]string{
				{"library.path", cfg.Library.Path},
				{"session.intro_title", cfg.Session.IntroTitle},
				{"session.outro_title", cfg.Session.OutroTitle},
				{"session.sentinels", yesNo(cfg.Session.Sentinels)},
				{"ui.library_width", strconv.Itoa(cfg.UI.LibraryWidth) + "%"},
				{"ui.mouse", yesNo(cfg.UI.Mouse)},
				{"ui.notice_history", strconv.Itoa(cfg.UI.NoticeHistory)},
				{"open.command", open},
				{"logging.file", cfg.Logging.File},
				{"logging.level", cfg.Logging.Level},
				{"cache.enabled", yesNo(cfg.Cache.Enabled)},
				{"cache.dir", cfg.Cache.Dir},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Key", "Value"}, rows, nil))
			return nil
		},
	})

	var overwrite bool
	initCmd := &cobra.Command{
		Use:         "init [path]",
		Short:       "Write a default configuration file",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ctx.configPath()
			if len(args) == 1 {
				path = args[0]
			}
			target := path
			if target == "" {
				target = filepath.Join(adapter.ConfigDir(), "config.yaml")
			}
			target = adapter.ExpandPath(target)

			if _, err := os.Stat(target); err == nil && !overwrite {
				return fmt.Errorf("%s already exists (use --force to overwrite)", target)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("check %s: %w", target, err)
			}

			if err := adapter.SaveConfig(adapter.DefaultConfig(), target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", target)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&overwrite, "force", "f", false, "Overwrite an existing file")
	configCmd.AddCommand(initCmd)

	return configCmd
}

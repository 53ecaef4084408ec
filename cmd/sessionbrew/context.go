package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/mmcdole/sessionbrew/internal/adapter"
	"github.com/mmcdole/sessionbrew/internal/store"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *adapter.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	logCloser  io.Closer

	store *store.LibraryStore
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*adapter.Config, error) {
	c.configOnce.Do(func() {
		cfg, err := adapter.LoadConfig(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *adapter.Config {
	cfg, err := c.ensureConfig()
	if err != nil || cfg == nil {
		return adapter.DefaultConfig()
	}
	return cfg
}

// ensureLogger sets up file logging once. Failures fall back to a
// discarding logger; the terminal belongs to the TUI.
func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg := c.configValue()
		logger, closer, err := adapter.SetupLogger(&cfg.Logging)
		if err != nil {
			logger = adapter.NullLogger()
		}
		c.logger = logger
		c.logCloser = closer
		slog.SetDefault(logger)
	})
	return c.logger
}

// openStore opens the library cache. A disabled cache gives a memory-only store.
func (c *commandContext) openStore() (*store.LibraryStore, error) {
	if c.store != nil {
		return c.store, nil
	}
	dir := c.configValue().CacheDir()
	s, err := store.NewLibraryStore(dir)
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", dir, err)
	}
	c.store = s
	return s, nil
}

func (c *commandContext) close() error {
	var firstErr error
	if c.store != nil {
		if err := c.store.Close(); err != nil {
			firstErr = err
		}
		c.store = nil
	}
	if c.logCloser != nil {
		if err := c.logCloser.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		c.logCloser = nil
	}
	return firstErr
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

package adapter

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("library: [unclosed\n"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `library:
  path: /srv/content
session:
  intro_title: Welcome
  sentinels: false
ui:
  library_width: 55
cache:
  enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/content", cfg.Library.Path)
	assert.Equal(t, "Welcome", cfg.Session.IntroTitle)
	assert.Equal(t, "Outro", cfg.Session.OutroTitle)
	assert.False(t, cfg.Session.Sentinels)
	assert.Equal(t, 55, cfg.UI.LibraryWidth)
	assert.True(t, cfg.UI.Mouse)
	assert.Empty(t, cfg.CacheDir())
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("session:\n  outro_title: Bye\n"), 0644))
	t.Setenv("SESSIONBREW_SESSION_OUTRO_TITLE", "Wrap-up")
	t.Setenv("SESSIONBREW_LOGGING_LEVEL", "debug")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Wrap-up", cfg.Session.OutroTitle)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Library.Path = "/data/library"
	cfg.UI.NoticeHistory = 7
	cfg.Open = OpenConfig{Command: "onlyoffice", Args: []string{"--view"}}

	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "lib"), ExpandPath("~/lib"))
	assert.Equal(t, "/abs", ExpandPath("/abs"))
}

func TestSetupLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	logger, closer, err := SetupLogger(&LoggingConfig{File: path, Level: "warn"})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", "sectionID", "s1")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry), "exactly one JSON line")
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "s1", entry["sectionID"])
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("WARNING"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("nonsense"))
}

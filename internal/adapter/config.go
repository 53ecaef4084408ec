package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// AppName names the config, data and cache directories
const AppName = "sessionbrew"

// Config holds all application configuration
type Config struct {
	Library LibraryConfig `mapstructure:"library"`
	Session SessionConfig `mapstructure:"session"`
	UI      UIConfig      `mapstructure:"ui"`
	Open    OpenConfig    `mapstructure:"open"`
	Logging LoggingConfig `mapstructure:"logging"`
	Cache   CacheConfig   `mapstructure:"cache"`
}

// LibraryConfig holds content library configuration
type LibraryConfig struct {
	Path string `mapstructure:"path"` // Root folder scanned for content
}

// SessionConfig holds defaults for new sessions
type SessionConfig struct {
	IntroTitle string `mapstructure:"intro_title"`
	OutroTitle string `mapstructure:"outro_title"`
	Sentinels  bool   `mapstructure:"sentinels"` // false = no locked intro/outro sections
}

// UIConfig holds UI configuration
type UIConfig struct {
	LibraryWidth  int  `mapstructure:"library_width"` // Percent of the screen for the library pane
	Mouse         bool `mapstructure:"mouse"`
	NoticeHistory int  `mapstructure:"notice_history"` // Notices kept in the console
}

// OpenConfig holds the external viewer used to open items
type OpenConfig struct {
	Command string   `mapstructure:"command"` // Empty = detect per file type
	Args    []string `mapstructure:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// CacheConfig holds library cache configuration
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Library: LibraryConfig{
			Path: ".",
		},
		Session: SessionConfig{
			IntroTitle: "Introduction",
			OutroTitle: "Outro",
			Sentinels:  true,
		},
		UI: UIConfig{
			LibraryWidth:  40,
			Mouse:         true,
			NoticeHistory: 50,
		},
		Open: OpenConfig{
			Command: "",
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     defaultCachePath(),
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), AppName, AppName+".log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", AppName, AppName+".log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), AppName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", AppName)
	}
}

// ConfigDir returns the directory searched for config.yaml
func ConfigDir() string {
	return defaultConfigPath()
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), AppName, "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", AppName, "cache")
	}
}

// newViper creates a viper instance seeded with every default so that
// SESSIONBREW_* environment variables can override any key.
func newViper() *viper.Viper {
	v := viper.New()
	d := DefaultConfig()

	v.SetDefault("library.path", d.Library.Path)
	v.SetDefault("session.intro_title", d.Session.IntroTitle)
	v.SetDefault("session.outro_title", d.Session.OutroTitle)
	v.SetDefault("session.sentinels", d.Session.Sentinels)
	v.SetDefault("ui.library_width", d.UI.LibraryWidth)
	v.SetDefault("ui.mouse", d.UI.Mouse)
	v.SetDefault("ui.notice_history", d.UI.NoticeHistory)
	v.SetDefault("open.command", d.Open.Command)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.dir", d.Cache.Dir)

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig loads configuration from file and environment.
// An empty path searches the OS config directory and the working directory.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Library.Path = ExpandPath(cfg.Library.Path)
	cfg.Logging.File = ExpandPath(cfg.Logging.File)
	cfg.Cache.Dir = ExpandPath(cfg.Cache.Dir)
	return cfg, nil
}

// SaveConfig writes cfg as YAML. An empty path writes to the OS config directory.
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = filepath.Join(defaultConfigPath(), "config.yaml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("library.path", cfg.Library.Path)
	v.Set("session.intro_title", cfg.Session.IntroTitle)
	v.Set("session.outro_title", cfg.Session.OutroTitle)
	v.Set("session.sentinels", cfg.Session.Sentinels)
	v.Set("ui.library_width", cfg.UI.LibraryWidth)
	v.Set("ui.mouse", cfg.UI.Mouse)
	v.Set("ui.notice_history", cfg.UI.NoticeHistory)
	v.Set("open.command", cfg.Open.Command)
	if len(cfg.Open.Args) > 0 {
		v.Set("open.args", cfg.Open.Args)
	}
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)
	v.Set("cache.enabled", cfg.Cache.Enabled)
	v.Set("cache.dir", cfg.Cache.Dir)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// CacheDir returns the cache directory to open, or "" for a memory-only cache
func (c *Config) CacheDir() string {
	if !c.Cache.Enabled {
		return ""
	}
	return c.Cache.Dir
}

// ClearCache removes all cached data under dir
func ClearCache(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"

	"github.com/mmcdole/sessionbrew/internal/domain"
)

// Launcher opens library files in an external application
type Launcher struct {
	command string   // configured command, empty for detection
	args    []string // additional arguments for the command
	goos    string
	start   func(name string, args ...string) error
	look    func(file string) (string, error)
	logger  *slog.Logger
}

// launchPath defines a single way to open a file
type launchPath struct {
	path      string   // Command path: "libreoffice", or "open-a:AppName"
	args      []string // Arguments before the file
	openFlags []string // For "open-a:" paths only - flags for macOS open command
}

// viewers registry: file type -> platform -> launch paths to try in order
var viewers = map[string]map[string][]launchPath{
	domain.FileTypePresentation: {
		"darwin":  {{path: "open-a:Microsoft PowerPoint"}, {path: "open-a:Keynote"}},
		"linux":   {{path: "libreoffice", args: []string{"--impress"}}, {path: "soffice", args: []string{"--impress"}}},
		"windows": {{path: "POWERPNT.EXE"}},
	},
	domain.FileTypeDocument: {
		"darwin":  {{path: "open-a:Microsoft Word"}, {path: "open-a:Pages"}},
		"linux":   {{path: "libreoffice", args: []string{"--writer"}}, {path: "soffice", args: []string{"--writer"}}},
		"windows": {{path: "WINWORD.EXE"}},
	},
	domain.FileTypeSpreadsheet: {
		"darwin":  {{path: "open-a:Microsoft Excel"}, {path: "open-a:Numbers"}},
		"linux":   {{path: "libreoffice", args: []string{"--calc"}}, {path: "soffice", args: []string{"--calc"}}},
		"windows": {{path: "EXCEL.EXE"}},
	},
	domain.FileTypePDF: {
		"darwin": {{path: "open-a:Preview", openFlags: []string{"-n"}}},
		"linux":  {{path: "evince"}, {path: "okular"}, {path: "zathura"}},
	},
}

// NewLauncher creates a launcher. An empty command detects a viewer per
// file type and falls back to the system default handler.
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command: command,
		args:    args,
		goos:    runtime.GOOS,
		start:   startCommand,
		look:    exec.LookPath,
		logger:  logger,
	}
}

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start() // Start async, don't wait
}

// Open launches path with the configured command, a detected viewer for
// fileType, or the system default, in that order.
func (l *Launcher) Open(path, fileType string) error {
	// Tier 1: User configured a specific command
	if l.command != "" {
		args := append(append([]string{}, l.args...), path)
		l.logger.Info("opening with configured command", "command", l.command, "path", path)
		return l.start(l.command, args...)
	}

	// Tier 2: Viewer chain for the file type
	if name, args, ok := l.detect(path, fileType); ok {
		err := l.start(name, args...)
		if err == nil {
			l.logger.Info("opened with detected viewer", "command", name, "path", path)
			return nil
		}
		l.logger.Debug("viewer failed to start", "command", name, "error", err)
	}

	// Tier 3: System default (open/xdg-open/start)
	name, args := l.defaultCommand(path)
	l.logger.Info("opening with system default", "os", l.goos, "path", path)
	if err := l.start(name, args...); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}

// detect returns the first available viewer command for fileType
func (l *Launcher) detect(path, fileType string) (string, []string, bool) {
	for _, lp := range viewers[fileType][l.goos] {
		if app, ok := strings.CutPrefix(lp.path, "open-a:"); ok {
			// open -a fails by itself when the app is missing
			args := append(append([]string{}, lp.openFlags...), "-a", app, path)
			return "open", args, true
		}
		if _, err := l.look(lp.path); err != nil {
			l.logger.Debug("viewer not available", "command", lp.path, "error", err)
			continue
		}
		return lp.path, append(append([]string{}, lp.args...), path), true
	}
	return "", nil, false
}

// defaultCommand returns the system default handler invocation
func (l *Launcher) defaultCommand(path string) (string, []string) {
	switch l.goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "cmd", []string{"/c", "start", "", path}
	default:
		return "xdg-open", []string{path}
	}
}

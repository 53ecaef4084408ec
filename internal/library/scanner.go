package library

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mmcdole/sessionbrew/internal/domain"
)

// Scanner builds the library tree from a directory on disk
type Scanner struct {
	logger *slog.Logger
}

// NewScanner creates a new scanner
func NewScanner(logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{logger: logger}
}

// Scan returns the children of root: directories first, then files, each
// group sorted case-insensitively. Folders without any base file are pruned.
// A missing root yields an empty tree.
func (s *Scanner) Scan(ctx context.Context, root string) ([]domain.LibraryNode, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("library root does not exist", "root", abs)
			return []domain.LibraryNode{}, nil
		}
		return nil, err
	}
	return s.scanDir(ctx, abs)
}

func (s *Scanner) scanDir(ctx context.Context, dir string) ([]domain.LibraryNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsPermission(err) {
			s.logger.Debug("skipping unreadable folder", "path", dir, "error", err)
			return []domain.LibraryNode{}, nil
		}
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := entries[i].IsDir(), entries[j].IsDir()
		if di != dj {
			return di
		}
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})

	nodes := []domain.LibraryNode{}
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if e.IsDir() {
			if IsIgnoredFolder(e.Name()) {
				continue
			}
			children, err := s.scanDir(ctx, path)
			if err != nil {
				return nil, err
			}
			if len(children) == 0 {
				continue
			}
			nodes = append(nodes, domain.LibraryNode{Key: path, Label: e.Name(), Data: path, Children: children})
			continue
		}
		if !IsBaseFile(e.Name()) {
			continue
		}
		nodes = append(nodes, domain.LibraryNode{Key: path, Label: e.Name(), Data: path, Type: FileType(e.Name())})
	}
	return nodes, nil
}

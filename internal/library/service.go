// Package library scans the content library on disk and resolves dragged
// library nodes into files.
package library

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mmcdole/sessionbrew/internal/domain"
)

// Service orchestrates scanner + store operations for one library root.
// It implements domain.LibraryProvider.
type Service struct {
	root    string
	scanner *Scanner
	store   domain.LibraryStore
	logger  *slog.Logger
}

// NewService creates a new library service. store may be nil.
func NewService(root string, store domain.LibraryStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &Service{root: root, scanner: NewScanner(logger), store: store, logger: logger}
}

// Root returns the absolute library root
func (s *Service) Root() string {
	return s.root
}

// Tree returns the library tree, from cache when the root has not changed
// since the last scan.
func (s *Service) Tree(ctx context.Context) ([]domain.LibraryNode, error) {
	modTS := s.modTime()

	// 1. Freshness check
	if s.store != nil && s.store.IsValid(s.root, modTS) {
		if nodes, ok := s.store.GetTree(s.root); ok {
			s.logger.Debug("library cache fresh", "root", s.root, "nodes", len(nodes))
			return nodes, nil
		}
	}

	// 2. Scan
	s.logger.Debug("library cache stale, scanning", "root", s.root)
	nodes, err := s.scanner.Scan(ctx, s.root)
	if err != nil {
		s.logger.Error("failed to scan library", "error", err, "root", s.root)
		return nil, err
	}

	if s.store != nil {
		// A rescan may change what folders resolve to
		s.store.InvalidateTree(s.root)
		if err := s.store.SaveTree(s.root, nodes, modTS); err != nil {
			s.logger.Error("failed to save library tree", "error", err, "root", s.root)
		}
	}
	s.logger.Info("scanned library", "root", s.root, "nodes", len(nodes))
	return nodes, nil
}

// Refresh drops cached data for the root and rescans
func (s *Service) Refresh(ctx context.Context) ([]domain.LibraryNode, error) {
	if s.store != nil {
		s.store.InvalidateTree(s.root)
	}
	return s.Tree(ctx)
}

// modTime is the root's modification time. Changes deeper in the tree are
// picked up by Refresh.
func (s *Service) modTime() int64 {
	info, err := os.Stat(s.root)
	if err != nil {
		return 0
	}
	return info.ModTime().UnixNano()
}

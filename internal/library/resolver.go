package library

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mmcdole/sessionbrew/internal/domain"
)

// Resolver turns a dragged library path into the base files it stands for.
// It implements domain.DropResolver.
type Resolver struct {
	store  domain.LibraryStore
	logger *slog.Logger
}

// NewResolver creates a resolver. store may be nil to disable caching.
func NewResolver(store domain.LibraryStore, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{store: store, logger: logger}
}

// Resolve decodes data as a path. A folder resolves to every base file
// below it (ignored folders skipped), a file to itself if it is a base file,
// and a missing path to nothing.
func (r *Resolver) Resolve(ctx context.Context, data json.RawMessage) ([]domain.FileDescriptor, error) {
	var path string
	if err := json.Unmarshal(data, &path); err != nil {
		return nil, fmt.Errorf("drop data is not a path: %w", err)
	}
	return r.ResolvePath(ctx, path)
}

// ResolvePath resolves a filesystem path
func (r *Resolver) ResolvePath(ctx context.Context, path string) ([]domain.FileDescriptor, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	if r.store != nil {
		if files, ok := r.store.GetResolution(abs); ok {
			r.logger.Debug("resolution cache hit", "path", abs, "count", len(files))
			return files, nil
		}
	}

	files, err := r.walk(ctx, abs)
	if err != nil {
		r.logger.Error("failed to resolve dropped path", "error", err, "path", abs)
		return nil, err
	}

	if r.store != nil {
		if err := r.store.SaveResolution(abs, files); err != nil {
			r.logger.Error("failed to save resolution", "error", err, "path", abs)
		}
	}
	r.logger.Debug("resolved dropped path", "path", abs, "count", len(files))
	return files, nil
}

func (r *Resolver) walk(ctx context.Context, abs string) ([]domain.FileDescriptor, error) {
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.FileDescriptor{}, nil
		}
		return nil, err
	}

	files := []domain.FileDescriptor{}
	if !info.IsDir() {
		if IsBaseFile(info.Name()) {
			files = append(files, Descriptor(abs))
		}
		return files, nil
	}

	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsPermission(err) && d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != abs && IsIgnoredFolder(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if IsBaseFile(d.Name()) {
			files = append(files, Descriptor(path))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

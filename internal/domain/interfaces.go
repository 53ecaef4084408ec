package domain

import (
	"context"
	"encoding/json"
)

// DropResolver translates the opaque data of an external drag into zero or
// more concrete files. It may block; callers run it off the event loop.
type DropResolver interface {
	Resolve(ctx context.Context, data json.RawMessage) ([]FileDescriptor, error)
}

// DropResolverFunc adapts a function to DropResolver
type DropResolverFunc func(ctx context.Context, data json.RawMessage) ([]FileDescriptor, error)

func (f DropResolverFunc) Resolve(ctx context.Context, data json.RawMessage) ([]FileDescriptor, error) {
	return f(ctx, data)
}

// LibraryProvider supplies the content library tree
type LibraryProvider interface {
	Tree(ctx context.Context) ([]LibraryNode, error)
}

// LibraryStore caches library scans and drop resolutions (BoltDB + memory).
type LibraryStore interface {
	// === Library tree ===
	GetTree(root string) ([]LibraryNode, bool)
	SaveTree(root string, nodes []LibraryNode, modTS int64) error

	// IsValid checks if the stored tree timestamp >= modTS
	IsValid(root string, modTS int64) bool

	// === Resolutions (keyed by resolved path) ===
	GetResolution(path string) ([]FileDescriptor, bool)
	SaveResolution(path string, files []FileDescriptor) error

	// === Invalidation ===
	InvalidateTree(root string) // Wipes the tree and every resolution below root
	InvalidateAll()

	Close() error
}

// Package store caches library scans and drop resolutions in BoltDB,
// fronted by an in-memory map that is promoted on read.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
	bolterrors "go.etcd.io/bbolt/errors"

	"github.com/mmcdole/sessionbrew/internal/domain"
)

// Bucket names
var (
	bucketTrees       = []byte("trees")
	bucketResolutions = []byte("resolutions")

	allBuckets = [][]byte{bucketTrees, bucketResolutions}
)

// DBFile is the cache file name inside the cache directory
const DBFile = "sessionbrew.db"

// LibraryStore implements domain.LibraryStore using BoltDB.
type LibraryStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewLibraryStore opens (or creates) the cache under dir.
// An empty dir gives a memory-only store.
func NewLibraryStore(dir string) (*LibraryStore, error) {
	if dir == "" {
		return &LibraryStore{cache: make(map[string][]byte)}, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(filepath.Join(dir, DBFile), 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &LibraryStore{db: db, cache: make(map[string][]byte)}, nil
}

// Close releases the database
func (s *LibraryStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// normalizePath makes cache keys stable across spellings of the same path
func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// === Generic helpers ===

func (s *LibraryStore) get(bucket []byte, key string, dest any) bool {
	cacheKey := string(bucket) + ":" + key

	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *LibraryStore) set(bucket []byte, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache[string(bucket)+":"+key] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

func (s *LibraryStore) deletePrefix(bucket []byte, prefix string) {
	s.mu.Lock()
	cachePrefix := string(bucket) + ":" + prefix
	for k := range s.cache {
		if strings.HasPrefix(k, cachePrefix) {
			delete(s.cache, k)
		}
	}
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		// Collect first: deleting under a live cursor skips keys
		var keys [][]byte
		c := b.Cursor()
		prefixBytes := []byte(prefix)
		for k, _ := c.Seek(prefixBytes); k != nil && strings.HasPrefix(string(k), prefix); k, _ = c.Next() {
			keys = append(keys, append([]byte(nil), k...))
		}
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *LibraryStore) delete(bucket []byte, key string) {
	s.mu.Lock()
	delete(s.cache, string(bucket)+":"+key)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucket); b != nil {
			b.Delete([]byte(key))
		}
		return nil
	})
}

// === Library trees (keys: {root}:nodes, {root}:ts) ===

func (s *LibraryStore) GetTree(root string) ([]domain.LibraryNode, bool) {
	var nodes []domain.LibraryNode
	ok := s.get(bucketTrees, normalizePath(root)+":nodes", &nodes)
	return nodes, ok
}

func (s *LibraryStore) SaveTree(root string, nodes []domain.LibraryNode, modTS int64) error {
	key := normalizePath(root)
	if err := s.set(bucketTrees, key+":nodes", nodes); err != nil {
		return err
	}
	// Timestamp stored separately for freshness checks
	return s.set(bucketTrees, key+":ts", modTS)
}

func (s *LibraryStore) IsValid(root string, modTS int64) bool {
	var storedTS int64
	if !s.get(bucketTrees, normalizePath(root)+":ts", &storedTS) {
		return false
	}
	return storedTS >= modTS
}

// === Resolutions (key: resolved path) ===

func (s *LibraryStore) GetResolution(path string) ([]domain.FileDescriptor, bool) {
	var files []domain.FileDescriptor
	ok := s.get(bucketResolutions, normalizePath(path), &files)
	return files, ok
}

func (s *LibraryStore) SaveResolution(path string, files []domain.FileDescriptor) error {
	if files == nil {
		files = []domain.FileDescriptor{}
	}
	return s.set(bucketResolutions, normalizePath(path), files)
}

// === Invalidation ===

// InvalidateTree wipes the tree of root and every resolution below it
func (s *LibraryStore) InvalidateTree(root string) {
	key := normalizePath(root)
	s.deletePrefix(bucketTrees, key+":")
	s.delete(bucketResolutions, key)
	s.deletePrefix(bucketResolutions, strings.TrimSuffix(key, "/")+"/")
}

func (s *LibraryStore) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			if err := tx.DeleteBucket(bucket); err != nil && !errors.Is(err, bolterrors.ErrBucketNotFound) {
				return err
			}
			if _, err := tx.CreateBucket(bucket); err != nil {
				return err
			}
		}
		return nil
	})
}

// Stats counts cached entries per bucket
func (s *LibraryStore) Stats() map[string]int {
	stats := make(map[string]int, len(allBuckets))
	if s.db == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		for k := range s.cache {
			bucket, _, _ := strings.Cut(k, ":")
			stats[bucket]++
		}
		return stats
	}
	s.db.View(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			if b := tx.Bucket(bucket); b != nil {
				stats[string(bucket)] = b.Stats().KeyN
			}
		}
		return nil
	})
	return stats
}

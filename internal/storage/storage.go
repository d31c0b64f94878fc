// Package storage is the blob store for uploaded product images. Keys are
// namespaced relative paths ("products/<uuid>.jpg"); the files are served
// statically under /storage/<key>.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// BlobStore stores and deletes uploaded files by key. Services depend on this
// interface, not on the disk implementation, enabling clean unit testing via
// stubs.
type BlobStore interface {
	// Put writes data under a fresh key inside namespace and returns the key.
	Put(ctx context.Context, namespace, ext string, data []byte) (string, error)
	// Delete removes the blob; it fails when the key does not exist.
	Delete(ctx context.Context, key string) error
	// URL returns the public path the blob is retrievable at.
	URL(key string) string
}

type diskStore struct {
	root string
}

// NewDiskStore returns a BlobStore rooted at dir, creating it if needed.
func NewDiskStore(dir string) (BlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &diskStore{root: dir}, nil
}

func (s *diskStore) Put(_ context.Context, namespace, ext string, data []byte) (string, error) {
	key := filepath.ToSlash(filepath.Join(namespace, uuid.NewString()+"."+ext))
	path := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create namespace dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write blob %s: %w", key, err)
	}
	return key, nil
}

func (s *diskStore) Delete(_ context.Context, key string) error {
	// Reject traversal outside the root; keys are always generated by Put,
	// but Delete is also fed from persisted rows.
	clean := filepath.Clean(filepath.FromSlash(key))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("invalid blob key %q", key)
	}
	return os.Remove(filepath.Join(s.root, clean))
}

func (s *diskStore) URL(key string) string {
	return "/storage/" + key
}

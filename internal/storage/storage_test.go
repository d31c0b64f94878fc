package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStorePutAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	require.NoError(t, err)

	ctx := context.Background()
	data := []byte("fake image bytes")

	key, err := store.Put(ctx, "products", "jpg", data)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "products/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))

	onDisk, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, data, onDisk)

	require.NoError(t, store.Delete(ctx, key))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(key)))
	assert.True(t, os.IsNotExist(err))
}

func TestDiskStoreKeysAreUnique(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	k1, err := store.Put(ctx, "products", "png", []byte("a"))
	require.NoError(t, err)
	k2, err := store.Put(ctx, "products", "png", []byte("a"))
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)
}

func TestDiskStoreDeleteMissingKey(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Delete(context.Background(), "products/nope.jpg"))
}

func TestDiskStoreDeleteRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	require.NoError(t, err)

	outside := filepath.Join(dir, "..", "victim.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep me"), 0o644))

	assert.Error(t, store.Delete(context.Background(), "../victim.txt"))
	assert.Error(t, store.Delete(context.Background(), "/etc/passwd"))

	_, statErr := os.Stat(outside)
	assert.NoError(t, statErr)
}

func TestDiskStoreURL(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "/storage/products/abc.jpg", store.URL("products/abc.jpg"))
}

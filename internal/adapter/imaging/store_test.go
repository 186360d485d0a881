package imaging

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"tanuki-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_ExistingNamesIncludesReserved(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "assets_index.json")
	require.NoError(t, err)

	require.NoError(t, store.CreateOriginal("tanuki.png", []byte("x")))

	names, err := store.ExistingNames()
	require.NoError(t, err)
	assert.Contains(t, names, "tanuki.png")
	assert.Contains(t, names, "assets_index.json")
	assert.Contains(t, names, domain.ThumbnailDir)
}

func TestFileStore_CreateOriginalIsExclusive(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.CreateOriginal("tanuki.png", []byte("first")))
	err = store.CreateOriginal("tanuki.png", []byte("second"))
	assert.True(t, errors.Is(err, fs.ErrExist))

	data, err := store.ReadOriginal("tanuki.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), data)
}

func TestFileStore_Thumbnails(t *testing.T) {
	root := t.TempDir()
	store, err := NewFileStore(root)
	require.NoError(t, err)

	assert.False(t, store.HasThumbnail("tanuki.png"))
	require.NoError(t, store.WriteThumbnail("tanuki.png", []byte("thumb-1")))
	require.NoError(t, store.WriteThumbnail("tanuki.png", []byte("thumb-2")))
	assert.True(t, store.HasThumbnail("tanuki.png"))

	data, err := os.ReadFile(filepath.Join(root, domain.ThumbnailDir, "tanuki.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("thumb-2"), data)
}

func TestFileStore_Remove(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.CreateOriginal("tanuki.png", []byte("x")))
	require.NoError(t, store.WriteThumbnail("tanuki.png", []byte("y")))

	require.NoError(t, store.Remove("tanuki.png"))
	assert.False(t, store.HasThumbnail("tanuki.png"))
	_, err = store.ReadOriginal("tanuki.png")
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	// already gone
	assert.NoError(t, store.Remove("tanuki.png"))
}

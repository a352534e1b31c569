package filestore

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var storedNameRegex = regexp.MustCompile(`^uploads/image-\d+-\d{9}\.jpg$`)

func testStoreSetup(t *testing.T) (*DiskStore, string) {
	t.Helper()
	rootPath := t.TempDir()
	store, err := NewDiskStore(rootPath)
	require.NoError(t, err)
	return store, rootPath
}

func TestNewDiskStore(t *testing.T) {
	rootPath := filepath.Join(t.TempDir(), "uploads")
	store, err := NewDiskStore(rootPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	// storage root gets created
	stat, err := os.Stat(rootPath)
	require.NoError(t, err)
	assert.True(t, stat.IsDir())

	_, err = NewDiskStore("")
	require.Error(t, err)
}

func TestDiskStore_Save(t *testing.T) {
	store, rootPath := testStoreSetup(t)

	content := []byte("totally an image")
	relPath, err := store.Save(context.Background(), SaveFileParams{
		Filename: "notes-page.jpg",
		Size:     int64(len(content)),
		File:     bytes.NewReader(content),
	})
	require.NoError(t, err)
	assert.True(t, storedNameRegex.MatchString(relPath), "unexpected stored path: %s", relPath)

	storedContent, err := os.ReadFile(filepath.Join(rootPath, filepath.Base(relPath)))
	require.NoError(t, err)
	assert.Equal(t, content, storedContent)
}

func TestDiskStore_Save_PreservesExtension(t *testing.T) {
	store, _ := testStoreSetup(t)

	for _, filename := range []string{"a.png", "b.jpeg", "c.webp", "no-extension"} {
		relPath, err := store.Save(context.Background(), SaveFileParams{
			Filename: filename,
			Size:     3,
			File:     strings.NewReader("abc"),
		})
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(relPath, filepath.Ext(filename)))
	}
}

func TestDiskStore_Save_UniqueNames(t *testing.T) {
	store, _ := testStoreSetup(t)

	seen := make(map[string]bool)
	for range 50 {
		relPath, err := store.Save(context.Background(), SaveFileParams{
			Filename: "same-name.jpg",
			Size:     3,
			File:     strings.NewReader("abc"),
		})
		require.NoError(t, err)
		require.False(t, seen[relPath], "name collision: %s", relPath)
		seen[relPath] = true
	}
}

func TestDiskStore_Save_TooLarge(t *testing.T) {
	store, rootPath := testStoreSetup(t)

	_, err := store.Save(context.Background(), SaveFileParams{
		Filename: "huge.jpg",
		Size:     MaxFileSize + 1,
		File:     strings.NewReader("does not matter"),
	})
	require.ErrorIs(t, err, ErrFileTooLarge)

	entries, err := os.ReadDir(rootPath)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDiskStore_Remove(t *testing.T) {
	store, rootPath := testStoreSetup(t)

	relPath, err := store.Save(context.Background(), SaveFileParams{
		Filename: "page.jpg",
		Size:     3,
		File:     strings.NewReader("abc"),
	})
	require.NoError(t, err)

	require.NoError(t, store.Remove(context.Background(), relPath))
	_, err = os.Stat(filepath.Join(rootPath, filepath.Base(relPath)))
	assert.True(t, os.IsNotExist(err))

	// removing an already absent file is fine
	require.NoError(t, store.Remove(context.Background(), relPath))
	require.NoError(t, store.Remove(context.Background(), "uploads/image-never-existed.jpg"))
}

func TestDiskStore_FilePath(t *testing.T) {
	store, rootPath := testStoreSetup(t)

	filePath, err := store.FilePath("image-123-000000001.jpg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(rootPath, "image-123-000000001.jpg"), filePath)

	for _, name := range []string{"", "..", "../secrets", "a/b.jpg"} {
		_, err := store.FilePath(name)
		assert.ErrorIs(t, err, ErrInvalidName, "name: %q", name)
	}
}

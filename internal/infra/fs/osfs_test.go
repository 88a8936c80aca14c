package fs

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatedAtIsRecentForNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.jpg")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	created, err := OSFS{}.CreatedAt(path)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), created, time.Minute)
}

func TestCreatedAtMissingFile(t *testing.T) {
	_, err := OSFS{}.CreatedAt(filepath.Join(t.TempDir(), "missing.jpg"))
	assert.Error(t, err)
}

func TestReplaceFileKeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.jpg")
	require.NoError(t, os.WriteFile(path, []byte("original bytes"), 0o600))

	err := ReplaceFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "new")
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestReplaceFileFailureLeavesOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.jpg")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0o644))

	err := ReplaceFile(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return errors.New("encode failed")
	})
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWalkDirVisitsNestedFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "b", "c.jpg"), []byte("x"), 0o644))

	var seen []string
	err := OSFS{}.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			seen = append(seen, path)
		}
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a", "b", "c.jpg")}, seen)
}

func TestRenameFailureKeepsDestination(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "photo.jpg")
	require.NoError(t, os.WriteFile(dest, []byte("original"), 0o644))

	err := rename(filepath.Join(dir, ".icompress-missing.tmp"), dest)
	require.Error(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}

package fs

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/djherbis/times"
)

type OSFS struct{}

func (OSFS) WalkDir(root string, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}

func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// CreatedAt prefers the birth time and falls back to the inode change time,
// which is what "creation time" means on most Unix filesystems.
func (OSFS) CreatedAt(path string) (time.Time, error) {
	ts, err := times.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	if ts.HasBirthTime() {
		return ts.BirthTime(), nil
	}
	if ts.HasChangeTime() {
		return ts.ChangeTime(), nil
	}
	return ts.ModTime(), nil
}

// ReplaceFile rewrites path through a temp file in the same directory and
// renames it into place, keeping the original file mode. path is left
// untouched if write fails.
func ReplaceFile(path string, write func(w io.Writer) error) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".icompress-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmpFile.Name())

	if err := tmpFile.Chmod(info.Mode().Perm()); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := write(tmpFile); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	return rename(tmpFile.Name(), path)
}

// rename replaces destPath with tmpPath. os.Rename already overwrites an
// existing target, so on failure destPath is left as it was.
func rename(tmpPath, destPath string) error {
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("replace %s: %w", destPath, err)
	}
	return nil
}

package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// ImageFile is a snapshot of a candidate file's filesystem metadata.
type ImageFile struct {
	Path      string
	Ext       string
	Size      int64
	CreatedAt time.Time
}

func NewImageFile(path string, size int64, createdAt time.Time) ImageFile {
	return ImageFile{
		Path:      path,
		Ext:       strings.ToLower(filepath.Ext(path)),
		Size:      size,
		CreatedAt: createdAt,
	}
}

func IsJpegExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return true
	default:
		return false
	}
}

// RecencyCutoff returns the oldest creation time still inside a window of
// the given number of days ending at now.
func RecencyCutoff(now time.Time, days int) time.Time {
	return now.Add(-time.Duration(days) * 24 * time.Hour)
}

func IsRecent(createdAt, now time.Time, days int) bool {
	return !createdAt.Before(RecencyCutoff(now, days))
}

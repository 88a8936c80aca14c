package app

import (
	"context"
	"image"
	"io/fs"
	"time"

	"icompress/internal/domain"
)

type FileSystem interface {
	WalkDir(root string, fn fs.WalkDirFunc) error
	Stat(path string) (fs.FileInfo, error)
	// CreatedAt returns the file's creation time, or its status-change time
	// where the platform does not record birth times.
	CreatedAt(path string) (time.Time, error)
}

// Inspector reads the optimization marker from an image's encoded headers
// without decoding pixel data.
type Inspector interface {
	IsProgressive(ctx context.Context, path string) (bool, error)
}

type Codec interface {
	Decode(ctx context.Context, path string) (image.Image, error)
	// Encode overwrites path with img.
	Encode(ctx context.Context, path string, img image.Image, opts domain.EncodeOptions) error
}

type OrientationReader interface {
	Orientation(ctx context.Context, path string) (int, error)
}

// Reporter observes a run. Report is called once per candidate, in walk
// order, after the outcome has been folded into the summary.
type Reporter interface {
	Start(total int)
	Report(outcome domain.Outcome)
	Finish(summary domain.RunSummary)
}

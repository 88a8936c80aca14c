package exif

import (
	"context"
	"os"

	goexif "github.com/rwcarlsen/goexif/exif"
)

type Reader struct{}

// Orientation returns the EXIF Orientation tag (1-8) of the file at path.
func (Reader) Orientation(ctx context.Context, path string) (int, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	x, err := goexif.Decode(file)
	if err != nil {
		return 0, err
	}

	tag, err := x.Get(goexif.Orientation)
	if err != nil {
		return 0, err
	}
	return tag.Int(0)
}

// Package jpegcodec reads and writes JPEG files for the optimizer. Decoding
// uses the standard library; encoding goes through jpegli, which can emit
// progressive scans.
package jpegcodec

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"os"

	"github.com/gen2brain/jpegli"

	"icompress/internal/domain"
	appErrors "icompress/internal/errors"
	osfs "icompress/internal/infra/fs"
)

const progressiveLevel = 2

type Codec struct {
	// MaxPixels rejects images whose width*height exceeds it before the
	// pixel data is decoded. Zero disables the check.
	MaxPixels int
}

// IsProgressive opens path once and reports whether its frame header marks
// it as a progressive JPEG.
func (c Codec) IsProgressive(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	file, err := os.Open(path)
	if err != nil {
		return false, appErrors.Wrap(appErrors.Unexpected, "open", path, err)
	}
	defer file.Close()

	frame, err := ReadFrameInfo(file)
	if err != nil {
		return false, appErrors.Wrap(appErrors.UnidentifiableImage, "inspect", path, err)
	}
	return frame.Progressive, nil
}

func (c Codec) Decode(ctx context.Context, path string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.Unexpected, "open", path, err)
	}
	defer file.Close()

	cfg, err := jpeg.DecodeConfig(file)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.UnidentifiableImage, "decode", path, err)
	}
	if c.MaxPixels > 0 && cfg.Width*cfg.Height > c.MaxPixels {
		return nil, appErrors.Wrap(appErrors.Unexpected, "decode", path,
			fmt.Errorf("image is %dx%d, above the %d pixel limit", cfg.Width, cfg.Height, c.MaxPixels))
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, appErrors.Wrap(appErrors.Unexpected, "seek", path, err)
	}
	img, err := jpeg.Decode(file)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.UnidentifiableImage, "decode", path, err)
	}
	return img, nil
}

// Encode replaces path with img encoded per opts.
func (c Codec) Encode(ctx context.Context, path string, img image.Image, opts domain.EncodeOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := osfs.ReplaceFile(path, func(w io.Writer) error {
		return jpegli.Encode(w, img, encodingOptions(opts))
	})
	if err != nil {
		return appErrors.Wrap(appErrors.Unexpected, "encode", path, err)
	}
	return nil
}

func encodingOptions(opts domain.EncodeOptions) *jpegli.EncodingOptions {
	level := 0
	if opts.Progressive {
		level = progressiveLevel
	}
	return &jpegli.EncodingOptions{
		Quality:          opts.Quality,
		ProgressiveLevel: level,
		OptimizeCoding:   opts.Optimize,
	}
}

package app

import (
	"context"
	"errors"

	"icompress/internal/domain"
	appErrors "icompress/internal/errors"
	"icompress/internal/imaging"
	"icompress/internal/logging"
)

// Engine downsizes and re-encodes eligible files in place.
type Engine struct {
	FS     FileSystem
	Codec  Codec
	Exif   OrientationReader
	Logger logging.Logger
	// Options is fixed at construction; see domain.DefaultEncodeOptions.
	Options domain.EncodeOptions
}

func (e *Engine) Optimize(ctx context.Context, path string) (domain.TransformResult, error) {
	if e.FS == nil || e.Codec == nil {
		return domain.TransformResult{}, appErrors.Wrap(appErrors.Internal, "optimize", path, errors.New("engine requires FS and Codec"))
	}

	info, err := e.FS.Stat(path)
	if err != nil {
		return domain.TransformResult{}, appErrors.Wrap(appErrors.Unexpected, "stat", path, err)
	}
	result := domain.TransformResult{OriginalSize: info.Size()}

	e.warnOrientation(ctx, path)

	img, err := e.Codec.Decode(ctx, path)
	if err != nil {
		return domain.TransformResult{}, asUnexpected("decode", path, err)
	}

	bounds := img.Bounds()
	result.Width, result.Height = bounds.Dx(), bounds.Dy()
	if result.Width == 0 || result.Height == 0 {
		return domain.TransformResult{}, appErrors.Wrap(appErrors.EmptyImage, "decode", path, errors.New("image has zero width or height"))
	}

	img = imaging.Normalize(img)

	result.TargetWidth, result.TargetHeight = result.Width, result.Height
	if w, h, resized := domain.FitFHD(result.Width, result.Height); resized {
		img = imaging.Scale(img, w, h)
		result.Resized = true
		result.TargetWidth, result.TargetHeight = w, h
		result.Note = domain.ResizeNote
		e.Logger.Verbosef("%s: %dx%d -> %dx%d", path, result.Width, result.Height, w, h)
	}

	if err := e.Codec.Encode(ctx, path, img, e.Options); err != nil {
		return domain.TransformResult{}, asUnexpected("encode", path, err)
	}

	info, err = e.FS.Stat(path)
	if err != nil {
		return domain.TransformResult{}, appErrors.Wrap(appErrors.Unexpected, "stat", path, err)
	}
	result.OptimizedSize = info.Size()
	e.Logger.Verbosef("%s: %s -> %s (saved %s)", path,
		logging.Size(result.OriginalSize), logging.Size(result.OptimizedSize), logging.Size(max(result.Saved(), 0)))

	return result, nil
}

// Re-encoding drops EXIF, so a rotated source will display differently
// afterwards.
func (e *Engine) warnOrientation(ctx context.Context, path string) {
	if e.Exif == nil || !e.Logger.Verbose {
		return
	}
	orientation, err := e.Exif.Orientation(ctx, path)
	if err != nil || orientation <= 1 {
		return
	}
	e.Logger.Warnf("%s has EXIF orientation %d, which is not preserved", path, orientation)
}

func asUnexpected(op, path string, err error) error {
	if appErrors.KindOf(err) != "" {
		return err
	}
	return appErrors.Wrap(appErrors.Unexpected, op, path, err)
}

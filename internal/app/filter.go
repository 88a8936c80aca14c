package app

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"icompress/internal/domain"
	appErrors "icompress/internal/errors"
	"icompress/internal/logging"
)

type Decision int

const (
	DecisionExclude Decision = iota
	DecisionEligible
	DecisionSkipZeroByte
	DecisionSkipOptimized
	DecisionError
)

type Verdict struct {
	Decision Decision
	File     domain.ImageFile
	Err      error
}

// Filter decides whether a candidate file should be transformed.
type Filter struct {
	FS        FileSystem
	Inspector Inspector
	Logger    logging.Logger
	Now       func() time.Time
}

func (f *Filter) Check(ctx context.Context, path string, days int) Verdict {
	if !domain.IsJpegExtension(filepath.Ext(path)) {
		return Verdict{Decision: DecisionExclude}
	}

	info, err := f.FS.Stat(path)
	if err != nil {
		return Verdict{Decision: DecisionError, Err: appErrors.Wrap(appErrors.Unexpected, "stat", path, err)}
	}
	if !info.Mode().IsRegular() {
		return Verdict{Decision: DecisionExclude}
	}

	createdAt, err := f.FS.CreatedAt(path)
	if err != nil {
		return Verdict{Decision: DecisionError, Err: appErrors.Wrap(appErrors.Unexpected, "stat", path, err)}
	}
	file := domain.NewImageFile(path, info.Size(), createdAt)

	if !domain.IsRecent(createdAt, f.now(), days) {
		return Verdict{Decision: DecisionExclude, File: file}
	}

	if file.Size == 0 {
		return Verdict{
			Decision: DecisionSkipZeroByte,
			File:     file,
			Err:      appErrors.Wrap(appErrors.ZeroByteFile, "stat", path, errors.New("file size is 0")),
		}
	}

	progressive, err := f.Inspector.IsProgressive(ctx, path)
	if err != nil {
		if appErrors.KindOf(err) == "" {
			err = appErrors.Wrap(appErrors.UnidentifiableImage, "inspect", path, err)
		}
		return Verdict{Decision: DecisionError, File: file, Err: err}
	}
	if progressive {
		f.Logger.Verbosef("%s is already progressive", path)
		return Verdict{Decision: DecisionSkipOptimized, File: file}
	}

	return Verdict{Decision: DecisionEligible, File: file}
}

func (f *Filter) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

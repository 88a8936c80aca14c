package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"icompress/internal/domain"
	appErrors "icompress/internal/errors"
	"icompress/internal/logging"
)

// Runner walks a directory tree and drives every candidate through the
// Filter and Engine, one file at a time.
type Runner struct {
	FS       FileSystem
	Filter   *Filter
	Engine   *Engine
	Reporter Reporter
	Logger   logging.Logger
}

func (r *Runner) Run(ctx context.Context, root string, days int) (domain.RunSummary, error) {
	var summary domain.RunSummary
	if r.FS == nil || r.Filter == nil || r.Engine == nil {
		return summary, appErrors.Wrap(appErrors.Internal, "run", root, errors.New("runner requires FS, Filter and Engine"))
	}

	info, err := r.FS.Stat(root)
	if err != nil {
		return summary, appErrors.Wrap(appErrors.NotFound, "stat", root, err)
	}
	if !info.IsDir() {
		return summary, appErrors.Wrap(appErrors.InvalidConfig, "stat", root, fmt.Errorf("%s is not a directory", root))
	}

	stop := r.Logger.Measure("Optimizing " + root)
	defer stop()

	candidates, err := r.collect(root)
	if err != nil {
		return summary, appErrors.Wrap(appErrors.NotFound, "walk", root, err)
	}
	summary.Candidates = len(candidates)
	r.Logger.Verbosef("Found %d JPEG candidates in %s", len(candidates), root)

	reporter := r.Reporter
	if reporter == nil {
		reporter = nopReporter{}
	}
	reporter.Start(len(candidates))

	for i, path := range candidates {
		if ctx.Err() != nil {
			r.Logger.Verbosef("Interrupted, %d candidates left unvisited", len(candidates)-i)
			break
		}

		outcome := r.process(ctx, path, days)
		summary.Fold(outcome)
		reporter.Report(outcome)
	}

	reporter.Finish(summary)
	return summary, nil
}

func (r *Runner) process(ctx context.Context, path string, days int) domain.Outcome {
	verdict := r.Filter.Check(ctx, path, days)
	outcome := domain.Outcome{Path: path, Err: verdict.Err}

	switch verdict.Decision {
	case DecisionExclude:
		outcome.Kind = domain.OutcomeExcluded
	case DecisionSkipZeroByte:
		outcome.Kind = domain.OutcomeSkippedZeroByte
	case DecisionSkipOptimized:
		outcome.Kind = domain.OutcomeSkippedOptimized
	case DecisionError:
		outcome.Kind = domain.OutcomeFailed
	case DecisionEligible:
		result, err := r.Engine.Optimize(ctx, path)
		if err != nil {
			outcome.Kind = domain.OutcomeFailed
			outcome.Err = err
			break
		}
		outcome.Kind = domain.OutcomeOptimized
		outcome.Result = result
	}

	if outcome.Kind == domain.OutcomeFailed {
		r.Logger.Verbosef("%v", outcome.Err)
	}
	return outcome
}

// collect lists JPEG-named regular files under root in walk order.
// Unreadable subdirectories are skipped rather than aborting the run.
func (r *Runner) collect(root string) ([]string, error) {
	var paths []string
	err := r.FS.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			r.Logger.Warnf("skipping %s: %v", path, walkErr)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !domain.IsJpegExtension(filepath.Ext(d.Name())) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	return paths, err
}

type nopReporter struct{}

func (nopReporter) Start(int)                {}
func (nopReporter) Report(domain.Outcome)    {}
func (nopReporter) Finish(domain.RunSummary) {}

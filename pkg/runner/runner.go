package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/typfmt/internal/logging"
	"github.com/yaklabco/typfmt/pkg/pipeline"
)

// Run discovers files under opts.Paths and formats them concurrently.
// Per-file failures are recorded on the outcomes and do not stop the run;
// only discovery errors and cancellation are returned.
func Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	return RunFiles(ctx, files, opts)
}

// RunFiles formats the given files. Outcomes keep the order of files.
func RunFiles(ctx context.Context, files []string, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))
	logger.Debug("formatting", logging.FieldFiles, len(files), logging.FieldJobs, jobs)

	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)
	for i, path := range files {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			res, err := pipeline.ProcessFile(groupCtx, path, opts.Config, opts.Pipeline)
			outcomes[i] = FileOutcome{Path: path, Result: res, Error: err}
			done[i] = true
			return nil
		})
	}
	waitErr := group.Wait()

	for i, outcome := range outcomes {
		if done[i] {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	if waitErr != nil {
		return result, fmt.Errorf("run: %w", waitErr)
	}
	return result, nil
}

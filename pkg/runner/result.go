package runner

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/yaklabco/typfmt/pkg/pipeline"
)

// FileOutcome is the result of formatting one file.
type FileOutcome struct {
	Path string

	// Result may be set even when Error is, carrying the unchanged source.
	Result *pipeline.Result

	Error error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesFormatted  int
	FilesChanged    int
	FilesWritten    int
	FilesSkipped    int
	FilesFailed     int
}

// Result is the outcome of a run, with files in discovery order.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// NewResult builds a result from outcomes that were produced outside a
// run, such as formatting standard input.
func NewResult(outcomes ...FileOutcome) *Result {
	result := &Result{Files: make([]FileOutcome, 0, len(outcomes))}
	result.Stats.FilesDiscovered = len(outcomes)
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result
}

// HasChanges reports whether any file would change or changed.
func (r *Result) HasChanges() bool {
	return r != nil && r.Stats.FilesChanged > 0
}

// HasFailures reports whether any file failed to format.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.FilesFailed > 0
}

// Err combines the per-file errors, or returns nil.
func (r *Result) Err() error {
	if r == nil {
		return nil
	}
	var err error
	for _, f := range r.Files {
		if f.Error != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", f.Path, f.Error))
		}
	}
	return err
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesFailed++
		return
	}
	if outcome.Result == nil {
		return
	}

	r.Stats.FilesFormatted++
	if outcome.Result.Changed {
		r.Stats.FilesChanged++
	}
	if outcome.Result.Written {
		r.Stats.FilesWritten++
	}
	if outcome.Result.Skipped {
		r.Stats.FilesSkipped++
	}
}

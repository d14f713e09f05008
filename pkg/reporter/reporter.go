// Package reporter writes the outcome of a formatting run.
package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/yaklabco/typfmt/internal/ui/pretty"
	"github.com/yaklabco/typfmt/pkg/config"
	"github.com/yaklabco/typfmt/pkg/runner"
)

// bufWriterSize is the buffer size for the output writer.
const bufWriterSize = 64 * 1024

// Reporter writes the result of a run.
type Reporter interface {
	Report(ctx context.Context, result *runner.Result) error
}

// New returns the reporter for an output mode.
func New(mode config.OutputMode, opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = defaults.ErrorWriter
	}

	base := base{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		errStyles: pretty.NewStyles(
			pretty.IsColorEnabled(opts.Color, opts.ErrorWriter)),
	}

	switch mode {
	case config.OutputStdout, "":
		return &StdoutReporter{base}, nil
	case config.OutputCheck:
		return &CheckReporter{base}, nil
	case config.OutputDiff:
		return &DiffReporter{base}, nil
	case config.OutputInPlace:
		return &InPlaceReporter{base}, nil
	default:
		return nil, fmt.Errorf("unsupported output mode %q", mode)
	}
}

type base struct {
	opts      Options
	styles    *pretty.Styles
	errStyles *pretty.Styles
}

// display makes path relative to the working directory when that is
// shorter to read.
func (b base) display(path string) string {
	if b.opts.WorkingDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(b.opts.WorkingDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// failures writes one line per file that could not be formatted.
func (b base) failures(result *runner.Result) error {
	for _, file := range result.Files {
		if file.Error == nil {
			continue
		}
		if _, err := io.WriteString(b.opts.ErrorWriter, b.errStyles.FormatFailure(b.display(file.Path), file.Error)); err != nil {
			return fmt.Errorf("write failure: %w", err)
		}
	}
	return nil
}

func (b base) summary(result *runner.Result, mode config.OutputMode) error {
	if !b.opts.ShowSummary || len(result.Files) < 2 {
		return nil
	}
	if _, err := io.WriteString(b.opts.ErrorWriter, b.errStyles.FormatSummary(result.Stats, mode)); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// StdoutReporter prints each file's output in order. Files that failed to
// format are printed unchanged.
type StdoutReporter struct{ base }

// Report implements Reporter.
func (r *StdoutReporter) Report(_ context.Context, result *runner.Result) error {
	if result == nil {
		return nil
	}

	out := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	for _, file := range result.Files {
		if file.Result == nil {
			continue
		}
		if _, err := out.WriteString(file.Result.Output); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return r.failures(result)
}

// CheckReporter lists the files that are not formatted.
type CheckReporter struct{ base }

// Report implements Reporter.
func (r *CheckReporter) Report(_ context.Context, result *runner.Result) error {
	if result == nil {
		return nil
	}

	for _, file := range result.Files {
		if file.Error != nil || file.Result == nil || !file.Result.Changed {
			continue
		}
		if _, err := io.WriteString(r.opts.ErrorWriter, r.errStyles.FormatCheckLine(r.display(file.Path))); err != nil {
			return fmt.Errorf("write check result: %w", err)
		}
	}
	if err := r.failures(result); err != nil {
		return err
	}
	return r.summary(result, config.OutputCheck)
}

// InPlaceReporter reports files that were rewritten or skipped.
type InPlaceReporter struct{ base }

// Report implements Reporter.
func (r *InPlaceReporter) Report(_ context.Context, result *runner.Result) error {
	if result == nil {
		return nil
	}

	for _, file := range result.Files {
		if file.Result == nil || !file.Result.Skipped {
			continue
		}
		line := r.errStyles.Warning.Render("Skipped:") + " " +
			r.errStyles.FilePath.Render(r.display(file.Path)) + " " +
			r.errStyles.Dim.Render("("+file.Result.SkipReason+")") + "\n"
		if _, err := io.WriteString(r.opts.ErrorWriter, line); err != nil {
			return fmt.Errorf("write skip: %w", err)
		}
	}
	if err := r.failures(result); err != nil {
		return err
	}
	return r.summary(result, config.OutputInPlace)
}

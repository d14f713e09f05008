package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/typfmt/pkg/config"
)

// Options configures reporter behavior.
type Options struct {
	// Writer receives formatted sources and diffs.
	Writer io.Writer

	// ErrorWriter receives check results, failures, and summaries.
	ErrorWriter io.Writer

	// Color controls colorized output.
	Color config.ColorMode

	// ShowSummary prints a one-line summary after a multi-file run.
	ShowSummary bool

	// WorkingDir is the directory paths are shown relative to. Empty keeps
	// them as they are.
	WorkingDir string
}

// DefaultOptions returns Options writing to the standard streams.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Color:       config.ColorAuto,
		ShowSummary: true,
	}
}

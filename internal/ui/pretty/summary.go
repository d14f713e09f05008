package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/typfmt/pkg/config"
	"github.com/yaklabco/typfmt/pkg/runner"
)

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// FormatSummary describes a run in one line, phrased for the output mode.
// Example: "2 files would be reformatted, 5 files already formatted".
func (s *Styles) FormatSummary(stats runner.Stats, mode config.OutputMode) string {
	var parts []string

	unchanged := stats.FilesFormatted - stats.FilesChanged
	switch mode {
	case config.OutputInPlace:
		if stats.FilesWritten > 0 {
			parts = append(parts, s.Success.Render(plural(stats.FilesWritten, "file")+" reformatted"))
		}
		if stats.FilesSkipped > 0 {
			parts = append(parts, s.Warning.Render(plural(stats.FilesSkipped, "file")+" skipped"))
		}
	default:
		if stats.FilesChanged > 0 {
			parts = append(parts, s.Failure.Render(plural(stats.FilesChanged, "file")+" would be reformatted"))
		}
	}
	if unchanged > 0 {
		parts = append(parts, s.Dim.Render(plural(unchanged, "file")+" already formatted"))
	}
	if stats.FilesFailed > 0 {
		parts = append(parts, s.Error.Render(plural(stats.FilesFailed, "file")+" failed"))
	}

	if len(parts) == 0 {
		return s.Dim.Render("No files formatted") + "\n"
	}
	return strings.Join(parts, ", ") + "\n"
}

// FormatCheckLine reports a file that is not formatted.
func (s *Styles) FormatCheckLine(path string) string {
	return s.Warning.Render("Would reformat:") + " " + s.FilePath.Render(path) + "\n"
}

// FormatFailure reports a file that could not be formatted.
func (s *Styles) FormatFailure(path string, err error) string {
	return s.FilePath.Render(path) + ": " + s.Error.Render(fmt.Sprintf("error: %v", err)) + "\n"
}

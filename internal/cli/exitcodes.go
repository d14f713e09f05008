package cli

import (
	"errors"
	"fmt"

	"github.com/yaklabco/typfmt/pkg/config"
	"github.com/yaklabco/typfmt/pkg/runner"
)

// Exit codes for typfmt.
const (
	// ExitSuccess means every file was formatted, or already was.
	ExitSuccess = 0

	// ExitChanges means --check or --diff found files that would change.
	ExitChanges = 1

	// ExitUsage means invalid command-line usage or configuration.
	ExitUsage = 2

	// ExitFormatFailure means at least one file could not be formatted.
	ExitFormatFailure = 3
)

// ErrChangesFound is reported when --check or --diff finds unformatted files.
var ErrChangesFound = errors.New("files would be reformatted")

// ErrFormatFailed is reported when at least one file failed to format.
var ErrFormatFailed = errors.New("formatting failed")

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	return &ExitError{Code: ExitUsage, Err: err}
}

func usageErrorf(format string, args ...any) error {
	return usageError(fmt.Errorf(format, args...))
}

// ExitCode returns the exit code for an error returned by the root command.
// Errors without a code are usage errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUsage
}

// ExitCodeFromResult determines the exit code of a run. Failures outrank
// changes, and changes only count in check and diff modes.
func ExitCodeFromResult(result *runner.Result, mode config.OutputMode) int {
	switch {
	case result == nil:
		return ExitSuccess
	case result.HasFailures():
		return ExitFormatFailure
	case result.HasChanges() && (mode == config.OutputCheck || mode == config.OutputDiff):
		return ExitChanges
	default:
		return ExitSuccess
	}
}

func resultError(result *runner.Result, mode config.OutputMode) error {
	switch code := ExitCodeFromResult(result, mode); code {
	case ExitFormatFailure:
		return &ExitError{Code: code, Err: fmt.Errorf("%w: %w", ErrFormatFailed, result.Err())}
	case ExitChanges:
		return &ExitError{Code: code, Err: ErrChangesFound}
	default:
		return nil
	}
}

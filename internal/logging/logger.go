// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // Package-level logger is intentional for convenience
var defaultLogger = sync.OnceValue(func() *log.Logger {
	return New("warn")
})

// New creates a logger writing to stderr at the given level.
// Valid levels: "debug", "info", "warn", "error".
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a logger writing to w at the given level.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
		Prefix:          "typfmt",
	})
	logger.SetLevel(ParseLevel(level))
	return logger
}

// ParseLevel maps a level name to a log level. Unknown names give
// WarnLevel, the default for a formatter whose normal output is the
// formatted text itself.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}

// LevelFor picks the effective level from the configured one and the
// verbosity flags. Quiet wins over verbose.
func LevelFor(configured string, verbose, quiet bool) string {
	switch {
	case quiet:
		return "error"
	case verbose:
		return "debug"
	case configured == "":
		return "warn"
	default:
		return configured
	}
}

// Default returns the package-level default logger.
func Default() *log.Logger {
	return defaultLogger()
}

// SetLevel updates the log level of the default logger.
func SetLevel(level string) {
	defaultLogger().SetLevel(ParseLevel(level))
}

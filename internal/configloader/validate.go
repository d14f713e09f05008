package configloader

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/typfmt/pkg/config"
)

// ValidationError describes one invalid or suspicious configuration value.
type ValidationError struct {
	// Field is the configuration key, e.g. "max_width".
	Field string

	// Value is the offending value.
	Value any

	// Message describes the problem.
	Message string

	// FilePath is the config file the value came from, if known.
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors prevent the configuration from being used.
	Errors []ValidationError

	// Warnings are non-fatal, such as unknown keys.
	Warnings []ValidationError
}

// Valid reports whether there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err returns the first error, or nil.
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	err := r.Errors[0]
	if n := len(r.Errors); n > 1 {
		return fmt.Errorf("%w (and %d more)", &err, n-1)
	}
	return &err
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

// Validate checks a resolved configuration.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		result.addError("", nil, "configuration is nil")
		return result
	}

	if cfg.MaxWidth < 1 {
		result.addError("max_width", cfg.MaxWidth, "must be at least 1, got %d", cfg.MaxWidth)
	}
	if cfg.IndentWidth < 1 {
		result.addError("indent_width", cfg.IndentWidth, "must be at least 1, got %d", cfg.IndentWidth)
	}
	if cfg.IndentWidth >= 1 && cfg.MaxWidth >= 1 && cfg.IndentWidth > cfg.MaxWidth {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "indent_width",
			Value:   cfg.IndentWidth,
			Message: fmt.Sprintf("is wider than max_width (%d)", cfg.MaxWidth),
		})
	}
	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "must not be negative, got %d", cfg.Jobs)
	}
	if !cfg.Color.IsValid() {
		result.addError("color", cfg.Color, "invalid value %q (expected auto, always, or never)", cfg.Color)
	}
	if !IsValidLogLevel(cfg.LogLevel) {
		result.addError("log_level", cfg.LogLevel,
			"invalid value %q (expected debug, info, warn, or error)", cfg.LogLevel)
	}
	validateIgnorePatterns(cfg, result)

	return result
}

func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		field := fmt.Sprintf("ignore[%d]", i)
		if strings.TrimSpace(pattern) == "" {
			result.addError(field, pattern, "empty pattern")
			continue
		}
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.addError(field, pattern, "invalid glob pattern: %v", err)
		}
	}
}

// ValidateWithFile validates cfg and attributes every finding to filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}

// IsValidLogLevel reports whether s names a log level. The empty string
// selects the default.
func IsValidLogLevel(s string) bool {
	switch strings.ToLower(s) {
	case "", "debug", "info", "warn", "warning", "error":
		return true
	default:
		return false
	}
}

// Package config defines core configuration types for typfmt.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

// Default layout settings.
const (
	DefaultMaxWidth    = 80
	DefaultIndentWidth = 2
)

// ColorMode controls colored terminal output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid reports whether the color mode is known.
func (c ColorMode) IsValid() bool {
	switch c {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// OutputMode selects what the front end does with formatted output.
type OutputMode string

const (
	// OutputStdout prints formatted sources to standard output.
	OutputStdout OutputMode = "stdout"
	// OutputInPlace rewrites files that changed.
	OutputInPlace OutputMode = "inplace"
	// OutputCheck only reports files that would change.
	OutputCheck OutputMode = "check"
	// OutputDiff prints a unified diff for files that would change.
	OutputDiff OutputMode = "diff"
)

// Config is the root configuration structure for typfmt.
type Config struct {
	// MaxWidth is the preferred maximum line width in display columns.
	MaxWidth int `yaml:"max_width" toml:"max_width"`

	// IndentWidth is the number of spaces per indentation level.
	IndentWidth int `yaml:"indent_width" toml:"indent_width"`

	// CollapseMarkupSpaces folds runs of prose whitespace to one space.
	CollapseMarkupSpaces bool `yaml:"collapse_markup_spaces" toml:"collapse_markup_spaces"`

	// WrapText rewraps prose at word boundaries. Implies CollapseMarkupSpaces.
	WrapText bool `yaml:"wrap_text" toml:"wrap_text"`

	// ReorderImportItems sorts the items of import statements by name.
	ReorderImportItems bool `yaml:"reorder_import_items" toml:"reorder_import_items"`

	// Jobs is the number of files formatted in parallel. Zero means one per CPU.
	Jobs int `yaml:"jobs,omitempty" toml:"jobs,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// Color controls colored output.
	Color ColorMode `yaml:"color,omitempty" toml:"color,omitempty"`

	// LogLevel is the minimum level of log messages.
	LogLevel string `yaml:"log_level,omitempty" toml:"log_level,omitempty"`

	// CLI-level options (not persisted to config files).

	// Mode selects what happens with formatted output.
	Mode OutputMode `yaml:"-" toml:"-"`

	// Timing reports the time spent per file.
	Timing bool `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		MaxWidth:           DefaultMaxWidth,
		IndentWidth:        DefaultIndentWidth,
		ReorderImportItems: true,
		Color:              ColorAuto,
		LogLevel:           "warn",
		Mode:               OutputStdout,
	}
}

// Default returns the default configuration by value, as the formatter
// takes it.
func Default() Config {
	return *NewConfig()
}

// CollapseSpaces reports whether prose whitespace is folded, either
// explicitly or because text wrapping requires it.
func (c Config) CollapseSpaces() bool {
	return c.CollapseMarkupSpaces || c.WrapText
}

package configloader

import (
	"slices"

	"github.com/yaklabco/typfmt/pkg/config"
)

// Layer is one configuration source: a file, the environment, or the
// command line. Nil fields are unset and leave lower layers untouched, so a
// layer can turn a boolean off.
type Layer struct {
	MaxWidth             *int              `yaml:"max_width" toml:"max_width"`
	IndentWidth          *int              `yaml:"indent_width" toml:"indent_width"`
	CollapseMarkupSpaces *bool             `yaml:"collapse_markup_spaces" toml:"collapse_markup_spaces"`
	WrapText             *bool             `yaml:"wrap_text" toml:"wrap_text"`
	ReorderImportItems   *bool             `yaml:"reorder_import_items" toml:"reorder_import_items"`
	Jobs                 *int              `yaml:"jobs" toml:"jobs"`
	Ignore               []string          `yaml:"ignore" toml:"ignore"`
	Color                *config.ColorMode `yaml:"color" toml:"color"`
	LogLevel             *string           `yaml:"log_level" toml:"log_level"`
}

// knownKeys are the keys a configuration file may contain.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownKeys = []string{
	"max_width",
	"indent_width",
	"collapse_markup_spaces",
	"wrap_text",
	"reorder_import_items",
	"jobs",
	"ignore",
	"color",
	"log_level",
}

func isKnownKey(key string) bool {
	return slices.Contains(knownKeys, key)
}

// Apply writes the set fields of the layer onto cfg. Ignore patterns
// replace the lower layer's list.
func (l *Layer) Apply(cfg *config.Config) {
	if l == nil || cfg == nil {
		return
	}
	setIf(&cfg.MaxWidth, l.MaxWidth)
	setIf(&cfg.IndentWidth, l.IndentWidth)
	setIf(&cfg.CollapseMarkupSpaces, l.CollapseMarkupSpaces)
	setIf(&cfg.WrapText, l.WrapText)
	setIf(&cfg.ReorderImportItems, l.ReorderImportItems)
	setIf(&cfg.Jobs, l.Jobs)
	setIf(&cfg.Color, l.Color)
	setIf(&cfg.LogLevel, l.LogLevel)
	if l.Ignore != nil {
		cfg.Ignore = slices.Clone(l.Ignore)
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Resolve applies layers in order, lowest precedence first, on top of the
// defaults.
func Resolve(layers ...*Layer) *config.Config {
	cfg := config.NewConfig()
	for _, l := range layers {
		l.Apply(cfg)
	}
	return cfg
}

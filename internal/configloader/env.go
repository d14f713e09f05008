package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/typfmt/pkg/config"
)

// envVarPrefix is the prefix of all typfmt environment variables.
const envVarPrefix = "TYPFMT_"

// LookupFunc reads an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

type envVar struct {
	suffix      string
	description string
	set         func(l *Layer, value string) error
}

//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []envVar{
	{"MAX_WIDTH", "Maximum line width", intField(func(l *Layer, v int) { l.MaxWidth = &v })},
	{"INDENT_WIDTH", "Spaces per indentation level", intField(func(l *Layer, v int) { l.IndentWidth = &v })},
	{"COLLAPSE_MARKUP_SPACES", "Fold prose whitespace: true or false", boolField(func(l *Layer, v bool) { l.CollapseMarkupSpaces = &v })},
	{"WRAP_TEXT", "Rewrap prose: true or false", boolField(func(l *Layer, v bool) { l.WrapText = &v })},
	{"REORDER_IMPORT_ITEMS", "Sort import items: true or false", boolField(func(l *Layer, v bool) { l.ReorderImportItems = &v })},
	{"JOBS", "Number of parallel workers (0 = auto)", intField(func(l *Layer, v int) { l.Jobs = &v })},
	{"IGNORE", "Comma-separated ignore patterns", func(l *Layer, v string) error {
		l.Ignore = parseSliceValue(v)
		return nil
	}},
	{"COLOR", "Colored output: auto, always, or never", func(l *Layer, v string) error {
		mode := config.ColorMode(v)
		l.Color = &mode
		return nil
	}},
	{"LOG_LEVEL", "Minimum log level: debug, info, warn, or error", func(l *Layer, v string) error {
		l.LogLevel = &v
		return nil
	}},
}

func intField(set func(*Layer, int)) func(*Layer, string) error {
	return func(l *Layer, value string) error {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		set(l, n)
		return nil
	}
}

func boolField(set func(*Layer, bool)) func(*Layer, string) error {
	return func(l *Layer, value string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		set(l, b)
		return nil
	}
}

// LayerFromEnv builds a layer from TYPFMT_* variables. Empty variables
// are ignored. A nil lookup reads the process environment.
func LayerFromEnv(lookup LookupFunc) (*Layer, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	layer := &Layer{}
	for _, v := range envVars {
		name := envVarPrefix + v.suffix
		value, ok := lookup(name)
		if !ok || value == "" {
			continue
		}
		if err := v.set(layer, value); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return layer, nil
}

func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns the supported environment variables with their
// descriptions, in a stable order.
func ListEnvVars() [][2]string {
	out := make([][2]string, len(envVars))
	for i, v := range envVars {
		out[i] = [2]string{envVarPrefix + v.suffix, v.description}
	}
	return out
}

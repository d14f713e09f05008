package config

import (
	"bytes"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every option instead of only the common ones.
	Full bool

	// Format is the output format: "yaml" or "toml".
	Format string
}

// option describes one configuration key for template generation.
type option struct {
	key         string
	description string
	value       string
	common      bool
}

func templateOptions() []option {
	def := NewConfig()
	return []option{
		{
			key:         "max_width",
			description: "Maximum line width in display columns. Lines may exceed it only where the source cannot be broken.",
			value:       fmt.Sprint(def.MaxWidth),
			common:      true,
		},
		{
			key:         "indent_width",
			description: "Number of spaces per indentation level.",
			value:       fmt.Sprint(def.IndentWidth),
			common:      true,
		},
		{
			key:         "collapse_markup_spaces",
			description: "Fold runs of whitespace in prose to a single space.",
			value:       fmt.Sprint(def.CollapseMarkupSpaces),
		},
		{
			key:         "wrap_text",
			description: "Rewrap prose at word boundaries to fit max_width. Implies collapse_markup_spaces.",
			value:       fmt.Sprint(def.WrapText),
		},
		{
			key:         "reorder_import_items",
			description: "Sort the items of import statements by name.",
			value:       fmt.Sprint(def.ReorderImportItems),
			common:      true,
		},
		{
			key:         "jobs",
			description: "Number of files formatted in parallel (0 = one per CPU).",
			value:       "0",
		},
		{
			key:         "color",
			description: "Colored output: auto, always, or never.",
			value:       fmt.Sprintf("%q", def.Color),
		},
		{
			key:         "log_level",
			description: "Minimum log level: debug, info, warn, or error.",
			value:       fmt.Sprintf("%q", def.LogLevel),
		},
	}
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	assign := ": "
	switch opts.Format {
	case "", "yaml":
	case "toml":
		assign = " = "
	default:
		return nil, fmt.Errorf("unsupported template format %q", opts.Format)
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n")

	for _, opt := range templateOptions() {
		if !opts.Full && !opt.common {
			continue
		}
		buf.WriteString("\n# ")
		buf.WriteString(wrapComment(opt.description, commentWrapWidth))
		buf.WriteString("\n")
		buf.WriteString(opt.key)
		buf.WriteString(assign)
		buf.WriteString(opt.value)
		buf.WriteString("\n")
	}

	if opts.Full {
		buf.WriteString("\n# File patterns to ignore (glob patterns)\n")
		if assign == ": " {
			buf.WriteString("# ignore:\n#   - \"build/**\"\n")
		} else {
			buf.WriteString("# ignore = [\"build/**\"]\n")
		}
	}

	return buf.Bytes(), nil
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n# ")
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# typfmt configuration
# See: https://github.com/yaklabco/typfmt`
}

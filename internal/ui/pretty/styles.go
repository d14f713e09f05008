// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/yaklabco/typfmt/pkg/config"
)

// defaultTermWidth is assumed when the output is not a terminal.
const defaultTermWidth = 80

// Styles holds the renderers for CLI output.
type Styles struct {
	FilePath lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	Success lipgloss.Style
	Failure lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates Styles, colored or plain.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &Styles{
			FilePath:    plain,
			Error:       plain,
			Warning:     plain,
			DiffHeader:  plain,
			DiffHunk:    plain,
			DiffAdd:     plain,
			DiffRemove:  plain,
			DiffContext: plain,
			Success:     plain,
			Failure:     plain,
			Dim:         plain,
			Bold:        plain,
		}
	}

	return &Styles{
		FilePath: lipgloss.NewStyle().Bold(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		DiffAdd:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		DiffRemove:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		DiffContext: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// IsColorEnabled decides whether to color output written to writer. In
// auto mode color needs a terminal and an unset NO_COLOR.
func IsColorEnabled(mode config.ColorMode, writer io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

// TerminalWidth returns the column count of writer when it is a terminal.
func TerminalWidth(writer io.Writer) int {
	if f, ok := writer.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}

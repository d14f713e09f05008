package cli

import (
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/typfmt/internal/ui/pretty"
	"github.com/yaklabco/typfmt/pkg/config"
)

// HelpStyles are the lipgloss styles used by command help.
type HelpStyles struct {
	Command    lipgloss.Style
	Heading    lipgloss.Style
	Subcommand lipgloss.Style
	Flag       lipgloss.Style
	Example    lipgloss.Style
	Dim        lipgloss.Style
}

// NewHelpStyles returns help styles, plain when color is disabled.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{plain, plain, plain, plain, plain, plain}
	}
	return &HelpStyles{
		Command:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Example:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders styled help for cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
	// width wraps flag descriptions.
	width int
}

// NewHelpFormatter returns a formatter for help written to w.
func NewHelpFormatter(mode config.ColorMode, w io.Writer) *HelpFormatter {
	return &HelpFormatter{
		styles: NewHelpStyles(pretty.IsColorEnabled(mode, w)),
		width:  pretty.TerminalWidth(w),
	}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ example .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ trimRight . }}

{{end}}` + usageTemplate

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"heading":    h.styles.Heading.Render,
		"command":    h.styles.Command.Render,
		"subcommand": h.styles.Subcommand.Render,
		"example":    h.styles.Example.Render,
		"flags":      h.flagUsages,
		"rpad":       rpad,
		"trimRight":  trimTrailingWhitespace,
	}
}

// flagUsages styles pflag's usage listing. Each line is "  -f, --flag type   description".
func (h *HelpFormatter) flagUsages(flags interface{ FlagUsagesWrapped(int) string }) string {
	usages := strings.TrimSuffix(flags.FlagUsagesWrapped(h.width), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.flagLine(line)
	}
	return strings.Join(lines, "\n")
}

func (h *HelpFormatter) flagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]
	if !strings.HasPrefix(trimmed, "-") {
		// Continuation of a wrapped description.
		return line
	}

	// At least two spaces separate the flag names from the description.
	idx := strings.Index(trimmed, "  ")
	if idx < 0 {
		return line
	}
	names, desc := trimmed[:idx], strings.TrimLeft(trimmed[idx:], " ")
	pad := len(trimmed) - len(names) - len(desc)

	var b strings.Builder
	b.WriteString(indent)
	for i, token := range strings.Fields(names) {
		if i > 0 {
			b.WriteByte(' ')
		}
		if !strings.HasPrefix(token, "-") {
			b.WriteString(h.styles.Dim.Render(token))
			continue
		}
		clean, comma := strings.CutSuffix(token, ",")
		b.WriteString(h.styles.Flag.Render(clean))
		if comma {
			b.WriteByte(',')
		}
	}
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString(desc)
	return b.String()
}

// ApplyToCommand installs the styled help and usage on cmd. Subcommands
// inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	usage := template.Must(template.New("usage").Funcs(h.funcs()).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(h.funcs()).Parse(helpTemplate))

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return usage.Execute(c.OutOrStderr(), c)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := help.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}

func rpad(s string, padding int) string {
	if len(s) >= padding {
		return s
	}
	return s + strings.Repeat(" ", padding-len(s))
}

func trimTrailingWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

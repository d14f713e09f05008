// Package cli provides the cobra command structure for typfmt.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/typfmt/internal/configloader"
	"github.com/yaklabco/typfmt/internal/logging"
	"github.com/yaklabco/typfmt/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	color      string
	verbose    bool
	quiet      bool
}

// NewRootCommand creates the typfmt command. Run without a subcommand it
// formats the given paths, or standard input.
func NewRootCommand(info BuildInfo) *cobra.Command {
	global := &globalFlags{}
	flags := &formatFlags{}

	rootCmd := &cobra.Command{
		Use:   "typfmt [flags] [paths...]",
		Short: "A code formatter for Typst",
		Long: `typfmt formats Typst markup, code, and math.

With no paths it reads standard input and writes the formatted text to
standard output. Directories are searched for .typ files.

Settings come from .typfmt.yml, .typfmt.yaml, or typfmt.toml in the
project, then the environment, then flags.

Environment variables:
` + envHelp(),
		Example: `  typfmt main.typ              Print main.typ formatted
  typfmt -i .                  Format every .typ file in place
  typfmt --check chapters/     Exit 1 if any file needs formatting
  typfmt --diff -l 100 doc.typ Show what would change at width 100
  cat doc.typ | typfmt -a      Print the syntax tree`,
		Version: info.Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logging.SetLevel(logging.LevelFor("", global.verbose, global.quiet))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, global, flags)
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	persistent := rootCmd.PersistentFlags()
	persistent.StringVar(&global.configPath, "config", "", "path to a config file")
	persistent.StringVar(&global.color, "color", string(config.ColorAuto), "colorize output: auto, always, never")
	persistent.BoolVarP(&global.verbose, "verbose", "v", false, "log debug messages")
	persistent.BoolVarP(&global.quiet, "quiet", "q", false, "log errors only")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	addFormatFlags(rootCmd, flags)

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newConfigCommand(global))
	rootCmd.AddCommand(newCompletionsCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(config.ColorMode(global.color), os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}

func envHelp() string {
	vars := configloader.ListEnvVars()
	width := 0
	for _, v := range vars {
		width = max(width, len(v[0]))
	}

	var b strings.Builder
	for _, v := range vars {
		fmt.Fprintf(&b, "  %-*s  %s\n", width, v[0], v[1])
	}
	return b.String()
}

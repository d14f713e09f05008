package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/typfmt/internal/logging"
	"github.com/yaklabco/typfmt/pkg/config"
)

// configFilePermissions is the file mode for configuration files.
const configFilePermissions = 0o644

type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a typfmt configuration file",
		Long: `Create a configuration file in the current directory holding the
default settings. typfmt picks it up for every file below that directory.

Examples:
  typfmt init                      Create a minimal .typfmt.yml
  typfmt init --full               Document every option
  typfmt init --format toml        Create typfmt.toml instead
  typfmt init --output custom.yml  Write to a custom path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "document every option")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "file format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output path (default .typfmt.yml or typfmt.toml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")

	var defaultPath string
	switch flags.format {
	case "yaml":
		defaultPath = ".typfmt.yml"
	case "toml":
		defaultPath = "typfmt.toml"
	default:
		return usageErrorf("invalid format %q: must be yaml or toml", flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = defaultPath
	}
	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return usageErrorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	return nil
}

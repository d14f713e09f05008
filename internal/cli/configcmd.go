package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/typfmt/internal/configloader"
	"github.com/yaklabco/typfmt/pkg/config"
)

func newConfigCommand(global *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Long: `Print the configuration typfmt would use in the current directory,
after config files and TYPFMT_* environment variables are applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd, global, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or toml")

	return cmd
}

func runConfig(cmd *cobra.Command, global *globalFlags, format string) error {
	if format != "yaml" && format != "toml" {
		return usageErrorf("invalid format %q: must be yaml or toml", format)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	layer := &configloader.Layer{}
	if cmd.Flags().Changed("color") {
		color := config.ColorMode(global.color)
		layer.Color = &color
	}

	loaded, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: global.configPath,
		CLI:          layer,
	})
	if err != nil {
		return usageError(fmt.Errorf("load configuration: %w", err))
	}

	var data []byte
	if format == "toml" {
		data, err = loaded.Config.ToTOML()
	} else {
		data, err = loaded.Config.ToYAMLWithHeader(sourcesHeader(loaded.LoadedFrom))
	}
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func sourcesHeader(files []string) string {
	if len(files) == 0 {
		return "# Loaded from: defaults"
	}
	return "# Loaded from: " + strings.Join(files, ", ")
}

package cli

import (
	"github.com/spf13/cobra"
)

func newCompletionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completions <shell>",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for bash, zsh, fish, or powershell.

Examples:
  typfmt completions bash > /etc/bash_completion.d/typfmt
  typfmt completions zsh > "${fpath[1]}/_typfmt"
  typfmt completions fish > ~/.config/fish/completions/typfmt.fish`,
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

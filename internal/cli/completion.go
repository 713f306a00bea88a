package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/mathscene/pkg/scenes/catalog"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for mathscene.

Bash:
  $ source <(mathscene completion bash)

Zsh:
  $ mathscene completion zsh > "${fpath[1]}/_mathscene"

Fish:
  $ mathscene completion fish > ~/.config/fish/completions/mathscene.fish

PowerShell:
  PS> mathscene completion powershell | Out-String | Invoke-Expression

Scene names complete for render, check, graph and preview.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// completeScene completes the first positional argument with scene names
// and their descriptions.
func completeScene(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	out := make([]string, 0, len(catalog.All))
	for _, d := range catalog.All {
		out = append(out, d.Name+"\t"+d.Description)
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

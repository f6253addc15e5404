package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for your shell, covering every
halfmesh command and flag (including --primitive and --op values once the
shell has loaded the script).

Load it for the current session:

Bash:
  $ source <(halfmesh completion bash)

Zsh:
  $ halfmesh completion zsh > "${fpath[1]}/_halfmesh"
  (run "autoload -U compinit; compinit" first if completion is not yet
  enabled, then start a new shell)

Fish:
  $ halfmesh completion fish | source

PowerShell:
  PS> halfmesh completion powershell | Out-String | Invoke-Expression

To load on every session instead, write the script where your shell
discovers completions, for example:

  $ halfmesh completion bash > /etc/bash_completion.d/halfmesh
  $ halfmesh completion fish > ~/.config/fish/completions/halfmesh.fish
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

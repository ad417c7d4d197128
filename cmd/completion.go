package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/otdash/internal/cli"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Print a completion script for bash, zsh, fish or powershell.

  bash        source <(otdash completion bash)
              or save it to ~/.local/share/bash-completion/completions/otdash
  zsh         otdash completion zsh > "${fpath[1]}/_otdash"
  fish        otdash completion fish > ~/.config/fish/completions/otdash.fish
  powershell  otdash completion powershell | Out-String | Invoke-Expression

Start a new shell after installing.`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.ExactValidArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		generateCompletion(args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// generateCompletion writes the script for shell to Stdout.
func generateCompletion(shell string) {
	d := cli.GetDeps()
	var err error
	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletion(d.Stdout)
	case "zsh":
		err = rootCmd.GenZshCompletion(d.Stdout)
	case "fish":
		err = rootCmd.GenFishCompletion(d.Stdout, true)
	case "powershell":
		err = rootCmd.GenPowerShellCompletionWithDesc(d.Stdout)
	default:
		_, _ = fmt.Fprintf(d.Stderr, "Error: Unsupported shell '%s'\n", shell)
		_, _ = fmt.Fprintln(d.Stderr, "Supported shells: bash, zsh, fish, powershell")
		d.Exit(1)
		return
	}

	if err != nil {
		_, _ = fmt.Fprintf(d.Stderr, "Error: Failed to generate %s completion: %v\n", shell, err)
		d.Exit(1)
		return
	}
}

package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/rohankatakam/gitclock/internal/errors"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

func newCompletionsCmd() *cobra.Command {
	var shell string

	cmd := &cobra.Command{
		Use:   "completions",
		Short: "Print a shell completion script",
		Long: `Print the completion script for a shell.

Examples:
  gitclock completions --type bash > /etc/bash_completion.d/gitclock
  gitclock completions --type zsh > "${fpath[1]}/_gitclock"
  gitclock completions --type fish > ~/.config/fish/completions/gitclock.fish`,
		Args: cobra.NoArgs,
		// Completions never need configuration or a logger
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			out := cmd.OutOrStdout()

			switch strings.ToLower(shell) {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			default:
				return errors.ParseErrorf("unsupported shell '%s' (expected one of %s)", shell, strings.Join(completionShells, ", "))
			}
		},
	}

	cmd.Flags().StringVarP(&shell, "type", "t", "", "shell: bash, zsh, fish or powershell")
	cmd.MarkFlagRequired("type")
	cmd.RegisterFlagCompletionFunc("type", cobra.FixedCompletions(completionShells, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// Package mappings implements the mappings management commands.
package mappings

import "github.com/spf13/cobra"

// Command creates the mappings parent command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Manage source mappings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(NewListCommand())
	return cmd
}

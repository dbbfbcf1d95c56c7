package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schemaledger/schemaledger/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "schemaledger",
		Short:   "Composable transaction-schema bookkeeping",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newPostCommand())
	rootCmd.AddCommand(newBalanceCommand())
	rootCmd.AddCommand(newSchemasCommand())

	return rootCmd
}

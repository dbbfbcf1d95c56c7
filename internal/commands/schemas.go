package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSchemasCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "schemas",
		Short: "List registered transaction schemas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchemas(cmd, repoDir)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "project directory")

	return cmd
}

func runSchemas(cmd *cobra.Command, repoDir string) error {
	proj, err := loadProject(cmd.Context(), repoDir)
	if err != nil {
		return err
	}

	for _, s := range proj.schemas.All() {
		amount := "-"
		if s.DefaultAmount != nil {
			amount = s.DefaultAmount.Descriptor()
		}
		from, to := "-", "-"
		if a, ok := proj.accounts.Get(s.DefaultFromID); ok {
			from = a.Name
		}
		if a, ok := proj.accounts.Get(s.DefaultToID); ok {
			to = a.Name
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s -> %s\n", s.Name, amount, from, to)
	}
	return nil
}

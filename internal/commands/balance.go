package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schemaledger/schemaledger/internal/ledger"
)

func newBalanceCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "balance <account-name>",
		Short: "Show the balance of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBalance(cmd, repoDir, args[0])
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "project directory")

	return cmd
}

func runBalance(cmd *cobra.Command, repoDir, name string) error {
	ctx := cmd.Context()

	proj, err := loadProject(ctx, repoDir)
	if err != nil {
		return err
	}

	acct, ok := proj.accounts.ByName(name)
	if !ok {
		return fmt.Errorf("unknown account %q", name)
	}

	agg := ledger.NewAggregator(proj.store)
	balance, err := agg.Balance(ctx, acct.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", acct.Name, balance.StringFixed(2))
	return nil
}

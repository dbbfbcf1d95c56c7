package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/schemaledger/schemaledger/internal/accounts"
	"github.com/schemaledger/schemaledger/internal/config"
	"github.com/schemaledger/schemaledger/internal/gitops"
	"github.com/schemaledger/schemaledger/internal/model"
	"github.com/schemaledger/schemaledger/internal/schema"
)

func newInitCommand() *cobra.Command {
	var git bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ledger project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, git)
		},
	}

	cmd.Flags().BoolVar(&git, "git", false, "initialize a git repository and enable auto-commit")

	return cmd
}

func runInit(dir string, git bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	cfg := config.Default()
	cfg.Git.AutoCommit = git
	if err := config.Save(filepath.Join(dir, configFile), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	accts := accounts.NewService(seedAccounts())
	if err := accts.Save(dir); err != nil {
		return fmt.Errorf("writing accounts: %w", err)
	}

	registry := schema.NewRegistry(schema.RedefineError)
	if err := registry.Save(dir); err != nil {
		return fmt.Errorf("writing schemas: %w", err)
	}

	if git {
		if !gitops.IsRepo(dir) {
			if err := gitops.Init(dir); err != nil {
				return err
			}
		}
		if _, err := gitops.CommitAll(dir, "init: new ledger project", cfg.Git.AuthorName, cfg.Git.AuthorEmail); err != nil {
			return fmt.Errorf("committing initial files: %w", err)
		}
	}

	fmt.Printf("Initialized ledger project in %s\n", dir)
	return nil
}

// seedAccounts is the minimal starting chart: the two cash accounts every
// sale flow needs.
func seedAccounts() []model.Account {
	return []model.Account{
		{ID: 1, Name: "cash_in"},
		{ID: 2, Name: "cash_out"},
	}
}

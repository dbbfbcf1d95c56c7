package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/schemaledger/schemaledger/internal/gitops"
	"github.com/schemaledger/schemaledger/internal/posting"
	"github.com/schemaledger/schemaledger/internal/tree"
)

func newPostCommand() *cobra.Command {
	var repoDir string
	var amount string

	cmd := &cobra.Command{
		Use:   "post <tree.yaml>",
		Short: "Post a transaction tree to the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPost(cmd, repoDir, args[0], amount)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "project directory")
	cmd.Flags().StringVar(&amount, "amount", "", "amount to invoke the root with")

	return cmd
}

func runPost(cmd *cobra.Command, repoDir, treePath, amount string) error {
	ctx := cmd.Context()

	proj, err := loadProject(ctx, repoDir)
	if err != nil {
		return err
	}

	builder := tree.NewBuilder(proj.schemas)
	root, err := builder.LoadFile(treePath, proj.accounts)
	if err != nil {
		return err
	}

	if amount != "" {
		v, err := decimal.NewFromString(amount)
		if err != nil {
			return fmt.Errorf("parsing amount %q: %w", amount, err)
		}
		root.Apply(v)
	}

	var opts []posting.Option
	if pub := proj.publisher(); pub != nil {
		opts = append(opts, posting.WithPublisher(pub))
	}
	engine := posting.NewEngine(proj.store, proj.accounts, opts...)

	entries, err := engine.Post(ctx, root)
	if err != nil {
		return err
	}

	// New accounts and schemas may have been registered while building.
	if err := proj.accounts.Save(proj.root); err != nil {
		return err
	}
	if err := proj.schemas.Save(proj.root); err != nil {
		return err
	}

	for _, e := range entries {
		from, _ := proj.accounts.Get(e.FromID)
		to, _ := proj.accounts.Get(e.ToID)
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s -> %s\n",
			e.ID, e.Amount.StringFixed(2), from.Name, to.Name)
	}

	if proj.cfg.Git.AutoCommit && gitops.IsRepo(proj.root) {
		msg := fmt.Sprintf("post: %s (%d entries)", entries[0].PostingID, len(entries))
		if _, err := gitops.CommitAll(proj.root, msg, proj.cfg.Git.AuthorName, proj.cfg.Git.AuthorEmail); err != nil {
			return fmt.Errorf("committing posting: %w", err)
		}
	}

	return nil
}

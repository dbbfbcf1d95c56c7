package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/schemaledger/schemaledger/internal/model"
)

// Store is the append-only record of ledger entries. AppendAll commits one
// posted tree's entries as a unit: implementations must make the whole
// batch visible together or not at all.
type Store interface {
	AppendAll(ctx context.Context, entries []model.Entry) error
	All(ctx context.Context) ([]model.Entry, error)
	ForAccount(ctx context.Context, accountID int) ([]model.Entry, error)
}

// Aggregator computes account balances over a Store.
type Aggregator struct {
	store Store
}

// NewAggregator creates an Aggregator over the given store.
func NewAggregator(store Store) *Aggregator {
	return &Aggregator{store: store}
}

// CreditsFor sums amounts credited to the account (entries where it is the
// destination).
func (a *Aggregator) CreditsFor(ctx context.Context, accountID int) (decimal.Decimal, error) {
	entries, err := a.store.ForAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, e := range entries {
		if e.ToID == accountID {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

// DebitsFor sums amounts debited from the account (entries where it is the
// source).
func (a *Aggregator) DebitsFor(ctx context.Context, accountID int) (decimal.Decimal, error) {
	entries, err := a.store.ForAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, e := range entries {
		if e.FromID == accountID {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

// Balance is credits minus debits for the account.
func (a *Aggregator) Balance(ctx context.Context, accountID int) (decimal.Decimal, error) {
	credits, err := a.CreditsFor(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	debits, err := a.DebitsFor(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return credits.Sub(debits), nil
}

// References reports whether any entry references the account on either
// side. Satisfies accounts.EntryChecker.
func (a *Aggregator) References(accountID int) (bool, error) {
	entries, err := a.store.ForAccount(context.Background(), accountID)
	if err != nil {
		return false, err
	}
	return len(entries) > 0, nil
}

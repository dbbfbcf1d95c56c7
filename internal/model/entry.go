package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is a single immutable ledger record: one amount moved from one
// account to another. Entries are append-only; they are never mutated or
// deleted once written.
type Entry struct {
	ID        string // posting ID plus leg suffix, e.g. "b1f4...-a"
	PostingID string // shared by every entry of one posted tree
	CreatedAt time.Time
	Amount    decimal.Decimal // non-negative, at most 2 fractional digits
	FromID    int             // debited account
	ToID      int             // credited account
}

package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/schemaledger/schemaledger/internal/id"
	"github.com/schemaledger/schemaledger/internal/model"
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Invariant   int
	EntryID     string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.EntryID, e.Description)
}

// AccountChecker tests whether an account ID is registered.
type AccountChecker interface {
	Exists(id int) bool
}

var oneHundred = decimal.NewFromInt(100)

// ValidateEntries enforces 4 invariants on a batch of entries before it is
// committed.
func ValidateEntries(entries []model.Entry, accounts AccountChecker) []ValidationError {
	var errs []ValidationError

	for _, e := range entries {
		// Invariant 1: amounts are non-negative.
		if e.Amount.IsNegative() {
			errs = append(errs, ValidationError{
				Invariant:   1,
				EntryID:     e.ID,
				Description: fmt.Sprintf("negative amount %s", e.Amount.StringFixed(2)),
			})
		}

		// Invariant 2: exact decimals, no more than 2 fractional digits.
		if !e.Amount.Mul(oneHundred).Equal(e.Amount.Mul(oneHundred).Floor()) {
			errs = append(errs, ValidationError{
				Invariant:   2,
				EntryID:     e.ID,
				Description: fmt.Sprintf("amount %s has more than 2 decimal places", e.Amount),
			})
		}

		// Invariant 3: both accounts resolved and registered.
		if e.FromID == 0 || !accounts.Exists(e.FromID) {
			errs = append(errs, ValidationError{
				Invariant:   3,
				EntryID:     e.ID,
				Description: fmt.Sprintf("unknown from account %d", e.FromID),
			})
		}
		if e.ToID == 0 || !accounts.Exists(e.ToID) {
			errs = append(errs, ValidationError{
				Invariant:   3,
				EntryID:     e.ID,
				Description: fmt.Sprintf("unknown to account %d", e.ToID),
			})
		}

		// Invariant 4: entry ID carries the batch's posting ID.
		postingID, _, err := id.ParseEntryID(e.ID)
		if err != nil {
			errs = append(errs, ValidationError{
				Invariant:   4,
				EntryID:     e.ID,
				Description: err.Error(),
			})
		} else if postingID != e.PostingID {
			errs = append(errs, ValidationError{
				Invariant:   4,
				EntryID:     e.ID,
				Description: fmt.Sprintf("entry ID does not match posting %s", e.PostingID),
			})
		}
	}

	return errs
}

package posting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/schemaledger/schemaledger/internal/events"
	"github.com/schemaledger/schemaledger/internal/id"
	"github.com/schemaledger/schemaledger/internal/ledger"
	"github.com/schemaledger/schemaledger/internal/model"
	"github.com/schemaledger/schemaledger/internal/tree"
)

// Engine resolves a transaction tree and posts one ledger entry per node.
// Resolution is a depth-first pre-order walk; inherited values (timestamp,
// parent amount, parent destination account) are threaded through call
// parameters, never through node mutation, so a tree can be posted more
// than once.
type Engine struct {
	store     ledger.Store
	accounts  ledger.AccountChecker
	publisher events.Publisher // nil = no events
	now       func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithPublisher emits a PostingCompleted event after each committed tree.
func WithPublisher(p events.Publisher) Option {
	return func(e *Engine) { e.publisher = p }
}

// WithClock overrides the wall clock used for root timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an Engine over a ledger store and account registry.
func NewEngine(store ledger.Store, accounts ledger.AccountChecker, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		accounts: accounts,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// resolved carries the values a node passes down to its children.
type resolved struct {
	amount    decimal.Decimal
	createdAt time.Time
	toID      int
}

// Post resolves the tree rooted at root and commits its entries to the
// store as a single batch: either every node's entry becomes visible or
// none does. Entries appear in pre-order, children in declaration order.
func (e *Engine) Post(ctx context.Context, root *tree.Node) ([]model.Entry, error) {
	if err := root.Err(); err != nil {
		return nil, fmt.Errorf("invalid tree: %w", err)
	}

	postingID := id.NewPostingID()
	var entries []model.Entry
	if err := e.resolve(root, nil, postingID, &entries); err != nil {
		return nil, err
	}

	if verrs := ledger.ValidateEntries(entries, e.accounts); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return nil, fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	if err := e.store.AppendAll(ctx, entries); err != nil {
		return nil, fmt.Errorf("committing entries: %w", err)
	}

	if e.publisher != nil {
		event := events.PostingCompleted{
			PostingID:  postingID,
			Entries:    len(entries),
			Total:      entries[0].Amount,
			OccurredAt: entries[0].CreatedAt,
		}
		if err := e.publisher.PublishPostingCompleted(ctx, event); err != nil {
			// The batch is already committed; the caller keeps the entries.
			return entries, fmt.Errorf("entries committed, publishing event: %w", err)
		}
	}

	return entries, nil
}

// resolve walks one node. parent is nil at the root.
func (e *Engine) resolve(n *tree.Node, parent *resolved, postingID string, entries *[]model.Entry) error {
	// Timestamp: explicit wins, then the inherited one; the root falls back
	// to the wall clock, making the whole tree one logical moment.
	createdAt := n.CreatedAt
	if createdAt.IsZero() {
		if parent != nil {
			createdAt = parent.createdAt
		} else {
			createdAt = e.now()
		}
	}

	// Amount: a Calculation derives from the parent's resolved amount.
	// Literals carry their own value and ignore the parent. A derivation
	// failure is an error, never a silent fallback.
	if n.Amount == nil {
		return UnresolvedAmountError{Node: n.Name}
	}
	parentAmount := decimal.Zero
	if parent != nil {
		parentAmount = parent.amount
	} else if n.Amount.NeedsParent() {
		return CalculationError{Node: n.Name, Err: errors.New("no parent amount to derive from")}
	}
	amount, err := n.Amount.Apply(parentAmount)
	if err != nil {
		return CalculationError{Node: n.Name, Err: err}
	}

	// Accounts: from falls back to the parent's resolved destination; to
	// has no fallback.
	fromID := n.FromID
	if fromID == 0 && parent != nil {
		fromID = parent.toID
	}
	if fromID == 0 {
		return UnresolvedAccountError{Node: n.Name, Side: "from"}
	}
	if n.ToID == 0 {
		return UnresolvedAccountError{Node: n.Name, Side: "to"}
	}

	*entries = append(*entries, model.Entry{
		ID:        id.FormatEntryID(postingID, len(*entries)),
		PostingID: postingID,
		CreatedAt: createdAt,
		Amount:    amount,
		FromID:    fromID,
		ToID:      n.ToID,
	})

	down := &resolved{amount: amount, createdAt: createdAt, toID: n.ToID}
	for _, child := range n.Children {
		if err := e.resolve(child, down, postingID, entries); err != nil {
			return err
		}
	}
	return nil
}

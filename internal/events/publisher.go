package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PostingCompleted is emitted after one tree's entries are committed.
type PostingCompleted struct {
	PostingID  string          `json:"posting_id"`
	Entries    int             `json:"entries"`
	Total      decimal.Decimal `json:"total"` // root entry amount
	OccurredAt time.Time       `json:"occurred_at"`
}

// Publisher delivers posting events to an external consumer.
type Publisher interface {
	PublishPostingCompleted(ctx context.Context, event PostingCompleted) error
}

package ledger

import (
	"context"
	"sync"

	"github.com/schemaledger/schemaledger/internal/model"
)

// MemoryStore is an in-memory Store, safe for concurrent use. A batch
// append holds the lock for the whole batch, so concurrent balance reads
// never observe a partially posted tree.
type MemoryStore struct {
	mu      sync.Mutex
	entries []model.Entry
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// AppendAll appends a batch of entries.
func (m *MemoryStore) AppendAll(_ context.Context, entries []model.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, entries...)
	return nil
}

// All returns a copy of every entry in insertion order.
func (m *MemoryStore) All(_ context.Context) ([]model.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]model.Entry, len(m.entries))
	copy(copied, m.entries)
	return copied, nil
}

// ForAccount returns entries referencing the account on either side.
func (m *MemoryStore) ForAccount(_ context.Context, accountID int) ([]model.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []model.Entry
	for _, e := range m.entries {
		if e.FromID == accountID || e.ToID == accountID {
			result = append(result, e)
		}
	}
	return result, nil
}

var _ Store = (*MemoryStore)(nil)

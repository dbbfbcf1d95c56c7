package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemaledger/schemaledger/internal/model"
)

// mockAccounts implements AccountChecker for testing.
type mockAccounts struct {
	ids map[int]bool
}

func (m *mockAccounts) Exists(id int) bool {
	return m.ids[id]
}

func newMockAccounts(ids ...int) *mockAccounts {
	m := &mockAccounts{ids: make(map[int]bool)}
	for _, id := range ids {
		m.ids[id] = true
	}
	return m
}

func TestValidate_CleanBatch(t *testing.T) {
	entries := []model.Entry{entry("p1", "100.00", 1, 2), entry("p2", "0.00", 2, 3)}
	errs := ValidateEntries(entries, newMockAccounts(1, 2, 3))
	assert.Empty(t, errs)
}

func TestValidate_NegativeAmount(t *testing.T) {
	entries := []model.Entry{entry("p1", "-5.00", 1, 2)}
	errs := ValidateEntries(entries, newMockAccounts(1, 2))
	require.Len(t, errs, 1)
	assert.Equal(t, 1, errs[0].Invariant)
}

func TestValidate_TooManyDecimalPlaces(t *testing.T) {
	entries := []model.Entry{entry("p1", "10.001", 1, 2)}
	errs := ValidateEntries(entries, newMockAccounts(1, 2))
	require.Len(t, errs, 1)
	assert.Equal(t, 2, errs[0].Invariant)
}

func TestValidate_UnknownAccounts(t *testing.T) {
	entries := []model.Entry{entry("p1", "10.00", 1, 9)}
	errs := ValidateEntries(entries, newMockAccounts(1))
	require.Len(t, errs, 1)
	assert.Equal(t, 3, errs[0].Invariant)

	entries = []model.Entry{entry("p1", "10.00", 0, 1)}
	errs = ValidateEntries(entries, newMockAccounts(1))
	require.Len(t, errs, 1)
	assert.Equal(t, 3, errs[0].Invariant)
}

func TestValidate_EntryIDMatchesPosting(t *testing.T) {
	e := entry("p1", "10.00", 1, 2)
	e.PostingID = "other"
	errs := ValidateEntries([]model.Entry{e}, newMockAccounts(1, 2))
	require.Len(t, errs, 1)
	assert.Equal(t, 4, errs[0].Invariant)

	e = entry("p1", "10.00", 1, 2)
	e.ID = "garbage"
	errs = ValidateEntries([]model.Entry{e}, newMockAccounts(1, 2))
	require.Len(t, errs, 1)
	assert.Equal(t, 4, errs[0].Invariant)
}

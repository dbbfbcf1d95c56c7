package ledger

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemaledger/schemaledger/internal/model"
)

func TestCSVStore_AppendCreatesFileWithHeader(t *testing.T) {
	ctx := context.Background()
	store := NewCSVStore(t.TempDir())

	require.NoError(t, store.AppendAll(ctx, []model.Entry{entry("p1", "100.00", 1, 2)}))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, Header, lines[0])
}

func TestCSVStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewCSVStore(t.TempDir())

	first := []model.Entry{entry("p1", "100.00", 1, 2)}
	second := []model.Entry{entry("p2", "10.00", 2, 3), entry("p3", "1.00", 3, 4)}
	require.NoError(t, store.AppendAll(ctx, first))
	require.NoError(t, store.AppendAll(ctx, second))

	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	assert.Equal(t, "p1-a", all[0].ID)
	assert.Equal(t, "p1", all[0].PostingID)
	assert.True(t, all[0].Amount.Equal(dec("100.00")))
	assert.Equal(t, 1, all[0].FromID)
	assert.Equal(t, 2, all[0].ToID)
	assert.False(t, all[0].CreatedAt.IsZero())

	assert.Equal(t, "p3-a", all[2].ID)
}

func TestCSVStore_ForAccount(t *testing.T) {
	ctx := context.Background()
	store := NewCSVStore(t.TempDir())
	require.NoError(t, store.AppendAll(ctx, []model.Entry{
		entry("p1", "100.00", 1, 2),
		entry("p2", "10.00", 2, 3),
	}))

	entries, err := store.ForAccount(ctx, 3)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "p2-a", entries[0].ID)
}

func TestCSVStore_MissingFileIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := NewCSVStore(t.TempDir())

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemaledger/schemaledger/internal/calc"
	"github.com/schemaledger/schemaledger/internal/model"
)

func TestGetOrCreate_FirstDefinitionWins(t *testing.T) {
	r := NewRegistry(RedefineIgnore)

	first, created, err := r.GetOrCreate(model.Schema{Name: "Sale", DefaultFromID: 1, DefaultToID: 2})
	require.NoError(t, err)
	assert.True(t, created)

	// Second definition with different defaults is silently discarded.
	second, created, err := r.GetOrCreate(model.Schema{Name: "Sale", DefaultFromID: 9, DefaultToID: 8})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.DefaultFromID, second.DefaultFromID)
	assert.Equal(t, 1, r.Len())
}

func TestGetOrCreate_IdenticalRedefinitionIsNoop(t *testing.T) {
	r := NewRegistry(RedefineError)

	def := model.Schema{Name: "Tax", DefaultAmount: calc.NewPercentual(10), DefaultToID: 3}
	_, created, err := r.GetOrCreate(def)
	require.NoError(t, err)
	assert.True(t, created)

	_, created, err = r.GetOrCreate(def)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1, r.Len())
}

func TestGetOrCreate_BareReferenceIsLookup(t *testing.T) {
	r := NewRegistry(RedefineError)

	_, _, err := r.GetOrCreate(model.Schema{Name: "Sale", DefaultFromID: 1, DefaultToID: 2})
	require.NoError(t, err)

	// Referring to the name without defaults must not count as a
	// conflicting redefinition.
	s, created, err := r.GetOrCreate(model.Schema{Name: "Sale"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1, s.DefaultFromID)
}

func TestGetOrCreate_ConflictingRedefinitionErrors(t *testing.T) {
	r := NewRegistry(RedefineError)

	_, _, err := r.GetOrCreate(model.Schema{Name: "Sale", DefaultFromID: 1})
	require.NoError(t, err)

	_, _, err = r.GetOrCreate(model.Schema{Name: "Sale", DefaultFromID: 2})
	require.Error(t, err)

	var dup DuplicateDefinitionError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "Sale", dup.Name)
}

func TestGetOrCreate_Overwrite(t *testing.T) {
	r := NewRegistry(RedefineOverwrite)

	_, _, err := r.GetOrCreate(model.Schema{Name: "Sale", DefaultFromID: 1})
	require.NoError(t, err)

	s, _, err := r.GetOrCreate(model.Schema{Name: "Sale", DefaultFromID: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, s.DefaultFromID)
	assert.Equal(t, 1, r.Len())
}

func TestAll_DefinitionOrder(t *testing.T) {
	r := NewRegistry(RedefineIgnore)

	for _, name := range []string{"Sale", "Tax", "Commission"} {
		_, _, err := r.GetOrCreate(model.Schema{Name: name, DefaultToID: 1})
		require.NoError(t, err)
	}

	all := r.All()
	require.Len(t, all, 3)
	assert.Equal(t, "Sale", all[0].Name)
	assert.Equal(t, "Tax", all[1].Name)
	assert.Equal(t, "Commission", all[2].Name)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	r := NewRegistry(RedefineError)
	_, _, err := r.GetOrCreate(model.Schema{Name: "Sale", DefaultFromID: 1, DefaultToID: 2})
	require.NoError(t, err)
	_, _, err = r.GetOrCreate(model.Schema{Name: "Tax", DefaultAmount: calc.NewPercentual(10), DefaultToID: 3})
	require.NoError(t, err)

	require.NoError(t, r.Save(dir))

	loaded, err := Load(dir, RedefineError)
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Len())

	tax, ok := loaded.Get("Tax")
	require.True(t, ok)
	require.NotNil(t, tax.DefaultAmount)
	assert.Equal(t, "percent:10", tax.DefaultAmount.Descriptor())
	assert.Equal(t, 3, tax.DefaultToID)

	sale, ok := loaded.Get("Sale")
	require.True(t, ok)
	assert.Nil(t, sale.DefaultAmount)
	assert.Equal(t, 1, sale.DefaultFromID)
}

func TestLoad_MissingFile(t *testing.T) {
	r, err := Load(t.TempDir(), RedefineError)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())
}

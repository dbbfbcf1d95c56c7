package calc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestLiteral_IgnoresParent(t *testing.T) {
	l := NewLiteral(dec("25.00"))

	got, err := l.Apply(dec("1000"))
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("25.00")))

	got, err = l.Apply(decimal.Zero)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("25.00")))

	assert.False(t, l.NeedsParent())
}

func TestPercentual_Apply(t *testing.T) {
	tests := []struct {
		rate   int64
		parent string
		want   string
	}{
		{10, "100", "10"},
		{10, "10", "1"},
		{25, "200", "50"},
		{10, "100.05", "10.01"}, // 10.005 rounds half-up
		{7, "99.99", "7.00"},    // 6.9993 rounds to 7.00
		{0, "100", "0"},
	}

	for _, tt := range tests {
		p := NewPercentual(tt.rate)
		got, err := p.Apply(dec(tt.parent))
		require.NoError(t, err)
		assert.True(t, got.Equal(dec(tt.want)), "Percentual(%d) of %s: got %s, want %s", tt.rate, tt.parent, got, tt.want)
	}
}

func TestPercentual_NegativeRate(t *testing.T) {
	p := Percentual{Rate: dec("-5")}
	_, err := p.Apply(dec("100"))
	require.Error(t, err)
}

func TestPercentual_NeedsParent(t *testing.T) {
	assert.True(t, NewPercentual(10).NeedsParent())
}

func TestFlatFee_Apply(t *testing.T) {
	f := FlatFee{Fee: dec("2.50")}

	got, err := f.Apply(dec("100"))
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("102.50")))
	assert.True(t, f.NeedsParent())
}

func TestParse(t *testing.T) {
	tests := []struct {
		descriptor string
		parent     string
		want       string
	}{
		{"literal:25.00", "999", "25.00"},
		{"percent:10", "100", "10"},
		{"flat:2.50", "10", "12.50"},
	}

	for _, tt := range tests {
		c, err := Parse(tt.descriptor)
		require.NoError(t, err, tt.descriptor)
		assert.Equal(t, tt.descriptor, c.Descriptor())

		got, err := c.Apply(dec(tt.parent))
		require.NoError(t, err)
		assert.True(t, got.Equal(dec(tt.want)), "%s: got %s", tt.descriptor, got)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, descriptor := range []string{"", "percent", "percent:abc", "exec:os.system"} {
		_, err := Parse(descriptor)
		assert.Error(t, err, descriptor)
	}
}

package calc

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Calculation derives a node's amount from its parent's resolved amount.
// Implementations are pure values; the posting engine dispatches on them
// without knowing the concrete variant.
type Calculation interface {
	// Apply derives an amount from the parent's resolved amount. Variants
	// that ignore the parent (Literal) receive decimal.Zero at the root.
	Apply(parent decimal.Decimal) (decimal.Decimal, error)

	// NeedsParent reports whether Apply is meaningless without a parent
	// amount. The engine uses it to reject e.g. a percentage at the root
	// of an uninvoked tree instead of silently deriving from zero.
	NeedsParent() bool

	// Descriptor returns the persisted "kind:param" form, e.g. "percent:10".
	Descriptor() string
}

// Literal is a fixed amount. It ignores the parent entirely.
type Literal struct {
	Value decimal.Decimal
}

// NewLiteral wraps a fixed decimal amount.
func NewLiteral(v decimal.Decimal) Literal {
	return Literal{Value: v}
}

// LiteralFromInt wraps a fixed integer amount.
func LiteralFromInt(v int64) Literal {
	return Literal{Value: decimal.NewFromInt(v)}
}

func (l Literal) Apply(decimal.Decimal) (decimal.Decimal, error) {
	return l.Value, nil
}

func (l Literal) NeedsParent() bool { return false }

func (l Literal) Descriptor() string {
	return "literal:" + l.Value.String()
}

// Percentual derives rate percent of the parent amount, rounded half-up to
// 2 fractional digits.
type Percentual struct {
	Rate decimal.Decimal
}

// NewPercentual creates a Percentual with an integer rate (10 = 10%).
func NewPercentual(rate int64) Percentual {
	return Percentual{Rate: decimal.NewFromInt(rate)}
}

var hundred = decimal.NewFromInt(100)

func (p Percentual) Apply(parent decimal.Decimal) (decimal.Decimal, error) {
	if p.Rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative rate %s", p.Rate)
	}
	return parent.Mul(p.Rate).Div(hundred).Round(2), nil
}

func (p Percentual) NeedsParent() bool { return true }

func (p Percentual) Descriptor() string {
	return "percent:" + p.Rate.String()
}

// FlatFee derives the parent amount plus a fixed surcharge. It exists to
// keep the variant set honest about extensibility; the engine needs no
// changes to support it.
type FlatFee struct {
	Fee decimal.Decimal
}

func (f FlatFee) Apply(parent decimal.Decimal) (decimal.Decimal, error) {
	if f.Fee.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative fee %s", f.Fee)
	}
	return parent.Add(f.Fee).Round(2), nil
}

func (f FlatFee) NeedsParent() bool { return true }

func (f FlatFee) Descriptor() string {
	return "flat:" + f.Fee.String()
}

// Parse converts a stored descriptor back into a Calculation. Descriptors
// are structured "kind:param" strings, never executable text.
func Parse(descriptor string) (Calculation, error) {
	kind, param, ok := strings.Cut(descriptor, ":")
	if !ok {
		return nil, fmt.Errorf("malformed calculation descriptor %q", descriptor)
	}

	v, err := decimal.NewFromString(param)
	if err != nil {
		return nil, fmt.Errorf("parsing calculation param %q: %w", param, err)
	}

	switch kind {
	case "literal":
		return Literal{Value: v}, nil
	case "percent":
		return Percentual{Rate: v}, nil
	case "flat":
		return FlatFee{Fee: v}, nil
	default:
		return nil, fmt.Errorf("unknown calculation kind %q", kind)
	}
}

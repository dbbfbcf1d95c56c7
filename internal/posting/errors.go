package posting

import "fmt"

// UnresolvedAccountError reports a node that reached posting with its
// source or destination account still unset.
type UnresolvedAccountError struct {
	Node string
	Side string // "from" or "to"
}

func (e UnresolvedAccountError) Error() string {
	return fmt.Sprintf("node %q: %s account unresolved", e.Node, e.Side)
}

// CalculationError reports a node whose amount could not be derived: either
// its Calculation needs a parent amount that does not exist, or applying it
// failed. The absence of a Calculation is not an error; a node simply keeps
// no amount and fails resolution separately.
type CalculationError struct {
	Node string
	Err  error
}

func (e CalculationError) Error() string {
	return fmt.Sprintf("node %q: deriving amount: %v", e.Node, e.Err)
}

func (e CalculationError) Unwrap() error { return e.Err }

// UnresolvedAmountError reports a node with no amount at all: no explicit
// value, no schema default, nothing to post.
type UnresolvedAmountError struct {
	Node string
}

func (e UnresolvedAmountError) Error() string {
	return fmt.Sprintf("node %q: amount unresolved", e.Node)
}

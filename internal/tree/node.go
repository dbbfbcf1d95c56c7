package tree

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/schemaledger/schemaledger/internal/calc"
	"github.com/schemaledger/schemaledger/internal/model"
	"github.com/schemaledger/schemaledger/internal/schema"
)

// Node is an in-memory instance of a schema: a transaction template not yet
// posted. A node exclusively owns its children; the caller owns the root.
type Node struct {
	Name      string
	Schema    model.Schema
	Amount    calc.Calculation // nil = unset
	FromID    int              // 0 = unset
	ToID      int              // 0 = unset
	CreatedAt time.Time        // zero = unset, resolved at posting time
	Children  []*Node

	err error
}

// Builder constructs transaction trees, resolving schema defaults through
// an explicit registry.
type Builder struct {
	registry *schema.Registry
}

// NewBuilder creates a Builder over the given schema registry.
func NewBuilder(registry *schema.Registry) *Builder {
	return &Builder{registry: registry}
}

// Registry returns the builder's schema registry.
func (b *Builder) Registry() *schema.Registry {
	return b.registry
}

// DefineParams holds the explicit values for a new node. Zero fields fall
// back to the schema's stored defaults.
type DefineParams struct {
	Name      string
	Amount    calc.Calculation
	FromID    int
	ToID      int
	CreatedAt time.Time
}

// Define resolves or creates the schema for p.Name and returns a new node
// whose unset fields are taken from the schema's defaults.
func (b *Builder) Define(p DefineParams) (*Node, error) {
	s, _, err := b.registry.GetOrCreate(model.Schema{
		Name:          p.Name,
		DefaultAmount: p.Amount,
		DefaultFromID: p.FromID,
		DefaultToID:   p.ToID,
	})
	if err != nil {
		return nil, err
	}

	n := &Node{
		Name:      p.Name,
		Schema:    s,
		Amount:    p.Amount,
		FromID:    p.FromID,
		ToID:      p.ToID,
		CreatedAt: p.CreatedAt,
	}
	if n.Amount == nil {
		n.Amount = s.DefaultAmount
	}
	if n.FromID == 0 {
		n.FromID = s.DefaultFromID
	}
	if n.ToID == 0 {
		n.ToID = s.DefaultToID
	}
	return n, nil
}

// Apply is the invocation combinator. Numeric and Calculation arguments
// overwrite the node's amount (an explicit amount wins over the schema
// default and over any Calculation set earlier); Node arguments are
// appended, in order, as children. Any other argument type is recorded as
// an error and surfaced by Err (and at posting time).
//
// Apply mutates and returns the same node so invocations chain:
//
//	sale.Apply(decimal.NewFromInt(100), discount, tax)
func (n *Node) Apply(args ...any) *Node {
	for _, arg := range args {
		switch v := arg.(type) {
		case *Node:
			n.Children = append(n.Children, v)
		case []*Node:
			n.Children = append(n.Children, v...)
		case decimal.Decimal:
			n.Amount = calc.NewLiteral(v)
		case int:
			n.Amount = calc.LiteralFromInt(int64(v))
		case int64:
			n.Amount = calc.LiteralFromInt(v)
		case calc.Calculation:
			n.Amount = v
		default:
			if n.err == nil {
				n.err = fmt.Errorf("node %q: unsupported argument type %T", n.Name, arg)
			}
		}
	}
	return n
}

// Err returns the first error recorded while building this node's subtree.
func (n *Node) Err() error {
	if n.err != nil {
		return n.err
	}
	for _, c := range n.Children {
		if err := c.Err(); err != nil {
			return err
		}
	}
	return nil
}

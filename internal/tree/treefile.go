package tree

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/schemaledger/schemaledger/internal/calc"
	"github.com/schemaledger/schemaledger/internal/model"
)

// NodeSpec is the YAML shape of one node in a tree-definition file.
// Accounts are referenced by name; amounts are calculation descriptors
// ("literal:25.00", "percent:10", "flat:2.50").
type NodeSpec struct {
	Name      string     `yaml:"name"`
	Amount    string     `yaml:"amount,omitempty"`
	From      string     `yaml:"from,omitempty"`
	To        string     `yaml:"to,omitempty"`
	CreatedAt string     `yaml:"created_at,omitempty"` // RFC 3339
	Children  []NodeSpec `yaml:"children,omitempty"`
}

// AccountResolver maps account names to accounts, registering unseen names.
type AccountResolver interface {
	GetOrCreate(name string) model.Account
}

// LoadFile reads a YAML tree definition and builds the node tree.
func (b *Builder) LoadFile(path string, accounts AccountResolver) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tree definition: %w", err)
	}

	var spec NodeSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing tree definition: %w", err)
	}

	return b.FromSpec(spec, accounts)
}

// FromSpec builds a node tree from a parsed NodeSpec.
func (b *Builder) FromSpec(spec NodeSpec, accounts AccountResolver) (*Node, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("tree node without a name")
	}

	p := DefineParams{Name: spec.Name}

	if spec.Amount != "" {
		c, err := calc.Parse(spec.Amount)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", spec.Name, err)
		}
		p.Amount = c
	}
	if spec.From != "" {
		p.FromID = accounts.GetOrCreate(spec.From).ID
	}
	if spec.To != "" {
		p.ToID = accounts.GetOrCreate(spec.To).ID
	}
	if spec.CreatedAt != "" {
		at, err := time.Parse(time.RFC3339, spec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("node %q: parsing created_at: %w", spec.Name, err)
		}
		p.CreatedAt = at
	}

	n, err := b.Define(p)
	if err != nil {
		return nil, err
	}

	for _, childSpec := range spec.Children {
		child, err := b.FromSpec(childSpec, accounts)
		if err != nil {
			return nil, err
		}
		n.Apply(child)
	}
	return n, nil
}

package schema

import (
	"fmt"

	"github.com/schemaledger/schemaledger/internal/model"
)

// RedefinePolicy controls what GetOrCreate does when a name is defined a
// second time with different defaults.
type RedefinePolicy string

const (
	// RedefineError rejects a conflicting redefinition.
	RedefineError RedefinePolicy = "error"
	// RedefineIgnore keeps the stored schema and discards the new defaults
	// (first-write-wins).
	RedefineIgnore RedefinePolicy = "ignore"
	// RedefineOverwrite replaces the stored schema with the new defaults.
	RedefineOverwrite RedefinePolicy = "overwrite"
)

// DuplicateDefinitionError reports a schema name redefined with defaults
// that differ from the stored ones.
type DuplicateDefinitionError struct {
	Name string
}

func (e DuplicateDefinitionError) Error() string {
	return fmt.Sprintf("schema %q already defined with different defaults", e.Name)
}

// Registry is the name->Schema cache. A schema is created once per distinct
// name; later definitions are resolved by the registry's policy. Redefining
// with identical defaults is always a no-op.
type Registry struct {
	schemas map[string]model.Schema
	order   []string
	policy  RedefinePolicy
}

// NewRegistry creates an empty registry with the given policy.
func NewRegistry(policy RedefinePolicy) *Registry {
	return &Registry{
		schemas: make(map[string]model.Schema),
		policy:  policy,
	}
}

// GetOrCreate returns the schema stored under def.Name, creating it from
// def if the name is unseen. The returned bool reports whether a new schema
// was created.
func (r *Registry) GetOrCreate(def model.Schema) (model.Schema, bool, error) {
	stored, ok := r.schemas[def.Name]
	if !ok {
		r.schemas[def.Name] = def
		r.order = append(r.order, def.Name)
		return def, true, nil
	}

	// A bare reference or an identical redefinition is a plain lookup.
	if !def.HasDefaults() || stored.SameDefaults(def) {
		return stored, false, nil
	}

	switch r.policy {
	case RedefineOverwrite:
		r.schemas[def.Name] = def
		return def, false, nil
	case RedefineIgnore:
		return stored, false, nil
	default:
		return model.Schema{}, false, DuplicateDefinitionError{Name: def.Name}
	}
}

// Get returns the schema stored under name.
func (r *Registry) Get(name string) (model.Schema, bool) {
	s, ok := r.schemas[name]
	return s, ok
}

// Len returns the number of registered schemas.
func (r *Registry) Len() int {
	return len(r.schemas)
}

// All returns all schemas in definition order.
func (r *Registry) All() []model.Schema {
	result := make([]model.Schema, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.schemas[name])
	}
	return result
}

package model

import "github.com/schemaledger/schemaledger/internal/calc"

// Schema is a named, reusable transaction template: the defaults a node
// takes when the caller does not override them. Schemas are immutable once
// registered.
type Schema struct {
	Name          string           // unique
	DefaultAmount calc.Calculation // nil = no default
	DefaultFromID int              // 0 = no default
	DefaultToID   int              // 0 = no default
}

// HasDefaults reports whether the schema carries any default at all. A
// definition without defaults is a bare reference to an existing name.
func (s Schema) HasDefaults() bool {
	return s.DefaultAmount != nil || s.DefaultFromID != 0 || s.DefaultToID != 0
}

// SameDefaults reports whether two schemas carry identical defaults.
// Amounts are compared by descriptor, the persisted canonical form.
func (s Schema) SameDefaults(other Schema) bool {
	if s.DefaultFromID != other.DefaultFromID || s.DefaultToID != other.DefaultToID {
		return false
	}
	if (s.DefaultAmount == nil) != (other.DefaultAmount == nil) {
		return false
	}
	if s.DefaultAmount == nil {
		return true
	}
	return s.DefaultAmount.Descriptor() == other.DefaultAmount.Descriptor()
}

package schema

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/schemaledger/schemaledger/internal/calc"
	"github.com/schemaledger/schemaledger/internal/model"
)

const (
	numFields  = 4
	colName    = 0
	colAmount  = 1
	colFromID  = 2
	colToID    = 3
	schemaFile = "schemas.csv"
)

// ReadSchemas reads schemas.csv. Default amounts are stored as structured
// calculation descriptors.
func ReadSchemas(r io.Reader) ([]model.Schema, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading schemas CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var schemas []model.Schema
	for i, rec := range records[1:] {
		s, err := UnmarshalSchema(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		schemas = append(schemas, s)
	}
	return schemas, nil
}

// WriteSchemas writes schemas.csv (including header).
func WriteSchemas(w io.Writer, schemas []model.Schema) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"name", "default_amount", "default_from_id", "default_to_id"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, s := range schemas {
		if err := cw.Write(MarshalSchema(s)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalSchema converts a Schema to a CSV row.
func MarshalSchema(s model.Schema) []string {
	row := make([]string, numFields)
	row[colName] = s.Name
	if s.DefaultAmount != nil {
		row[colAmount] = s.DefaultAmount.Descriptor()
	}
	if s.DefaultFromID != 0 {
		row[colFromID] = strconv.Itoa(s.DefaultFromID)
	}
	if s.DefaultToID != 0 {
		row[colToID] = strconv.Itoa(s.DefaultToID)
	}
	return row
}

// UnmarshalSchema converts a CSV row to a Schema.
func UnmarshalSchema(record []string) (model.Schema, error) {
	if len(record) != numFields {
		return model.Schema{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	var amount calc.Calculation
	if record[colAmount] != "" {
		var err error
		amount, err = calc.Parse(record[colAmount])
		if err != nil {
			return model.Schema{}, fmt.Errorf("parsing default_amount: %w", err)
		}
	}

	var fromID, toID int
	var err error
	if record[colFromID] != "" {
		fromID, err = strconv.Atoi(record[colFromID])
		if err != nil {
			return model.Schema{}, fmt.Errorf("parsing default_from_id %q: %w", record[colFromID], err)
		}
	}
	if record[colToID] != "" {
		toID, err = strconv.Atoi(record[colToID])
		if err != nil {
			return model.Schema{}, fmt.Errorf("parsing default_to_id %q: %w", record[colToID], err)
		}
	}

	return model.Schema{
		Name:          record[colName],
		DefaultAmount: amount,
		DefaultFromID: fromID,
		DefaultToID:   toID,
	}, nil
}

// Load reads schemas.csv from a project root into a new registry. A missing
// file yields an empty registry.
func Load(root string, policy RedefinePolicy) (*Registry, error) {
	r := NewRegistry(policy)

	f, err := os.Open(filepath.Join(root, schemaFile))
	if errors.Is(err, fs.ErrNotExist) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening schemas: %w", err)
	}
	defer f.Close()

	schemas, err := ReadSchemas(f)
	if err != nil {
		return nil, fmt.Errorf("reading schemas: %w", err)
	}
	for _, s := range schemas {
		if _, _, err := r.GetOrCreate(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Save writes the registry to <root>/schemas.csv.
func (r *Registry) Save(root string) error {
	f, err := os.Create(filepath.Join(root, schemaFile))
	if err != nil {
		return fmt.Errorf("creating schemas file: %w", err)
	}
	defer f.Close()

	if err := WriteSchemas(f, r.All()); err != nil {
		return fmt.Errorf("writing schemas: %w", err)
	}
	return nil
}

package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/schemaledger/schemaledger/internal/model"
)

// Header is the CSV header for ledger.csv.
const Header = "id,posting_id,created_at,amount,from_id,to_id"

const (
	numFields    = 6
	colID        = 0
	colPostingID = 1
	colCreatedAt = 2
	colAmount    = 3
	colFromID    = 4
	colToID      = 5
)

// ReadEntries reads all entries from a ledger.csv reader.
func ReadEntries(r io.Reader) ([]model.Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var entries []model.Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// AppendEntries appends entries to an existing ledger.csv writer (no header).
func AppendEntries(w io.Writer, entries []model.Entry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// WriteEntries writes entries to a ledger.csv writer (including header).
func WriteEntries(w io.Writer, entries []model.Entry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	cw.Flush()

	return AppendEntries(w, entries)
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e model.Entry) []string {
	row := make([]string, numFields)
	row[colID] = e.ID
	row[colPostingID] = e.PostingID
	row[colCreatedAt] = e.CreatedAt.Format(time.RFC3339)
	row[colAmount] = e.Amount.StringFixed(2)
	row[colFromID] = strconv.Itoa(e.FromID)
	row[colToID] = strconv.Itoa(e.ToID)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (model.Entry, error) {
	if len(record) != numFields {
		return model.Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	createdAt, err := time.Parse(time.RFC3339, record[colCreatedAt])
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing created_at %q: %w", record[colCreatedAt], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	fromID, err := strconv.Atoi(record[colFromID])
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing from_id %q: %w", record[colFromID], err)
	}

	toID, err := strconv.Atoi(record[colToID])
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing to_id %q: %w", record[colToID], err)
	}

	return model.Entry{
		ID:        record[colID],
		PostingID: record[colPostingID],
		CreatedAt: createdAt,
		Amount:    amount,
		FromID:    fromID,
		ToID:      toID,
	}, nil
}

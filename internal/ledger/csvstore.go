package ledger

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/schemaledger/schemaledger/internal/model"
)

const ledgerFile = "ledger.csv"

// CSVStore persists entries to <root>/ledger.csv. The file is only ever
// appended to; a batch is written with a single flush so readers serialized
// by the store's lock see whole postings.
type CSVStore struct {
	mu   sync.Mutex
	root string
}

// NewCSVStore creates a CSVStore rooted at a project directory.
func NewCSVStore(root string) *CSVStore {
	return &CSVStore{root: root}
}

// Path returns the ledger file path.
func (s *CSVStore) Path() string {
	return filepath.Join(s.root, ledgerFile)
}

// AppendAll appends a batch of entries, creating the file and header if
// needed.
func (s *CSVStore) AppendAll(_ context.Context, entries []model.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Path()
	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendEntries(f, entries); err != nil {
		return fmt.Errorf("appending entries: %w", err)
	}
	return nil
}

// All returns every entry in insertion order. A missing file is an empty
// ledger.
func (s *CSVStore) All(_ context.Context) ([]model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readAll()
}

// ForAccount returns entries referencing the account on either side.
func (s *CSVStore) ForAccount(_ context.Context, accountID int) ([]model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readAll()
	if err != nil {
		return nil, err
	}

	var result []model.Entry
	for _, e := range entries {
		if e.FromID == accountID || e.ToID == accountID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (s *CSVStore) readAll() ([]model.Entry, error) {
	f, err := os.Open(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	entries, err := ReadEntries(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	return entries, nil
}

var _ Store = (*CSVStore)(nil)

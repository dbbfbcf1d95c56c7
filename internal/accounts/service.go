package accounts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schemaledger/schemaledger/internal/model"
)

// Service provides in-memory lookup over the registered accounts.
type Service struct {
	accounts []model.Account
	byID     map[int]model.Account
	byName   map[string]model.Account
	nextID   int
}

// NewService creates a Service from a slice of accounts.
func NewService(accounts []model.Account) *Service {
	s := &Service{
		byID:   make(map[int]model.Account, len(accounts)),
		byName: make(map[string]model.Account, len(accounts)),
		nextID: 1,
	}
	for _, a := range accounts {
		s.add(a)
	}
	return s
}

func (s *Service) add(a model.Account) {
	s.accounts = append(s.accounts, a)
	s.byID[a.ID] = a
	s.byName[a.Name] = a
	if a.ID >= s.nextID {
		s.nextID = a.ID + 1
	}
}

// Load reads accounts.csv from a project root and returns a Service.
// A missing file yields an empty Service.
func Load(root string) (*Service, error) {
	path := filepath.Join(root, "accounts.csv")
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return NewService(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading accounts: %w", err)
	}
	return NewService(accts), nil
}

// All returns all accounts in registration order.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Get returns an account by ID.
func (s *Service) Get(id int) (model.Account, bool) {
	a, ok := s.byID[id]
	return a, ok
}

// ByName returns an account by its unique name.
func (s *Service) ByName(name string) (model.Account, bool) {
	a, ok := s.byName[name]
	return a, ok
}

// Exists reports whether an account ID exists.
func (s *Service) Exists(id int) bool {
	_, ok := s.byID[id]
	return ok
}

// GetOrCreate returns the account named name, registering a new one with
// the next free ID if the name is unseen.
func (s *Service) GetOrCreate(name string) model.Account {
	if a, ok := s.byName[name]; ok {
		return a
	}
	a := model.Account{ID: s.nextID, Name: name}
	s.add(a)
	return a
}

// EntryChecker reports whether any ledger entry references an account.
type EntryChecker interface {
	References(accountID int) (bool, error)
}

// Remove deletes an account. It refuses while ledger entries still
// reference the account.
func (s *Service) Remove(id int, entries EntryChecker) error {
	a, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("unknown account %d", id)
	}

	referenced, err := entries.References(id)
	if err != nil {
		return fmt.Errorf("checking ledger references: %w", err)
	}
	if referenced {
		return fmt.Errorf("account %q is referenced by ledger entries", a.Name)
	}

	delete(s.byID, id)
	delete(s.byName, a.Name)
	for i, acct := range s.accounts {
		if acct.ID == id {
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			break
		}
	}
	return nil
}

// Save writes the accounts to <root>/accounts.csv.
func (s *Service) Save(root string) error {
	path := filepath.Join(root, "accounts.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing accounts: %w", err)
	}
	return nil
}

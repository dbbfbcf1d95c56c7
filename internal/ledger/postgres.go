package ledger

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the "postgres" driver.
	_ "github.com/lib/pq"

	"github.com/schemaledger/schemaledger/internal/model"
)

// PostgresStore persists entries in a ledger_entries table. A batch append
// is one database transaction, so a posted tree commits atomically.
//
// Expected schema:
//
//	CREATE TABLE ledger_entries (
//	    seq        BIGSERIAL,
//	    id         TEXT PRIMARY KEY,
//	    posting_id TEXT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL,
//	    amount     NUMERIC(10,2) NOT NULL CHECK (amount >= 0),
//	    from_id    INTEGER NOT NULL,
//	    to_id      INTEGER NOT NULL
//	);
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgresStore over an open database handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgres opens a database handle for the given DSN and verifies the
// connection.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	return db, nil
}

// AppendAll inserts a batch of entries in a single transaction.
func (p *PostgresStore) AppendAll(ctx context.Context, entries []model.Entry) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `INSERT INTO ledger_entries (id, posting_id, created_at, amount, from_id, to_id)
	VALUES ($1, $2, $3, $4, $5, $6)`

	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, query,
			e.ID, e.PostingID, e.CreatedAt, e.Amount, e.FromID, e.ToID); err != nil {
			return fmt.Errorf("inserting entry %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing entries: %w", err)
	}
	return nil
}

// All returns every entry in insertion order.
func (p *PostgresStore) All(ctx context.Context) ([]model.Entry, error) {
	const query = `SELECT id, posting_id, created_at, amount, from_id, to_id
	FROM ledger_entries ORDER BY seq`

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ForAccount returns entries referencing the account on either side.
func (p *PostgresStore) ForAccount(ctx context.Context, accountID int) ([]model.Entry, error) {
	const query = `SELECT id, posting_id, created_at, amount, from_id, to_id
	FROM ledger_entries WHERE from_id = $1 OR to_id = $1 ORDER BY seq`

	rows, err := p.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("querying entries for account %d: %w", accountID, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]model.Entry, error) {
	var entries []model.Entry
	for rows.Next() {
		var e model.Entry
		if err := rows.Scan(&e.ID, &e.PostingID, &e.CreatedAt, &e.Amount, &e.FromID, &e.ToID); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

var _ Store = (*PostgresStore)(nil)

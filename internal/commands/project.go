package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/schemaledger/schemaledger/internal/accounts"
	"github.com/schemaledger/schemaledger/internal/config"
	"github.com/schemaledger/schemaledger/internal/events"
	"github.com/schemaledger/schemaledger/internal/ledger"
	"github.com/schemaledger/schemaledger/internal/schema"
)

const configFile = "ledger.yaml"

// project holds the services loaded from a project directory.
type project struct {
	root     string
	cfg      *config.Config
	accounts *accounts.Service
	schemas  *schema.Registry
	store    ledger.Store
}

// loadProject reads config, accounts, schemas, and opens the configured
// ledger store.
func loadProject(ctx context.Context, root string) (*project, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(absRoot, configFile))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	accts, err := accounts.Load(absRoot)
	if err != nil {
		return nil, fmt.Errorf("loading accounts: %w", err)
	}

	registry, err := schema.Load(absRoot, redefinePolicy(cfg))
	if err != nil {
		return nil, fmt.Errorf("loading schemas: %w", err)
	}

	store, err := openStore(ctx, absRoot, cfg)
	if err != nil {
		return nil, err
	}

	return &project{
		root:     absRoot,
		cfg:      cfg,
		accounts: accts,
		schemas:  registry,
		store:    store,
	}, nil
}

func redefinePolicy(cfg *config.Config) schema.RedefinePolicy {
	switch cfg.Schemas.Redefine {
	case "ignore":
		return schema.RedefineIgnore
	case "overwrite":
		return schema.RedefineOverwrite
	default:
		return schema.RedefineError
	}
}

func openStore(ctx context.Context, root string, cfg *config.Config) (ledger.Store, error) {
	switch cfg.Storage.Backend {
	case "", "csv":
		return ledger.NewCSVStore(root), nil
	case "memory":
		return ledger.NewMemoryStore(), nil
	case "postgres":
		dsn, err := cfg.PostgresDSN()
		if err != nil {
			return nil, err
		}
		db, err := ledger.OpenPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return ledger.NewPostgresStore(db), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// publisher returns the configured event publisher, or nil when events are
// not configured.
func (p *project) publisher() events.Publisher {
	if len(p.cfg.Events.Brokers) == 0 {
		return nil
	}
	topic := p.cfg.Events.Topic
	if topic == "" {
		topic = "postings"
	}
	return events.NewKafkaPublisher(p.cfg.Events.Brokers, topic)
}

package core

import (
	"context"
	"fmt"
	"recruitledger/internal/config"
	"recruitledger/internal/infra/persistence/memory"
	"recruitledger/internal/infra/persistence/postgres"
	"recruitledger/internal/infra/persistence/sqlite"
	"recruitledger/pkg/domain"
)

// StorageDriver identifies a concrete persistent storage implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
)

// OpenPersistentStore builds the configured backend and initialises its
// schema. An empty driver selects sqlite.
func OpenPersistentStore(ctx context.Context, cfg config.StorageConfig) (domain.PersistentStore, error) {
	driver := StorageDriver(cfg.Driver)
	if driver == "" {
		driver = StorageSQLite
	}
	var (
		store domain.PersistentStore
		err   error
	)
	switch driver {
	case StorageMemory:
		store = memory.NewStore()
	case StorageSQLite:
		store, err = sqlite.NewStore(cfg.SQLitePath)
	case StoragePostgres:
		store, err = postgres.NewStore(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", driver, err)
	}
	if err := store.Init(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("init %s store: %w", driver, err)
	}
	return store, nil
}

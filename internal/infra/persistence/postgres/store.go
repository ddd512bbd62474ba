// Package postgres opens the SQL document store on Postgres through the pgx
// database/sql driver. Payloads are stored as JSONB.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"recruitledger/internal/infra/persistence/sqlstore"
	"recruitledger/pkg/domain"
	"strconv"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

// Compile-time contract assertion ensuring the store satisfies the domain interface.
var _ domain.PersistentStore = (*Store)(nil)

const (
	defaultDriver = "pgx"
	// DefaultDSN is used when no DSN is configured.
	DefaultDSN = "postgres://localhost/recruitledger?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Dialect describes Postgres: JSONB payloads and $n placeholders.
var Dialect = sqlstore.Dialect{
	Name:        "postgres",
	PayloadType: "JSONB",
	Placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
}

// Store is a Postgres-backed document store.
type Store struct {
	*sqlstore.Store
}

// NewStore opens and pings a Postgres database using dsn (falls back to
// DefaultDSN). The returned store still requires Init.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{Store: sqlstore.New(db, Dialect)}, nil
}

// OverrideSQLOpen swaps the sqlOpen function for tests and returns a restore function.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := sqlOpen
	sqlOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		sqlOpen = prev
	}
}

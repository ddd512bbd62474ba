// Package sqlite opens the SQL document store on an embedded SQLite file
// using the pure Go modernc.org/sqlite driver.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"recruitledger/internal/infra/persistence/sqlstore"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// DefaultPath is used when no database path is configured.
const DefaultPath = "recruiting.sqlite"

// Dialect describes SQLite: BLOB payloads and positional ? placeholders.
var Dialect = sqlstore.Dialect{
	Name:        "sqlite",
	PayloadType: "BLOB",
	Placeholder: func(int) string { return "?" },
}

// Store is a SQLite-backed document store.
type Store struct {
	*sqlstore.Store
	path string
}

// NewStore opens (creating if needed) the database file at path. The
// returned store still requires Init.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection serialises writers and keeps transactions from
	// contending on the file lock.
	db.SetMaxOpenConns(1)
	return &Store{Store: sqlstore.New(db, Dialect), path: path}, nil
}

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }

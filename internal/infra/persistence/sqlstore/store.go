// Package sqlstore implements the document store contract over database/sql.
// Each collection maps to one table holding the JSON payload alongside one
// nullable TEXT column per declared index. Dialect packages (sqlite, postgres)
// supply the driver and the SQL differences.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"recruitledger/pkg/domain"
	"strings"
	"sync"
)

// Compile-time contract assertion ensuring the store satisfies the domain interface.
var _ domain.PersistentStore = (*Store)(nil)

// Dialect captures the SQL differences between supported engines.
type Dialect struct {
	// Name is reported in errors and logs.
	Name string
	// PayloadType is the column type used for JSON payloads.
	PayloadType string
	// Placeholder renders the n-th (1-based) bind parameter.
	Placeholder func(n int) string
}

// Store is a database/sql backed document store.
type Store struct {
	db      *sql.DB
	dialect Dialect
	mu      sync.RWMutex
	ready   bool
}

// New wraps an open database handle. Init must be called before use.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Dialect returns the configured dialect.
func (s *Store) Dialect() Dialect { return s.dialect }

// Init creates one table per collection and its indexes when absent.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return domain.ErrStorageUnavailable
	}
	for _, spec := range domain.Schema() {
		for _, stmt := range s.ddl(spec) {
			if _, err := s.db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("%s: create %s: %w", s.dialect.Name, spec.Name, err)
			}
		}
	}
	s.ready = true
	return nil
}

func (s *Store) ddl(spec domain.CollectionSpec) []string {
	cols := []string{
		"record_id TEXT PRIMARY KEY",
		fmt.Sprintf("payload %s NOT NULL", s.dialect.PayloadType),
	}
	for _, idx := range spec.Indexes {
		cols = append(cols, idx.Field+" TEXT")
	}
	stmts := []string{fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", spec.Name, strings.Join(cols, ", "))}
	for _, idx := range spec.Indexes {
		unique := ""
		if idx.Unique {
			unique = "UNIQUE "
		}
		stmts = append(stmts, fmt.Sprintf("CREATE %sINDEX IF NOT EXISTS idx_%s_%s ON %s (%s)",
			unique, spec.Name, idx.Field, spec.Name, idx.Field))
	}
	return stmts
}

// Close closes the database handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = false
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// RunInTransaction executes fn inside a database transaction, committing when fn returns nil.
func (s *Store) RunInTransaction(ctx context.Context, fn func(domain.Transaction) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return domain.ErrStorageUnavailable
	}
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", s.dialect.Name, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = sqlTx.Rollback()
		}
	}()
	if err := fn(&transaction{q: sqlTx, dialect: s.dialect}); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", s.dialect.Name, err)
	}
	committed = true
	return nil
}

// Get reads one document outside any transaction.
func (s *Store) Get(ctx context.Context, c domain.Collection, id string) (domain.Document, bool, error) {
	var (
		doc domain.Document
		ok  bool
	)
	err := s.read(func(q queryer) error {
		var err error
		doc, ok, err = get(ctx, q, s.dialect, c, id)
		return err
	})
	return doc, ok, err
}

// GetAll reads every document of a collection.
func (s *Store) GetAll(ctx context.Context, c domain.Collection) ([]domain.Document, error) {
	var docs []domain.Document
	err := s.read(func(q queryer) error {
		var err error
		docs, err = getAll(ctx, q, c)
		return err
	})
	return docs, err
}

// GetByIndex reads the documents whose index field equals value.
func (s *Store) GetByIndex(ctx context.Context, c domain.Collection, field, value string) ([]domain.Document, error) {
	var docs []domain.Document
	err := s.read(func(q queryer) error {
		var err error
		docs, err = getByIndex(ctx, q, s.dialect, c, field, value)
		return err
	})
	return docs, err
}

// Put stores doc in a single-operation transaction.
func (s *Store) Put(ctx context.Context, c domain.Collection, doc domain.Document) error {
	return s.RunInTransaction(ctx, func(tx domain.Transaction) error {
		return tx.Put(ctx, c, doc)
	})
}

// Delete removes a document in a single-operation transaction.
func (s *Store) Delete(ctx context.Context, c domain.Collection, id string) error {
	return s.RunInTransaction(ctx, func(tx domain.Transaction) error {
		return tx.Delete(ctx, c, id)
	})
}

func (s *Store) read(fn func(queryer) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return domain.ErrStorageUnavailable
	}
	return fn(s.db)
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type transaction struct {
	q       queryer
	dialect Dialect
}

func (tx *transaction) Get(ctx context.Context, c domain.Collection, id string) (domain.Document, bool, error) {
	return get(ctx, tx.q, tx.dialect, c, id)
}

func (tx *transaction) GetAll(ctx context.Context, c domain.Collection) ([]domain.Document, error) {
	return getAll(ctx, tx.q, c)
}

func (tx *transaction) GetByIndex(ctx context.Context, c domain.Collection, field, value string) ([]domain.Document, error) {
	return getByIndex(ctx, tx.q, tx.dialect, c, field, value)
}

func (tx *transaction) Put(ctx context.Context, c domain.Collection, doc domain.Document) error {
	spec, err := lookup(c)
	if err != nil {
		return err
	}
	if doc.ID == "" {
		return fmt.Errorf("put %s: document id required", c)
	}
	ph := tx.dialect.Placeholder
	for _, field := range spec.UniqueIndexes() {
		value := doc.Indexes[field]
		if value == "" {
			continue
		}
		query := fmt.Sprintf("SELECT record_id FROM %s WHERE %s = %s AND record_id <> %s LIMIT 1", c, field, ph(1), ph(2))
		ids, err := scanIDs(ctx, tx.q, query, value, doc.ID)
		if err != nil {
			return fmt.Errorf("%s: check %s.%s: %w", tx.dialect.Name, c, field, err)
		}
		if len(ids) > 0 {
			return &domain.ConflictError{Entity: c, Field: field, Value: value, ExistingID: ids[0]}
		}
	}

	cols := []string{"record_id", "payload"}
	args := []any{doc.ID, doc.Payload}
	updates := []string{"payload = excluded.payload"}
	for _, idx := range spec.Indexes {
		cols = append(cols, idx.Field)
		args = append(args, nullable(doc.Indexes[idx.Field]))
		updates = append(updates, fmt.Sprintf("%s = excluded.%s", idx.Field, idx.Field))
	}
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = ph(i + 1)
	}
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (record_id) DO UPDATE SET %s",
		c, strings.Join(cols, ", "), strings.Join(placeholders, ", "), strings.Join(updates, ", "))
	if _, err := tx.q.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("%s: upsert %s: %w", tx.dialect.Name, c, err)
	}
	return nil
}

func (tx *transaction) Delete(ctx context.Context, c domain.Collection, id string) error {
	if _, err := lookup(c); err != nil {
		return err
	}
	stmt := fmt.Sprintf("DELETE FROM %s WHERE record_id = %s", c, tx.dialect.Placeholder(1))
	if _, err := tx.q.ExecContext(ctx, stmt, id); err != nil {
		return fmt.Errorf("%s: delete %s: %w", tx.dialect.Name, c, err)
	}
	return nil
}

func get(ctx context.Context, q queryer, d Dialect, c domain.Collection, id string) (domain.Document, bool, error) {
	spec, err := lookup(c)
	if err != nil {
		return domain.Document{}, false, err
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE record_id = %s", selectColumns(spec), c, d.Placeholder(1))
	docs, err := scanDocuments(ctx, q, spec, query, id)
	if err != nil {
		return domain.Document{}, false, fmt.Errorf("%s: get %s: %w", d.Name, c, err)
	}
	if len(docs) == 0 {
		return domain.Document{}, false, nil
	}
	return docs[0], true, nil
}

func getAll(ctx context.Context, q queryer, c domain.Collection) ([]domain.Document, error) {
	spec, err := lookup(c)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT %s FROM %s", selectColumns(spec), c)
	docs, err := scanDocuments(ctx, q, spec, query)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c, err)
	}
	return docs, nil
}

func getByIndex(ctx context.Context, q queryer, d Dialect, c domain.Collection, field, value string) ([]domain.Document, error) {
	spec, err := lookup(c)
	if err != nil {
		return nil, err
	}
	if !spec.HasIndex(field) {
		return nil, fmt.Errorf("%s has no index on %q", c, field)
	}
	if value == "" {
		return nil, nil
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = %s", selectColumns(spec), c, field, d.Placeholder(1))
	docs, err := scanDocuments(ctx, q, spec, query, value)
	if err != nil {
		return nil, fmt.Errorf("%s: query %s by %s: %w", d.Name, c, field, err)
	}
	return docs, nil
}

func lookup(c domain.Collection) (domain.CollectionSpec, error) {
	spec, ok := domain.LookupCollection(c)
	if !ok {
		return domain.CollectionSpec{}, fmt.Errorf("%w: %q", domain.ErrUnknownCollection, c)
	}
	return spec, nil
}

func selectColumns(spec domain.CollectionSpec) string {
	cols := []string{"record_id", "payload"}
	for _, idx := range spec.Indexes {
		cols = append(cols, idx.Field)
	}
	return strings.Join(cols, ", ")
}

func scanDocuments(ctx context.Context, q queryer, spec domain.CollectionSpec, query string, args ...any) (docs []domain.Document, retErr error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && retErr == nil {
			retErr = cerr
		}
	}()
	for rows.Next() {
		var (
			doc     domain.Document
			indexes = make([]sql.NullString, len(spec.Indexes))
		)
		dest := []any{&doc.ID, &doc.Payload}
		for i := range indexes {
			dest = append(dest, &indexes[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if len(spec.Indexes) > 0 {
			doc.Indexes = make(map[string]string, len(spec.Indexes))
			for i, idx := range spec.Indexes {
				if indexes[i].Valid {
					doc.Indexes[idx.Field] = indexes[i].String
				}
			}
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate: %w", err)
	}
	return docs, nil
}

func scanIDs(ctx context.Context, q queryer, query string, args ...any) ([]string, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func nullable(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

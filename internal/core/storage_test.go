package core_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"recruitledger/internal/config"
	"recruitledger/internal/core"
	"recruitledger/internal/infra/persistence/memory"
	"recruitledger/internal/infra/persistence/postgres"
	"recruitledger/internal/infra/persistence/postgres/testutil"
	"recruitledger/internal/infra/persistence/sqlite"
	"recruitledger/pkg/domain"
	"strings"
	"testing"
)

func TestOpenPersistentStore_Memory(t *testing.T) {
	store, err := core.OpenPersistentStore(context.Background(), config.StorageConfig{Driver: "memory"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if _, ok := store.(*memory.Store); !ok {
		t.Fatalf("expected *memory.Store, got %T", store)
	}
	if _, err := store.GetAll(context.Background(), domain.CollectionSchools); err != nil {
		t.Fatalf("store should be initialised: %v", err)
	}
}

func TestOpenPersistentStore_DefaultSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.sqlite")
	store, err := core.OpenPersistentStore(context.Background(), config.StorageConfig{SQLitePath: path})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sqliteStore, ok := store.(*sqlite.Store)
	if !ok {
		t.Fatalf("expected *sqlite.Store, got %T", store)
	}
	if sqliteStore.Path() != path {
		t.Fatalf("expected path %s, got %s", path, sqliteStore.Path())
	}

	svc := core.NewService(store)
	school, err := svc.CreateSchool(context.Background(), domain.SchoolInput{Name: "Durable"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := core.OpenPersistentStore(context.Background(), config.StorageConfig{Driver: "sqlite", SQLitePath: path})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })
	got, ok, err := core.NewService(reopened).GetSchool(context.Background(), school.ID)
	if err != nil || !ok || got.Name != "Durable" {
		t.Fatalf("school not persisted: %+v ok=%v err=%v", got, ok, err)
	}
}

func TestOpenPersistentStore_UnknownDriver(t *testing.T) {
	_, err := core.OpenPersistentStore(context.Background(), config.StorageConfig{Driver: "cassandra"})
	if err == nil || !strings.Contains(err.Error(), "unknown storage driver") {
		t.Fatalf("expected unknown driver error, got %v", err)
	}
}

func TestOpenPersistentStore_PostgresStub(t *testing.T) {
	db, conn := testutil.NewStubDB()
	var gotDSN string
	restore := postgres.OverrideSQLOpen(func(_, dsn string) (*sql.DB, error) {
		gotDSN = dsn
		return db, nil
	})
	t.Cleanup(restore)

	store, err := core.OpenPersistentStore(context.Background(), config.StorageConfig{Driver: "postgres", PostgresDSN: "postgres://ledger@db/recruiting"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if _, ok := store.(*postgres.Store); !ok {
		t.Fatalf("expected *postgres.Store, got %T", store)
	}
	if gotDSN != "postgres://ledger@db/recruiting" {
		t.Fatalf("dsn not forwarded, got %q", gotDSN)
	}
	if len(conn.Execs) == 0 {
		t.Fatal("expected Init to create tables")
	}
}

func TestOpenPersistentStore_SQLiteBadPath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("not a directory"), 0o600); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	_, err := core.OpenPersistentStore(context.Background(), config.StorageConfig{Driver: "sqlite", SQLitePath: filepath.Join(blocker, "ledger.sqlite")})
	if err == nil || !strings.Contains(err.Error(), "sqlite store") {
		t.Fatalf("expected sqlite open failure, got %v", err)
	}
}

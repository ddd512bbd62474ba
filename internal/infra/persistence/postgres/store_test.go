package postgres

import (
	"context"
	"database/sql"
	"errors"
	"recruitledger/internal/infra/persistence/postgres/testutil"
	"recruitledger/pkg/domain"
	"strings"
	"testing"
)

func openStub(t *testing.T) (*Store, *testutil.StubConn) {
	t.Helper()
	db, conn := testutil.NewStubDB()
	restore := OverrideSQLOpen(func(driverName, dsn string) (*sql.DB, error) {
		if driverName != defaultDriver {
			t.Fatalf("unexpected driver %q", driverName)
		}
		return db, nil
	})
	t.Cleanup(restore)
	store, err := NewStore(context.Background(), "")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store, conn
}

func TestInitCreatesJSONBTablesAndIndexes(t *testing.T) {
	store, conn := openStub(t)
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	var sawPayload, sawUnique bool
	for _, stmt := range conn.Execs {
		if strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS people") && strings.Contains(stmt, "payload JSONB NOT NULL") {
			sawPayload = true
		}
		if strings.Contains(stmt, "CREATE UNIQUE INDEX IF NOT EXISTS idx_player_ratings_player_id") {
			sawUnique = true
		}
	}
	if !sawPayload || !sawUnique {
		t.Fatalf("expected JSONB table and unique rating index, got %v", conn.Execs)
	}
}

func TestOperationsBeforeInitAreUnavailable(t *testing.T) {
	store, _ := openStub(t)
	if _, _, err := store.Get(context.Background(), domain.CollectionSchools, "x"); !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestPutGetUsesDollarPlaceholders(t *testing.T) {
	store, conn := openStub(t)
	ctx := context.Background()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	doc := domain.Document{
		ID:      "p1",
		Indexes: map[string]string{domain.IndexType: "player", domain.IndexSchoolID: "s1"},
		Payload: []byte(`{"record_id":"p1"}`),
	}
	if err := store.Put(ctx, domain.CollectionPeople, doc); err != nil {
		t.Fatalf("Put: %v", err)
	}
	last := conn.Execs[len(conn.Execs)-1]
	if !strings.Contains(last, "VALUES ($1, $2, $3, $4, $5)") {
		t.Fatalf("expected positional placeholders, got %s", last)
	}
	got, ok, err := store.Get(ctx, domain.CollectionPeople, "p1")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if string(got.Payload) != string(doc.Payload) {
		t.Fatalf("payload mismatch: %s", got.Payload)
	}
	if got.Indexes[domain.IndexSchoolID] != "s1" || got.Indexes[domain.IndexAssignedCoachID] != "" {
		t.Fatalf("unexpected indexes %v", got.Indexes)
	}
	bySchool, err := store.GetByIndex(ctx, domain.CollectionPeople, domain.IndexSchoolID, "s1")
	if err != nil || len(bySchool) != 1 {
		t.Fatalf("GetByIndex: %v %v", bySchool, err)
	}
}

func TestPutRejectsDuplicateRatingPerPlayer(t *testing.T) {
	store, _ := openStub(t)
	ctx := context.Background()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	first := domain.Document{ID: "r1", Indexes: map[string]string{domain.IndexPlayerID: "p1"}, Payload: []byte(`{}`)}
	if err := store.Put(ctx, domain.CollectionPlayerRatings, first); err != nil {
		t.Fatalf("Put first: %v", err)
	}
	second := domain.Document{ID: "r2", Indexes: map[string]string{domain.IndexPlayerID: "p1"}, Payload: []byte(`{}`)}
	err := store.Put(ctx, domain.CollectionPlayerRatings, second)
	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) || conflict.ExistingID != "r1" {
		t.Fatalf("expected conflict with r1, got %v", err)
	}
}

func TestNewStorePingFailure(t *testing.T) {
	db, conn := testutil.NewStubDB()
	conn.FailExec = true
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()
	if _, err := NewStore(context.Background(), "postgres://example"); err == nil || !strings.Contains(err.Error(), "ping postgres") {
		t.Fatalf("expected ping failure, got %v", err)
	}
}

func TestNewStoreOpenFailure(t *testing.T) {
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return nil, errors.New("boom") })
	defer restore()
	if _, err := NewStore(context.Background(), ""); err == nil || !strings.Contains(err.Error(), "open postgres") {
		t.Fatalf("expected open failure, got %v", err)
	}
}

func TestRunInTransactionCommitFailure(t *testing.T) {
	store, conn := openStub(t)
	ctx := context.Background()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	conn.FailCommit = true
	err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		return tx.Put(ctx, domain.CollectionSchools, domain.Document{ID: "s1", Payload: []byte(`{}`)})
	})
	if err == nil || !strings.Contains(err.Error(), "commit") {
		t.Fatalf("expected commit failure, got %v", err)
	}
}

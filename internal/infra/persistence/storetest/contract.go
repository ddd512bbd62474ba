// Package storetest holds the behavioural contract every domain.PersistentStore
// backend must satisfy. Backend packages run it from their own tests.
package storetest

import (
	"context"
	"errors"
	"recruitledger/pkg/domain"
	"sort"
	"testing"
)

// Factory returns a fresh, uninitialised store.
type Factory func(t *testing.T) domain.PersistentStore

// Run executes the contract suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Helper()
	cases := []struct {
		name string
		fn   func(*testing.T, domain.PersistentStore)
	}{
		{"UnavailableBeforeInit", testUnavailableBeforeInit},
		{"InitIsIdempotent", testInitIsIdempotent},
		{"PutGetReplace", testPutGetReplace},
		{"GetAllAndIndex", testGetAllAndIndex},
		{"DeleteMissingIsNoop", testDeleteMissingIsNoop},
		{"UniqueIndex", testUniqueIndex},
		{"TransactionRollback", testTransactionRollback},
		{"TransactionCommit", testTransactionCommit},
		{"UnknownCollection", testUnknownCollection},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newStore(t)
			t.Cleanup(func() { _ = store.Close() })
			tc.fn(t, store)
		})
	}
}

func mustInit(t *testing.T, store domain.PersistentStore) {
	t.Helper()
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
}

func task(id, personID, status string) domain.Document {
	return domain.Document{
		ID:      id,
		Indexes: map[string]string{domain.IndexPersonID: personID, domain.IndexStatus: status},
		Payload: []byte(`{"record_id":"` + id + `"}`),
	}
}

func ids(docs []domain.Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.ID)
	}
	sort.Strings(out)
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func testUnavailableBeforeInit(t *testing.T, store domain.PersistentStore) {
	ctx := context.Background()
	if _, _, err := store.Get(ctx, domain.CollectionTasks, "t1"); !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("get before init: expected ErrStorageUnavailable, got %v", err)
	}
	if err := store.Put(ctx, domain.CollectionTasks, task("t1", "p1", "Complete")); !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("put before init: expected ErrStorageUnavailable, got %v", err)
	}
	err := store.RunInTransaction(ctx, func(domain.Transaction) error { return nil })
	if !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("transaction before init: expected ErrStorageUnavailable, got %v", err)
	}
}

func testInitIsIdempotent(t *testing.T, store domain.PersistentStore) {
	ctx := context.Background()
	mustInit(t, store)
	if err := store.Put(ctx, domain.CollectionTasks, task("t1", "p1", "Complete")); err != nil {
		t.Fatalf("put: %v", err)
	}
	mustInit(t, store)
	if _, ok, err := store.Get(ctx, domain.CollectionTasks, "t1"); err != nil || !ok {
		t.Fatalf("expected data to survive second init: ok=%v err=%v", ok, err)
	}
}

func testPutGetReplace(t *testing.T, store domain.PersistentStore) {
	ctx := context.Background()
	mustInit(t, store)
	if _, ok, err := store.Get(ctx, domain.CollectionTasks, "missing"); err != nil || ok {
		t.Fatalf("expected absent, got ok=%v err=%v", ok, err)
	}
	if err := store.Put(ctx, domain.CollectionTasks, task("t1", "p1", "Not Started")); err != nil {
		t.Fatalf("put: %v", err)
	}
	replaced := task("t1", "p2", "Complete")
	replaced.Payload = []byte(`{"record_id":"t1","v":2}`)
	if err := store.Put(ctx, domain.CollectionTasks, replaced); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got, ok, err := store.Get(ctx, domain.CollectionTasks, "t1")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(got.Payload) != string(replaced.Payload) || got.Indexes[domain.IndexPersonID] != "p2" {
		t.Fatalf("expected replaced document, got %+v", got)
	}
	all, err := store.GetAll(ctx, domain.CollectionTasks)
	if err != nil || len(all) != 1 {
		t.Fatalf("expected one row after replace, got %d (%v)", len(all), err)
	}
	stale, err := store.GetByIndex(ctx, domain.CollectionTasks, domain.IndexPersonID, "p1")
	if err != nil || len(stale) != 0 {
		t.Fatalf("expected old index value dropped, got %v (%v)", ids(stale), err)
	}
}

func testGetAllAndIndex(t *testing.T, store domain.PersistentStore) {
	ctx := context.Background()
	mustInit(t, store)
	for _, doc := range []domain.Document{
		task("t1", "p1", "Complete"),
		task("t2", "p1", "In Progress"),
		task("t3", "p2", "Complete"),
	} {
		if err := store.Put(ctx, domain.CollectionTasks, doc); err != nil {
			t.Fatalf("put %s: %v", doc.ID, err)
		}
	}
	all, err := store.GetAll(ctx, domain.CollectionTasks)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if got := ids(all); !equal(got, []string{"t1", "t2", "t3"}) {
		t.Fatalf("unexpected ids %v", got)
	}
	byPerson, err := store.GetByIndex(ctx, domain.CollectionTasks, domain.IndexPersonID, "p1")
	if err != nil {
		t.Fatalf("by person: %v", err)
	}
	if got := ids(byPerson); !equal(got, []string{"t1", "t2"}) {
		t.Fatalf("unexpected person index ids %v", got)
	}
	byStatus, err := store.GetByIndex(ctx, domain.CollectionTasks, domain.IndexStatus, "Complete")
	if err != nil {
		t.Fatalf("by status: %v", err)
	}
	if got := ids(byStatus); !equal(got, []string{"t1", "t3"}) {
		t.Fatalf("unexpected status index ids %v", got)
	}
	if _, err := store.GetByIndex(ctx, domain.CollectionTasks, "description", "x"); err == nil {
		t.Fatalf("expected error for undeclared index")
	}
}

func testDeleteMissingIsNoop(t *testing.T, store domain.PersistentStore) {
	ctx := context.Background()
	mustInit(t, store)
	if err := store.Delete(ctx, domain.CollectionTasks, "missing"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if err := store.Put(ctx, domain.CollectionTasks, task("t1", "p1", "Complete")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Delete(ctx, domain.CollectionTasks, "t1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, domain.CollectionTasks, "t1"); ok {
		t.Fatalf("expected deleted row to be absent")
	}
}

func testUniqueIndex(t *testing.T, store domain.PersistentStore) {
	ctx := context.Background()
	mustInit(t, store)
	rating := func(id, playerID string) domain.Document {
		return domain.Document{ID: id, Indexes: map[string]string{domain.IndexPlayerID: playerID}, Payload: []byte(`{}`)}
	}
	if err := store.Put(ctx, domain.CollectionPlayerRatings, rating("r1", "p1")); err != nil {
		t.Fatalf("put r1: %v", err)
	}
	if err := store.Put(ctx, domain.CollectionPlayerRatings, rating("r1", "p1")); err != nil {
		t.Fatalf("re-put r1 should replace: %v", err)
	}
	err := store.Put(ctx, domain.CollectionPlayerRatings, rating("r2", "p1"))
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if err := store.Put(ctx, domain.CollectionPlayerRatings, rating("r3", "p2")); err != nil {
		t.Fatalf("put r3: %v", err)
	}
	all, _ := store.GetAll(ctx, domain.CollectionPlayerRatings)
	if got := ids(all); !equal(got, []string{"r1", "r3"}) {
		t.Fatalf("unexpected ratings %v", got)
	}
}

func testTransactionRollback(t *testing.T, store domain.PersistentStore) {
	ctx := context.Background()
	mustInit(t, store)
	if err := store.Put(ctx, domain.CollectionTasks, task("keep", "p1", "Complete")); err != nil {
		t.Fatalf("put: %v", err)
	}
	boom := errors.New("boom")
	err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		if err := tx.Put(ctx, domain.CollectionTasks, task("t2", "p1", "Complete")); err != nil {
			return err
		}
		if err := tx.Delete(ctx, domain.CollectionTasks, "keep"); err != nil {
			return err
		}
		if _, ok, err := tx.Get(ctx, domain.CollectionTasks, "t2"); err != nil || !ok {
			t.Fatalf("expected write visible inside transaction: ok=%v err=%v", ok, err)
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected callback error, got %v", err)
	}
	all, _ := store.GetAll(ctx, domain.CollectionTasks)
	if got := ids(all); !equal(got, []string{"keep"}) {
		t.Fatalf("expected rollback to restore state, got %v", got)
	}
}

func testTransactionCommit(t *testing.T, store domain.PersistentStore) {
	ctx := context.Background()
	mustInit(t, store)
	err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		for _, doc := range []domain.Document{task("t1", "p1", "Complete"), task("t2", "p1", "Complete")} {
			if err := tx.Put(ctx, domain.CollectionTasks, doc); err != nil {
				return err
			}
		}
		got, err := tx.GetByIndex(ctx, domain.CollectionTasks, domain.IndexPersonID, "p1")
		if err != nil || len(got) != 2 {
			t.Fatalf("expected indexed reads inside transaction, got %v (%v)", ids(got), err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
	all, _ := store.GetAll(ctx, domain.CollectionTasks)
	if len(all) != 2 {
		t.Fatalf("expected committed rows, got %v", ids(all))
	}
}

func testUnknownCollection(t *testing.T, store domain.PersistentStore) {
	ctx := context.Background()
	mustInit(t, store)
	if _, err := store.GetAll(ctx, domain.Collection("nope")); !errors.Is(err, domain.ErrUnknownCollection) {
		t.Fatalf("expected ErrUnknownCollection, got %v", err)
	}
}

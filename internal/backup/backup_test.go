package backup_test

import (
	"context"
	"errors"
	"path/filepath"
	"recruitledger/internal/backup"
	"recruitledger/internal/blob"
	"recruitledger/internal/core"
	"recruitledger/internal/infra/blob/memory"
	"recruitledger/internal/infra/blob/s3"
	memstore "recruitledger/internal/infra/persistence/memory"
	"recruitledger/internal/infra/persistence/sqlite"
	"recruitledger/pkg/domain"
	"strings"
	"testing"
	"time"
)

func newMemoryStore(t *testing.T) domain.PersistentStore {
	t.Helper()
	store := memstore.NewStore()
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	return store
}

func seedLedger(t *testing.T, svc *core.Service) (schoolID, playerID string) {
	t.Helper()
	ctx := context.Background()
	city, state := "Miami", domain.USState("FL")
	school, err := svc.CreateSchool(ctx, domain.SchoolInput{Name: "Central High", City: &city, State: &state, Types: []domain.SchoolType{domain.SchoolHighSchool}})
	if err != nil {
		t.Fatalf("create school: %v", err)
	}
	stars := 5
	player, err := svc.CreatePlayer(ctx, domain.CreatePlayerInput{
		Person: domain.PersonInput{FirstName: "Derek", LastName: "Williams", SchoolID: &school.ID},
		Player: domain.PlayerInput{Positions: []domain.Position{domain.PositionRB}},
		Rating: &domain.RatingInput{MaxPreps: &stars},
	})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	return school.ID, player.ID
}

func TestBackupAndRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)
	svc := core.NewService(store)
	schoolID, playerID := seedLedger(t, svc)

	blobs := memory.New()
	taken := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	archiver := backup.New(store, blobs, backup.WithClock(func() time.Time { return taken }))

	info, err := archiver.Backup(ctx, "snapshots/first.json")
	if err != nil {
		t.Fatalf("backup: %v", err)
	}
	if info.ContentType != "application/json" || info.Metadata["records"] != "4" {
		t.Fatalf("unexpected blob info %+v", info)
	}
	if _, err := archiver.Backup(ctx, "snapshots/first.json"); !errors.Is(err, blob.ErrExists) {
		t.Fatalf("expected ErrExists on repeated key, got %v", err)
	}

	if _, err := svc.DeleteSchool(ctx, schoolID); err != nil {
		t.Fatalf("delete school: %v", err)
	}
	if _, err := svc.DeletePlayer(ctx, playerID); err != nil {
		t.Fatalf("delete player: %v", err)
	}

	snap, err := archiver.Restore(ctx, "snapshots/first.json")
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !snap.TakenAt.Equal(taken) || snap.Count() != 4 {
		t.Fatalf("unexpected snapshot %v %d", snap.TakenAt, snap.Count())
	}
	got, ok, err := svc.GetPlayer(ctx, playerID)
	if err != nil || !ok {
		t.Fatalf("get restored player: %v %v", ok, err)
	}
	if got.School == nil || got.School.Name != "Central High" {
		t.Fatalf("expected restored school link, got %+v", got.School)
	}
	if got.Rating == nil || got.Rating.MaxPreps == nil || *got.Rating.MaxPreps != 5 {
		t.Fatalf("expected restored rating, got %+v", got.Rating)
	}
}

func TestRestoreReplacesExistingRows(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)
	svc := core.NewService(store)
	archiver := backup.New(store, memory.New())
	if _, err := archiver.Backup(ctx, "empty.json"); err != nil {
		t.Fatalf("backup: %v", err)
	}
	seedLedger(t, svc)
	if _, err := archiver.Restore(ctx, "empty.json"); err != nil {
		t.Fatalf("restore: %v", err)
	}
	people, err := svc.ListPeople(ctx)
	if err != nil || len(people) != 0 {
		t.Fatalf("expected empty ledger after restore, got %d (%v)", len(people), err)
	}
}

func TestRestoreIntoSQLite(t *testing.T) {
	ctx := context.Background()
	source := newMemoryStore(t)
	_, playerID := seedLedger(t, core.NewService(source))
	blobs := s3.NewMockForTests()
	if _, err := backup.New(source, blobs).Backup(ctx, "snapshots/s3.json"); err != nil {
		t.Fatalf("backup to s3: %v", err)
	}

	target, err := sqlite.NewStore(filepath.Join(t.TempDir(), "restore.sqlite"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = target.Close() })
	if err := target.Init(ctx); err != nil {
		t.Fatalf("init sqlite: %v", err)
	}
	if _, err := backup.New(target, blobs).Restore(ctx, "snapshots/s3.json"); err != nil {
		t.Fatalf("restore into sqlite: %v", err)
	}
	totals, ok, err := core.NewService(target).PlayerNILTotals(ctx, playerID)
	if err != nil || !ok || totals.PlayerID != playerID {
		t.Fatalf("expected restored player in sqlite: %+v %v %v", totals, ok, err)
	}
}

func TestLoadRejectsForeignSnapshots(t *testing.T) {
	ctx := context.Background()
	blobs := memory.New()
	bodies := map[string]string{
		"v2.json":      `{"version":2,"collections":{}}`,
		"unknown.json": `{"version":1,"collections":{"boosters":[]}}`,
		"broken.json":  `{"version":`,
	}
	for key, body := range bodies {
		if _, err := blobs.Put(ctx, key, strings.NewReader(body), blob.PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	archiver := backup.New(newMemoryStore(t), blobs)
	for key := range bodies {
		if _, err := archiver.Load(ctx, key); err == nil {
			t.Fatalf("expected %s to be rejected", key)
		}
	}
	if _, err := archiver.Load(ctx, "missing.json"); !errors.Is(err, blob.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	list, err := archiver.List(ctx, "")
	if err != nil || len(list) != 3 {
		t.Fatalf("list: %v %d", err, len(list))
	}
}

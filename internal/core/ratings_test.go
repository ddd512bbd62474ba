package core_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"recruitledger/internal/config"
	"recruitledger/internal/core"
	"recruitledger/pkg/domain"
	"sync"
	"testing"
)

func TestUpdatePlayerRatingUpserts(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	p := mustPlayer(t, svc, player("Rated", "Twice"))
	if _, ok, err := svc.GetPlayerRating(ctx, p.ID); err != nil || ok {
		t.Fatalf("expected no rating yet, ok=%v err=%v", ok, err)
	}

	first, err := svc.UpdatePlayerRating(ctx, p.ID, domain.RatingPatch{MaxPreps: domain.Set(4)})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if !first.UpdatedAt.Equal(first.CreatedAt) {
		t.Fatalf("fresh rating should have updated_at == created_at")
	}
	second, err := svc.UpdatePlayerRating(ctx, p.ID, domain.RatingPatch{MaxPreps: domain.Set(4)})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID || !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("second upsert must reuse the row: %s vs %s", second.ID, first.ID)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Fatalf("updated_at must advance on the second call")
	}

	docs, err := store.GetByIndex(ctx, domain.CollectionPlayerRatings, domain.IndexPlayerID, p.ID)
	if err != nil {
		t.Fatalf("index lookup: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected exactly one rating row, got %d", len(docs))
	}

	merged, err := svc.UpdatePlayerRating(ctx, p.ID, domain.RatingPatch{Rating247: domain.Set(3)})
	if err != nil {
		t.Fatalf("merge upsert: %v", err)
	}
	if *merged.MaxPreps != 4 || *merged.Rating247 != 3 {
		t.Fatalf("unmentioned fields must be kept, got %+v", merged)
	}
	cleared, err := svc.UpdatePlayerRating(ctx, p.ID, domain.RatingPatch{MaxPreps: domain.Null[int]()})
	if err != nil {
		t.Fatalf("clear upsert: %v", err)
	}
	if cleared.MaxPreps != nil {
		t.Fatalf("expected maxpreps cleared, got %v", *cleared.MaxPreps)
	}

	removed, err := svc.DeletePlayerRating(ctx, p.ID)
	if err != nil || !removed {
		t.Fatalf("delete rating: removed=%v err=%v", removed, err)
	}
	if removed, _ := svc.DeletePlayerRating(ctx, p.ID); removed {
		t.Fatal("second delete must report absent")
	}
}

func TestUpdatePlayerRatingConcurrentCallersShareOneRow(t *testing.T) {
	backends := []struct {
		name string
		cfg  func(t *testing.T) config.StorageConfig
	}{
		{"memory", func(*testing.T) config.StorageConfig {
			return config.StorageConfig{Driver: string(core.StorageMemory)}
		}},
		{"sqlite", func(t *testing.T) config.StorageConfig {
			return config.StorageConfig{Driver: string(core.StorageSQLite), SQLitePath: filepath.Join(t.TempDir(), "ratings.sqlite")}
		}},
	}
	for _, backend := range backends {
		t.Run(backend.name, func(t *testing.T) {
			ctx := context.Background()
			store, err := core.OpenPersistentStore(ctx, backend.cfg(t))
			if err != nil {
				t.Fatalf("open store: %v", err)
			}
			t.Cleanup(func() { _ = store.Close() })
			svc := core.NewService(store)
			p := mustPlayer(t, svc, player("Busy", "Prospect"))

			const callers = 20
			var wg sync.WaitGroup
			errs := make(chan error, 2*callers)
			for i := 0; i < callers; i++ {
				wg.Add(2)
				go func(i int) {
					defer wg.Done()
					if _, err := svc.UpdatePlayerRating(ctx, p.ID, domain.RatingPatch{MaxPreps: domain.Set(i%5 + 1)}); err != nil {
						errs <- fmt.Errorf("upsert %d: %w", i, err)
					}
				}(i)
				go func() {
					defer wg.Done()
					if _, _, err := svc.GetPlayer(ctx, p.ID); err != nil {
						errs <- fmt.Errorf("get player: %w", err)
					}
				}()
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				t.Error(err)
			}

			docs, err := store.GetByIndex(ctx, domain.CollectionPlayerRatings, domain.IndexPlayerID, p.ID)
			if err != nil {
				t.Fatalf("index lookup: %v", err)
			}
			if len(docs) != 1 {
				t.Fatalf("expected exactly one rating row after concurrent upserts, got %d", len(docs))
			}
			full, ok, err := svc.GetPlayer(ctx, p.ID)
			if err != nil || !ok || full.Rating == nil || full.Rating.ID != docs[0].ID {
				t.Fatalf("hydrated rating mismatch: ok=%v err=%v", ok, err)
			}
		})
	}
}

func TestNonFiniteAmountsAreValidationErrors(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	p := mustPlayer(t, svc, player("Odd", "Numbers"))

	_, err := svc.UpdatePlayerRating(ctx, p.ID, domain.RatingPatch{Composite247: domain.Set(math.NaN())})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for NaN composite, got %v", err)
	}
	_, err = svc.CreateExternalNILDeal(ctx, domain.ExternalNILDealInput{
		PlayerID:        p.ID,
		SourceType:      domain.NILSourceBrand,
		EstimatedAmount: ptr(math.Inf(1)),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for infinite estimate, got %v", err)
	}

	for _, c := range []domain.Collection{domain.CollectionPlayerRatings, domain.CollectionExternalNILDeals} {
		docs, err := store.GetAll(ctx, c)
		if err != nil {
			t.Fatalf("scan %s: %v", c, err)
		}
		if len(docs) != 0 {
			t.Fatalf("rejected write left %d rows in %s", len(docs), c)
		}
	}
}

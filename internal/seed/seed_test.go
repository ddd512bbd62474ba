package seed_test

import (
	"context"
	"recruitledger/internal/core"
	"recruitledger/internal/infra/persistence/memory"
	"recruitledger/internal/seed"
	"testing"
)

func newService(t *testing.T) *core.Service {
	t.Helper()
	store := memory.NewStore()
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	return core.NewService(store)
}

func TestSampleSeedsOnce(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	res, err := seed.Sample(ctx, svc, nil)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if res.Skipped || res.Schools != 4 || res.People != 9 || res.Pools != 3 {
		t.Fatalf("unexpected result %+v", res)
	}

	again, err := seed.Sample(ctx, svc, nil)
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if !again.Skipped {
		t.Fatalf("expected second seed to be skipped")
	}
	people, err := svc.ListPeople(ctx)
	if err != nil || len(people) != 9 {
		t.Fatalf("expected 9 people, got %d (%v)", len(people), err)
	}
}

func TestSampleLedgerAggregates(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	if _, err := seed.Sample(ctx, svc, nil); err != nil {
		t.Fatalf("seed: %v", err)
	}

	counts, err := svc.SchoolsWithCounts(ctx)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	byName := map[string][3]int{}
	for _, c := range counts {
		byName[c.Name] = [3]int{c.PlayerCount, c.CoachCount, c.StaffCount}
	}
	if byName["Central High"] != [3]int{1, 1, 1} {
		t.Fatalf("unexpected Central High counts %v", byName["Central High"])
	}
	if byName["State University"] != [3]int{3, 0, 0} {
		t.Fatalf("unexpected State University counts %v", byName["State University"])
	}

	summary, err := svc.NILSummary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.InstitutionalAnnual != 100000 || summary.ExternalEstimated != 155000 {
		t.Fatalf("unexpected totals %+v", summary)
	}
	if len(summary.Players) != 5 {
		t.Fatalf("expected 5 players in summary, got %d", len(summary.Players))
	}

	util, err := svc.FundingPoolUtilization(ctx)
	if err != nil {
		t.Fatalf("utilization: %v", err)
	}
	committed := 0.0
	for _, u := range util {
		committed += u.Committed
		if u.OverCap {
			t.Fatalf("pool %s unexpectedly over cap", u.Pool.ID)
		}
	}
	if committed != 100000 {
		t.Fatalf("expected 100000 committed across pools, got %v", committed)
	}
}

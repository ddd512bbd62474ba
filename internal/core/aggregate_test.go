package core_test

import (
	"context"
	"recruitledger/pkg/domain"
	"testing"
)

func TestSchoolsWithCounts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	b := mustSchool(t, svc, "Bravo Prep", "Reno", "NV")
	a := mustSchool(t, svc, "alpha academy", "Reno", "NV")
	for _, name := range []string{"One", "Two"} {
		in := player(name, "Alpha")
		in.Person.SchoolID = ptr(a.ID)
		mustPlayer(t, svc, in)
	}
	mustCoach(t, svc, "Coach", "Alpha", ptr(a.ID))
	mustPlayer(t, svc, player("Free", "Agent"))

	rows, err := svc.SchoolsWithCounts(ctx)
	if err != nil {
		t.Fatalf("schools with counts: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected two schools, got %d", len(rows))
	}
	if rows[0].ID != a.ID || rows[1].ID != b.ID {
		t.Fatalf("expected case-insensitive name order, got %s then %s", rows[0].Name, rows[1].Name)
	}
	if rows[0].PlayerCount != 2 || rows[0].CoachCount != 1 || rows[0].StaffCount != 0 {
		t.Fatalf("unexpected counts for A: %+v", rows[0])
	}
	if rows[1].PlayerCount != 0 || rows[1].CoachCount != 0 || rows[1].StaffCount != 0 {
		t.Fatalf("unexpected counts for B: %+v", rows[1])
	}
}

func TestNILSummary(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	big := player("Big", "Earner")
	big.ExternalNILDeals = []domain.ExternalNILDealInput{
		{SourceType: domain.NILSourceBrand, EstimatedAmount: ptr(40000.0), CommittedAmount: ptr(10000.0)},
		{SourceType: domain.NILSourceCollective},
	}
	big.InstitutionalAllocations = []domain.InstitutionalAllocationInput{
		{AllocationType: domain.AllocationBaseline, AnnualAmount: ptr(20000.0), Status: domain.AllocationActive},
	}
	bigP := mustPlayer(t, svc, big)

	small := player("Small", "Earner")
	small.InstitutionalAllocations = []domain.InstitutionalAllocationInput{
		{AllocationType: domain.AllocationBaseline, AnnualAmount: ptr(5000.0), Status: domain.AllocationProposed},
	}
	smallP := mustPlayer(t, svc, small)
	zeroP := mustPlayer(t, svc, player("Zero", "Earner"))
	mustCoach(t, svc, "Not", "Counted", nil)

	summary, err := svc.NILSummary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.InstitutionalAnnual != 25000 || summary.ExternalEstimated != 40000 || summary.ExternalCommitted != 10000 {
		t.Fatalf("unexpected department totals %+v", summary)
	}
	if len(summary.Players) != 3 {
		t.Fatalf("expected every player listed, got %d", len(summary.Players))
	}
	order := []string{bigP.ID, smallP.ID, zeroP.ID}
	for i, row := range summary.Players {
		if row.PlayerID != order[i] {
			t.Fatalf("position %d: want %s got %s", i, order[i], row.PlayerID)
		}
	}
	if top := summary.Players[0]; top.Total() != 60000 || top.ExternalDealCount != 2 || top.InstitutionalCount != 1 {
		t.Fatalf("unexpected top row %+v", top)
	}

	totals, ok, err := svc.PlayerNILTotals(ctx, zeroP.ID)
	if err != nil || !ok {
		t.Fatalf("zero totals: ok=%v err=%v", ok, err)
	}
	if totals.Total() != 0 || totals.ExternalDealCount != 0 {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
	if _, ok, err := svc.PlayerNILTotals(ctx, "missing"); err != nil || ok {
		t.Fatalf("missing player should report absent, ok=%v err=%v", ok, err)
	}
}

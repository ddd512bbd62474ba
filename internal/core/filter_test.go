package core_test

import (
	"context"
	"recruitledger/internal/core"
	"recruitledger/pkg/domain"
	"testing"
)

func filterFixture(t *testing.T) []domain.PersonFull {
	t.Helper()
	svc, _ := newTestService(t)
	miami := mustSchool(t, svc, "Central High", "Miami", "FL")
	austin := mustSchool(t, svc, "Westlake", "Austin", "TX")

	qb := player("Derek", "Williams")
	qb.Person.SchoolID = ptr(miami.ID)
	qb.Player.Positions = []domain.Position{domain.PositionQB}
	qb.Rating = &domain.RatingInput{MaxPreps: ptr(5)}
	mustPlayer(t, svc, qb)

	wr := player("Marcus", "Lee")
	wr.Person.SchoolID = ptr(austin.ID)
	wr.Player.Positions = []domain.Position{domain.PositionWR, domain.PositionCB}
	wr.Rating = &domain.RatingInput{MaxPreps: ptr(3)}
	mustPlayer(t, svc, wr)

	mustPlayer(t, svc, player("No", "School"))
	mustCoach(t, svc, "Tom", "Herman", ptr(austin.ID))
	mustStaff(t, svc, "Ana", "Diaz", ptr(miami.ID))

	people, err := svc.ListPeople(context.Background())
	if err != nil {
		t.Fatalf("list people: %v", err)
	}
	return people
}

func names(people []domain.PersonFull) []string {
	out := make([]string, len(people))
	for i, p := range people {
		out[i] = p.View().FullName()
	}
	return out
}

func TestFilterPeople(t *testing.T) {
	people := filterFixture(t)

	cases := []struct {
		name   string
		filter core.PersonFilter
		want   []string
	}{
		{"empty filter", core.PersonFilter{}, []string{"Ana Diaz", "Tom Herman", "Marcus Lee", "No School", "Derek Williams"}},
		{"all sentinel", core.PersonFilter{Role: core.FilterAll, State: core.FilterAll}, []string{"Ana Diaz", "Tom Herman", "Marcus Lee", "No School", "Derek Williams"}},
		{"search name", core.PersonFilter{Search: "DEREK"}, []string{"Derek Williams"}},
		{"search school", core.PersonFilter{Search: "westlake"}, []string{"Tom Herman", "Marcus Lee"}},
		{"role", core.PersonFilter{Role: "staff"}, []string{"Ana Diaz"}},
		{"position", core.PersonFilter{Position: "CB"}, []string{"Marcus Lee"}},
		{"state", core.PersonFilter{State: "FL"}, []string{"Ana Diaz", "Derek Williams"}},
		{"city and role", core.PersonFilter{City: "Austin", Role: "coach"}, []string{"Tom Herman"}},
		{"rating", core.PersonFilter{Rating: "5"}, []string{"Derek Williams"}},
		{"bad rating", core.PersonFilter{Rating: "five"}, []string{}},
		{"no match", core.PersonFilter{Search: "zzz"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := names(core.FilterPeople(people, tc.filter))
			if len(got) != len(tc.want) {
				t.Fatalf("want %v got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("want %v got %v", tc.want, got)
				}
			}
		})
	}
}

func TestFilterBySchoolID(t *testing.T) {
	people := filterFixture(t)
	var schoolID string
	for _, p := range people {
		if v := p.View(); v.FullName() == "Derek Williams" {
			schoolID = *v.SchoolID
		}
	}
	got := names(core.FilterPeople(people, core.PersonFilter{School: schoolID}))
	if len(got) != 2 || got[0] != "Ana Diaz" || got[1] != "Derek Williams" {
		t.Fatalf("unexpected school filter result %v", got)
	}
}

func TestAvailableFilterOptions(t *testing.T) {
	opts := core.AvailableFilterOptions(filterFixture(t))
	assertStrings(t, "positions", opts.Positions, []string{"CB", "QB", "WR"})
	assertStrings(t, "states", opts.States, []string{"FL", "TX"})
	assertStrings(t, "cities", opts.Cities, []string{"Austin", "Miami"})

	empty := core.AvailableFilterOptions(nil)
	if empty.Positions == nil || len(empty.Positions) != 0 {
		t.Fatalf("expected empty non-nil positions, got %#v", empty.Positions)
	}
}

func assertStrings(t *testing.T, label string, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: want %v got %v", label, want, got)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("%s: want %v got %v", label, want, got)
		}
	}
}

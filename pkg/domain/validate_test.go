package domain

import (
	"errors"
	"math"
	"testing"
	"time"
)

func intPtr(v int) *int              { return &v }
func floatPtr(v float64) *float64    { return &v }
func statePtr(v USState) *USState    { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func TestValidateRejectsOutOfDomainValues(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name   string
		value  interface{ Validate() error }
		entity Collection
		field  string
	}{
		{"school name", School{Name: "  "}, CollectionSchools, "name"},
		{"school state", School{Name: "A", State: statePtr("ZZ")}, CollectionSchools, "state"},
		{"school type", School{Name: "A", Types: []SchoolType{"Prep"}}, CollectionSchools, "type"},
		{"person first name", Person{LastName: "L", Type: PersonPlayer}, CollectionPeople, "first_name"},
		{"person type", Person{FirstName: "F", LastName: "L", Type: "alumni"}, CollectionPeople, "type"},
		{"self assigned coach", Person{Base: Base{ID: "p1"}, FirstName: "F", LastName: "L", Type: PersonCoach, AssignedCoachID: strPtr("p1")}, CollectionPeople, "assigned_coach_id"},
		{"player position", PlayerProfile{Positions: []Position{"K"}}, CollectionPlayers, "position"},
		{"player priority high", PlayerProfile{Priority: intPtr(6)}, CollectionPlayers, "priority"},
		{"player likelihood low", PlayerProfile{Likelihood: intPtr(0)}, CollectionPlayers, "likelihood"},
		{"player eligibility", PlayerProfile{YearsEligibility: intPtr(-1)}, CollectionPlayers, "years_eligibility"},
		{"coach specialty", CoachProfile{Specialties: []CoachSpecialty{"Kicking"}}, CollectionCoaches, "specialty"},
		{"coach salary", CoachProfile{CommittedSalary: floatPtr(-5)}, CollectionCoaches, "committed_salary"},
		{"staff specialty", StaffProfile{Specialties: []StaffSpecialty{"Legal"}}, CollectionStaff, "specialty"},
		{"rating maxpreps", PlayerRating{PlayerID: "p", MaxPreps: intPtr(0)}, CollectionPlayerRatings, "maxpreps"},
		{"rating internal", PlayerRating{PlayerID: "p", InternalRating: intPtr(9)}, CollectionPlayerRatings, "internal_rating"},
		{"deal source", ExternalNILDeal{PlayerID: "p", SourceType: "booster"}, CollectionExternalNILDeals, "source_type"},
		{"deal dates", ExternalNILDeal{PlayerID: "p", SourceType: NILSourceBrand, StartDate: timePtr(start), EndDate: timePtr(start.AddDate(0, 0, -1))}, CollectionExternalNILDeals, "end_date"},
		{"allocation status", InstitutionalAllocation{PlayerID: "p", AllocationType: AllocationBaseline, Status: "paid"}, CollectionInstitutionalAllocations, "status"},
		{"allocation amount", InstitutionalAllocation{PlayerID: "p", AllocationType: AllocationBaseline, Status: AllocationActive, AnnualAmount: floatPtr(-1)}, CollectionInstitutionalAllocations, "annual_amount"},
		{"pool cap type", FundingPool{TeamID: "t", PoolType: PoolRetention, CapType: "firm"}, CollectionFundingPools, "cap_type"},
		{"pool total", FundingPool{TeamID: "t", PoolType: PoolRetention, CapType: CapSoft, TotalAmount: -1}, CollectionFundingPools, "total_amount"},
		{"rating composite NaN", PlayerRating{PlayerID: "p", Composite247: floatPtr(math.NaN())}, CollectionPlayerRatings, "composite_247"},
		{"rating composite infinite", PlayerRating{PlayerID: "p", Composite247: floatPtr(math.Inf(-1))}, CollectionPlayerRatings, "composite_247"},
		{"coach salary NaN", CoachProfile{EstimatedSalary: floatPtr(math.NaN())}, CollectionCoaches, "estimated_salary"},
		{"deal estimate infinite", ExternalNILDeal{PlayerID: "p", SourceType: NILSourceBrand, EstimatedAmount: floatPtr(math.Inf(1))}, CollectionExternalNILDeals, "estimated_amount"},
		{"allocation amount NaN", InstitutionalAllocation{PlayerID: "p", AllocationType: AllocationBaseline, Status: AllocationActive, AnnualAmount: floatPtr(math.NaN())}, CollectionInstitutionalAllocations, "annual_amount"},
		{"pool total infinite", FundingPool{TeamID: "t", PoolType: PoolRetention, CapType: CapSoft, TotalAmount: math.Inf(1)}, CollectionFundingPools, "total_amount"},
		{"pool allocated NaN", FundingPool{TeamID: "t", PoolType: PoolRetention, CapType: CapSoft, AllocatedAmount: math.NaN()}, CollectionFundingPools, "allocated_amount"},
		{"task description", Task{PersonID: "p", Status: TaskComplete}, CollectionTasks, "description"},
		{"task status", Task{PersonID: "p", Status: "Blocked", Description: "x"}, CollectionTasks, "status"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.value.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Entity != tc.entity || verr.Field != tc.field {
				t.Fatalf("expected %s.%s, got %s.%s", tc.entity, tc.field, verr.Entity, verr.Field)
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatal("ValidationError must match ErrValidation")
			}
		})
	}
}

func TestValidateAcceptsBoundaries(t *testing.T) {
	valid := []interface{ Validate() error }{
		School{Name: "Central High", State: statePtr("FL"), Types: []SchoolType{SchoolHighSchool, SchoolJUCO}},
		PlayerProfile{Priority: intPtr(1), Likelihood: intPtr(5), YearsEligibility: intPtr(0)},
		PlayerRating{PlayerID: "p", MaxPreps: intPtr(5), Rating247: intPtr(1), Composite247: floatPtr(-3.5)},
		FundingPool{TeamID: "t", PoolType: PoolRevenueShare, CapType: CapHard, TotalAmount: 10, AllocatedAmount: 25},
		ExternalNILDeal{PlayerID: "p", SourceType: NILSourceCollective, CommittedAmount: floatPtr(0)},
	}
	for i, v := range valid {
		if err := v.Validate(); err != nil {
			t.Fatalf("case %d: unexpected error %v", i, err)
		}
	}
}

func TestErrorsMatchSentinels(t *testing.T) {
	ref := &ReferenceError{Entity: CollectionTasks, Field: "person_id", Target: CollectionPeople, ID: "x"}
	if !errors.Is(ref, ErrReference) || ref.Error() != `tasks.person_id: people "x" not found` {
		t.Fatalf("unexpected reference error %q", ref.Error())
	}
	conflict := &ConflictError{Entity: CollectionPlayerRatings, Field: IndexPlayerID, Value: "p", ExistingID: "r1"}
	if !errors.Is(conflict, ErrConflict) || errors.Is(conflict, ErrValidation) {
		t.Fatal("ConflictError must match only ErrConflict")
	}
	if err := RequiredCleared(CollectionSchools, "name"); !errors.Is(err, ErrValidation) {
		t.Fatalf("RequiredCleared must be a validation error, got %v", err)
	}
}

func TestDedupeKeepsFirstSeenOrder(t *testing.T) {
	got := Dedupe([]Position{PositionWR, PositionQB, PositionWR})
	if len(got) != 2 || got[0] != PositionWR || got[1] != PositionQB {
		t.Fatalf("unexpected dedupe result %v", got)
	}
	if empty := Dedupe[Position](nil); empty == nil || len(empty) != 0 {
		t.Fatalf("nil input must yield an empty slice, got %#v", empty)
	}
}

func strPtr(v string) *string { return &v }

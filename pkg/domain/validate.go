package domain

import (
	"math"
	"strings"
)

// Validate checks required fields and value domains of a school.
func (s School) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return invalid(CollectionSchools, "name", "is required")
	}
	if s.State != nil && !s.State.Valid() {
		return invalid(CollectionSchools, "state", "%q is not a US state abbreviation", *s.State)
	}
	for _, t := range s.Types {
		if !t.Valid() {
			return invalid(CollectionSchools, "type", "unknown school type %q", t)
		}
	}
	return nil
}

// Validate checks the base person row.
func (p Person) Validate() error {
	if strings.TrimSpace(p.FirstName) == "" {
		return invalid(CollectionPeople, "first_name", "is required")
	}
	if strings.TrimSpace(p.LastName) == "" {
		return invalid(CollectionPeople, "last_name", "is required")
	}
	if !p.Type.Valid() {
		return invalid(CollectionPeople, "type", "unknown person type %q", p.Type)
	}
	if p.AssignedCoachID != nil && *p.AssignedCoachID == p.ID {
		return invalid(CollectionPeople, "assigned_coach_id", "cannot reference itself")
	}
	return nil
}

// Validate checks the player extension.
func (p PlayerProfile) Validate() error {
	for _, pos := range p.Positions {
		if !pos.Valid() {
			return invalid(CollectionPlayers, "position", "unknown position %q", pos)
		}
	}
	if p.GradYear != nil && *p.GradYear <= 0 {
		return invalid(CollectionPlayers, "grad_year", "must be positive, got %d", *p.GradYear)
	}
	if p.YearsEligibility != nil && *p.YearsEligibility < 0 {
		return invalid(CollectionPlayers, "years_eligibility", "must not be negative, got %d", *p.YearsEligibility)
	}
	if err := checkScale(CollectionPlayers, "priority", p.Priority); err != nil {
		return err
	}
	return checkScale(CollectionPlayers, "likelihood", p.Likelihood)
}

// Validate checks the coach extension.
func (c CoachProfile) Validate() error {
	for _, s := range c.Specialties {
		if !s.Valid() {
			return invalid(CollectionCoaches, "specialty", "unknown coach specialty %q", s)
		}
	}
	if err := checkAmount(CollectionCoaches, "committed_salary", c.CommittedSalary); err != nil {
		return err
	}
	return checkAmount(CollectionCoaches, "estimated_salary", c.EstimatedSalary)
}

// Validate checks the staff extension.
func (s StaffProfile) Validate() error {
	for _, sp := range s.Specialties {
		if !sp.Valid() {
			return invalid(CollectionStaff, "specialty", "unknown staff specialty %q", sp)
		}
	}
	return nil
}

// Validate checks rating ranges. Composite247 may be any finite number.
func (r PlayerRating) Validate() error {
	if strings.TrimSpace(r.PlayerID) == "" {
		return invalid(CollectionPlayerRatings, "player_id", "is required")
	}
	if err := checkFinite(CollectionPlayerRatings, "composite_247", r.Composite247); err != nil {
		return err
	}
	if err := checkScale(CollectionPlayerRatings, "maxpreps", r.MaxPreps); err != nil {
		return err
	}
	if err := checkScale(CollectionPlayerRatings, "rating_247", r.Rating247); err != nil {
		return err
	}
	return checkScale(CollectionPlayerRatings, "internal_rating", r.InternalRating)
}

// Validate checks an external NIL deal.
func (d ExternalNILDeal) Validate() error {
	if strings.TrimSpace(d.PlayerID) == "" {
		return invalid(CollectionExternalNILDeals, "player_id", "is required")
	}
	if !d.SourceType.Valid() {
		return invalid(CollectionExternalNILDeals, "source_type", "unknown source type %q", d.SourceType)
	}
	if err := checkAmount(CollectionExternalNILDeals, "committed_amount", d.CommittedAmount); err != nil {
		return err
	}
	if err := checkAmount(CollectionExternalNILDeals, "estimated_amount", d.EstimatedAmount); err != nil {
		return err
	}
	if d.StartDate != nil && d.EndDate != nil && d.EndDate.Before(*d.StartDate) {
		return invalid(CollectionExternalNILDeals, "end_date", "precedes start_date")
	}
	return nil
}

// Validate checks an institutional allocation.
func (a InstitutionalAllocation) Validate() error {
	if strings.TrimSpace(a.PlayerID) == "" {
		return invalid(CollectionInstitutionalAllocations, "player_id", "is required")
	}
	if !a.AllocationType.Valid() {
		return invalid(CollectionInstitutionalAllocations, "allocation_type", "unknown allocation type %q", a.AllocationType)
	}
	if !a.Status.Valid() {
		return invalid(CollectionInstitutionalAllocations, "status", "unknown status %q", a.Status)
	}
	return checkAmount(CollectionInstitutionalAllocations, "annual_amount", a.AnnualAmount)
}

// Validate checks a funding pool. AllocatedAmount is not compared with TotalAmount.
func (p FundingPool) Validate() error {
	if strings.TrimSpace(p.TeamID) == "" {
		return invalid(CollectionFundingPools, "team_id", "is required")
	}
	if !p.PoolType.Valid() {
		return invalid(CollectionFundingPools, "pool_type", "unknown pool type %q", p.PoolType)
	}
	if !p.CapType.Valid() {
		return invalid(CollectionFundingPools, "cap_type", "unknown cap type %q", p.CapType)
	}
	if err := checkAmount(CollectionFundingPools, "total_amount", &p.TotalAmount); err != nil {
		return err
	}
	return checkAmount(CollectionFundingPools, "allocated_amount", &p.AllocatedAmount)
}

// Validate checks a task.
func (t Task) Validate() error {
	if strings.TrimSpace(t.PersonID) == "" {
		return invalid(CollectionTasks, "person_id", "is required")
	}
	if !t.Status.Valid() {
		return invalid(CollectionTasks, "status", "unknown status %q", t.Status)
	}
	if strings.TrimSpace(t.Description) == "" {
		return invalid(CollectionTasks, "description", "is required")
	}
	return nil
}

// RequiredCleared reports an attempt to Null a required field.
func RequiredCleared(entity Collection, field string) error {
	return invalid(entity, field, "is required and cannot be cleared")
}

// Dedupe drops repeated values while keeping first-seen order. A nil input
// yields an empty, non-nil slice so payloads always encode a JSON array.
func Dedupe[T comparable](values []T) []T {
	out := make([]T, 0, len(values))
	seen := make(map[T]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func checkScale(entity Collection, field string, v *int) error {
	if v == nil {
		return nil
	}
	if *v < 1 || *v > 5 {
		return invalid(entity, field, "must be between 1 and 5, got %d", *v)
	}
	return nil
}

func checkFinite(entity Collection, field string, v *float64) error {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return invalid(entity, field, "must be a finite number, got %v", *v)
	}
	return nil
}

func checkAmount(entity Collection, field string, v *float64) error {
	if err := checkFinite(entity, field, v); err != nil || v == nil {
		return err
	}
	if *v < 0 {
		return invalid(entity, field, "must not be negative, got %v", *v)
	}
	return nil
}

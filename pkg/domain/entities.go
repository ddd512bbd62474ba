// Package domain defines the persistent entities, value domains, hydrated views
// and storage contract used by recruitledger.
package domain

import "time"

// Base contains common fields for all domain records.
type Base struct {
	ID        string    `json:"record_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecordID returns the primary key of the record.
func (b Base) RecordID() string { return b.ID }

// School is an institution people may be affiliated with.
type School struct {
	Base
	Name  string       `json:"name"`
	City  *string      `json:"city,omitempty"`
	State *USState     `json:"state,omitempty"`
	Types []SchoolType `json:"type"`
}

// Person is the base identity row shared by players, coaches and staff. The
// variant specific data lives in exactly one extension row keyed by the
// person id; Type selects which and never changes after creation.
type Person struct {
	Base
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Email           *string    `json:"email,omitempty"`
	Phone           *string    `json:"phone,omitempty"`
	TwitterURL      *string    `json:"twitter_url,omitempty"`
	LinkedInURL     *string    `json:"linkedin_url,omitempty"`
	InstagramURL    *string    `json:"instagram_url,omitempty"`
	FacebookURL     *string    `json:"facebook_url,omitempty"`
	TikTokURL       *string    `json:"tiktok_url,omitempty"`
	Type            PersonType `json:"type"`
	SchoolID        *string    `json:"school_id,omitempty"`
	AssignedCoachID *string    `json:"assigned_coach_id,omitempty"`
}

// FullName renders "First Last".
func (p Person) FullName() string {
	return p.FirstName + " " + p.LastName
}

// PlayerProfile is the player extension of a Person.
type PlayerProfile struct {
	PersonID         string     `json:"person_id"`
	Positions        []Position `json:"position"`
	GradYear         *int       `json:"grad_year,omitempty"`
	YearsEligibility *int       `json:"years_eligibility,omitempty"`
	Priority         *int       `json:"priority,omitempty"`
	Likelihood       *int       `json:"likelihood,omitempty"`
}

// CoachProfile is the coach extension of a Person.
type CoachProfile struct {
	PersonID        string           `json:"person_id"`
	Specialties     []CoachSpecialty `json:"specialty"`
	CommittedSalary *float64         `json:"committed_salary,omitempty"`
	EstimatedSalary *float64         `json:"estimated_salary,omitempty"`
}

// StaffProfile is the staff extension of a Person.
type StaffProfile struct {
	PersonID    string           `json:"person_id"`
	Specialties []StaffSpecialty `json:"specialty"`
}

// PlayerRating holds external and internal ratings. At most one row exists per player.
type PlayerRating struct {
	Base
	PlayerID       string   `json:"player_id"`
	MaxPreps       *int     `json:"maxpreps,omitempty"`
	Rating247      *int     `json:"rating_247,omitempty"`
	Composite247   *float64 `json:"composite_247,omitempty"`
	InternalRating *int     `json:"internal_rating,omitempty"`
}

// ExternalNILDeal tracks third-party income (brand, marketplace, collective).
type ExternalNILDeal struct {
	Base
	PlayerID             string        `json:"player_id"`
	SourceType           NILSourceType `json:"source_type"`
	CommittedAmount      *float64      `json:"committed_amount,omitempty"`
	EstimatedAmount      *float64      `json:"estimated_amount,omitempty"`
	DeliverablesRequired bool          `json:"deliverables_required"`
	StartDate            *time.Time    `json:"start_date,omitempty"`
	EndDate              *time.Time    `json:"end_date,omitempty"`
}

// InstitutionalAllocation tracks a school revenue-share payment to a player.
type InstitutionalAllocation struct {
	Base
	PlayerID          string           `json:"player_id"`
	AllocationType    AllocationType   `json:"allocation_type"`
	AnnualAmount      *float64         `json:"annual_amount,omitempty"`
	RecruitingCycleID *string          `json:"recruiting_cycle_id,omitempty"`
	TeamID            *string          `json:"team_id,omitempty"`
	CountsTowardCap   bool             `json:"counts_toward_cap"`
	FundingPoolID     *string          `json:"funding_pool_id,omitempty"`
	Status            AllocationStatus `json:"status"`
}

// FundingPool is a budget envelope that allocations draw against.
// AllocatedAmount is maintained by callers and is not checked against TotalAmount.
type FundingPool struct {
	Base
	TeamID            string   `json:"team_id"`
	RecruitingCycleID *string  `json:"recruiting_cycle_id,omitempty"`
	PoolType          PoolType `json:"pool_type"`
	TotalAmount       float64  `json:"total_amount"`
	AllocatedAmount   float64  `json:"allocated_amount"`
	CapType           CapType  `json:"cap_type"`
}

// Task is a recruiting activity attached to a person.
type Task struct {
	Base
	PersonID    string     `json:"person_id"`
	Status      TaskStatus `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Description string     `json:"description"`
}

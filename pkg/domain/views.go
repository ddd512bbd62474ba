package domain

// PersonFull is a hydrated person. It is implemented only by *PlayerFull,
// *CoachFull and *StaffFull; switch on the concrete type to reach variant data.
type PersonFull interface {
	View() *PersonView
	isPersonFull()
}

// PersonView holds the joins shared by every hydrated person variant.
type PersonView struct {
	Person
	School *School `json:"school,omitempty"`
	Tasks  []Task  `json:"tasks"`
}

// View returns the shared part of a hydrated person.
func (v *PersonView) View() *PersonView { return v }

// PlayerFull is a player with every relationship attached.
type PlayerFull struct {
	PersonView
	Player                   PlayerProfile             `json:"player"`
	Rating                   *PlayerRating             `json:"rating,omitempty"`
	ExternalNILDeals         []ExternalNILDeal         `json:"external_nil_deals"`
	InstitutionalAllocations []InstitutionalAllocation `json:"institutional_allocations"`
	AssignedCoach            *CoachFull                `json:"assigned_coach,omitempty"`
}

// CoachFull is a coach with school and tasks attached.
type CoachFull struct {
	PersonView
	Coach CoachProfile `json:"coach"`
}

// StaffFull is a staff member with school and tasks attached.
type StaffFull struct {
	PersonView
	Staff StaffProfile `json:"staff"`
}

func (*PlayerFull) isPersonFull() {}
func (*CoachFull) isPersonFull()  {}
func (*StaffFull) isPersonFull()  {}

// SchoolWithCounts decorates a school with per-type people counts.
type SchoolWithCounts struct {
	School
	PlayerCount int `json:"player_count"`
	CoachCount  int `json:"coach_count"`
	StaffCount  int `json:"staff_count"`
}

// NILTotals sums a player's NIL records. Missing amounts count as zero.
type NILTotals struct {
	PlayerID            string  `json:"player_id"`
	InstitutionalAnnual float64 `json:"institutional_annual"`
	ExternalEstimated   float64 `json:"external_estimated"`
	ExternalCommitted   float64 `json:"external_committed"`
	InstitutionalCount  int     `json:"institutional_count"`
	ExternalDealCount   int     `json:"external_deal_count"`
}

// Total returns institutional annual plus external estimated income.
func (t NILTotals) Total() float64 {
	return t.InstitutionalAnnual + t.ExternalEstimated
}

// NILSummary aggregates NIL totals across the department.
type NILSummary struct {
	InstitutionalAnnual float64     `json:"institutional_annual"`
	ExternalEstimated   float64     `json:"external_estimated"`
	ExternalCommitted   float64     `json:"external_committed"`
	Players             []NILTotals `json:"players"`
}

// PoolUtilization reports cap usage for a funding pool.
type PoolUtilization struct {
	Pool      FundingPool `json:"pool"`
	Committed float64     `json:"committed"`
	Remaining float64     `json:"remaining"`
	OverCap   bool        `json:"over_cap"`
}

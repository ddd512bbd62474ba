package domain

// PersonType discriminates the Person variants.
type PersonType string

// Person variants.
const (
	PersonPlayer PersonType = "player"
	PersonCoach  PersonType = "coach"
	PersonStaff  PersonType = "staff"
)

// Valid reports whether t is a known person type.
func (t PersonType) Valid() bool {
	switch t {
	case PersonPlayer, PersonCoach, PersonStaff:
		return true
	}
	return false
}

// Position enumerates football positions a player may play.
type Position string

// Canonical positions.
const (
	PositionQB  Position = "QB"
	PositionRB  Position = "RB"
	PositionFB  Position = "FB"
	PositionC   Position = "C"
	PositionG   Position = "G"
	PositionT   Position = "T"
	PositionTE  Position = "TE"
	PositionWR  Position = "WR"
	PositionN   Position = "N"
	PositionDT  Position = "DT"
	PositionDE  Position = "DE"
	PositionOLB Position = "OLB"
	PositionMLB Position = "MLB"
	PositionS   Position = "S"
	PositionSS  Position = "SS"
	PositionCB  Position = "CB"
	PositionATH Position = "ATH"
)

// Positions lists every valid position in display order.
var Positions = []Position{
	PositionQB, PositionRB, PositionFB, PositionC, PositionG, PositionT, PositionTE, PositionWR,
	PositionN, PositionDT, PositionDE, PositionOLB, PositionMLB, PositionS, PositionSS, PositionCB, PositionATH,
}

// Valid reports whether p is a known position.
func (p Position) Valid() bool { return contains(Positions, p) }

// CoachSpecialty enumerates coaching focus areas.
type CoachSpecialty string

// Coach specialties.
const (
	CoachOffense      CoachSpecialty = "Offense"
	CoachDefense      CoachSpecialty = "Defense"
	CoachSpecialTeams CoachSpecialty = "Special Teams"
	CoachQBs          CoachSpecialty = "QB's"
	CoachRBs          CoachSpecialty = "RB's"
	CoachOLine        CoachSpecialty = "O-Line"
	CoachDLine        CoachSpecialty = "D-Line"
	CoachLinebackers  CoachSpecialty = "Linebackers"
	CoachSecondary    CoachSpecialty = "Secondary"
)

// CoachSpecialties lists every valid coach specialty.
var CoachSpecialties = []CoachSpecialty{
	CoachOffense, CoachDefense, CoachSpecialTeams, CoachQBs, CoachRBs,
	CoachOLine, CoachDLine, CoachLinebackers, CoachSecondary,
}

// Valid reports whether s is a known coach specialty.
func (s CoachSpecialty) Valid() bool { return contains(CoachSpecialties, s) }

// StaffSpecialty enumerates staff functions.
type StaffSpecialty string

// Staff specialties.
const (
	StaffFinance    StaffSpecialty = "Finance"
	StaffRecruiting StaffSpecialty = "Recruiting"
	StaffAdmin      StaffSpecialty = "Admin"
	StaffOperations StaffSpecialty = "Operations"
)

// StaffSpecialties lists every valid staff specialty.
var StaffSpecialties = []StaffSpecialty{StaffFinance, StaffRecruiting, StaffAdmin, StaffOperations}

// Valid reports whether s is a known staff specialty.
func (s StaffSpecialty) Valid() bool { return contains(StaffSpecialties, s) }

// SchoolType classifies a school's level or association.
type SchoolType string

// School types.
const (
	SchoolHighSchool  SchoolType = "High School"
	SchoolDivisionI   SchoolType = "Division I"
	SchoolDivisionII  SchoolType = "Division II"
	SchoolDivisionIII SchoolType = "Division III"
	SchoolNAIA        SchoolType = "NAIA"
	SchoolJUCO        SchoolType = "JUCO"
)

// SchoolTypes lists every valid school type.
var SchoolTypes = []SchoolType{
	SchoolHighSchool, SchoolDivisionI, SchoolDivisionII, SchoolDivisionIII, SchoolNAIA, SchoolJUCO,
}

// Valid reports whether t is a known school type.
func (t SchoolType) Valid() bool { return contains(SchoolTypes, t) }

// USState is a two-letter USPS state abbreviation.
type USState string

// USStates lists the 50 state abbreviations.
var USStates = []USState{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA",
	"HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD",
	"MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
	"NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC",
	"SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
}

// Valid reports whether s is one of the 50 state abbreviations.
func (s USState) Valid() bool { return contains(USStates, s) }

// TaskStatus is the workflow state of a task.
type TaskStatus string

// Task statuses.
const (
	TaskNotStarted TaskStatus = "Not Started"
	TaskInProgress TaskStatus = "In Progress"
	TaskComplete   TaskStatus = "Complete"
)

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskNotStarted, TaskInProgress, TaskComplete:
		return true
	}
	return false
}

// NILSourceType identifies where external NIL income originates.
type NILSourceType string

// External NIL sources.
const (
	NILSourceBrand       NILSourceType = "brand"
	NILSourceMarketplace NILSourceType = "marketplace"
	NILSourceCollective  NILSourceType = "collective"
)

// Valid reports whether s is a known NIL source.
func (s NILSourceType) Valid() bool {
	switch s {
	case NILSourceBrand, NILSourceMarketplace, NILSourceCollective:
		return true
	}
	return false
}

// AllocationType classifies an institutional allocation.
type AllocationType string

// Allocation types.
const (
	AllocationBaseline    AllocationType = "baseline"
	AllocationRecruiting  AllocationType = "recruiting"
	AllocationRetention   AllocationType = "retention"
	AllocationPerformance AllocationType = "performance"
)

// Valid reports whether t is a known allocation type.
func (t AllocationType) Valid() bool {
	switch t {
	case AllocationBaseline, AllocationRecruiting, AllocationRetention, AllocationPerformance:
		return true
	}
	return false
}

// AllocationStatus is the approval state of an allocation.
type AllocationStatus string

// Allocation statuses.
const (
	AllocationProposed AllocationStatus = "proposed"
	AllocationApproved AllocationStatus = "approved"
	AllocationActive   AllocationStatus = "active"
)

// Valid reports whether s is a known allocation status.
func (s AllocationStatus) Valid() bool {
	switch s {
	case AllocationProposed, AllocationApproved, AllocationActive:
		return true
	}
	return false
}

// PoolType distinguishes revenue-share and retention budgets.
type PoolType string

// Funding pool types.
const (
	PoolRevenueShare PoolType = "revenue_share"
	PoolRetention    PoolType = "retention_pool"
)

// Valid reports whether t is a known pool type.
func (t PoolType) Valid() bool { return t == PoolRevenueShare || t == PoolRetention }

// CapType controls whether a pool's total is enforced.
type CapType string

// Cap types.
const (
	CapHard CapType = "hard"
	CapSoft CapType = "soft"
)

// Valid reports whether t is a known cap type.
func (t CapType) Valid() bool { return t == CapHard || t == CapSoft }

func contains[T comparable](values []T, v T) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}

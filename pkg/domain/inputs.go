package domain

import "time"

// SchoolInput carries the caller-supplied fields of a new school.
type SchoolInput struct {
	Name  string
	City  *string
	State *USState
	Types []SchoolType
}

// SchoolPatch describes a partial school update.
type SchoolPatch struct {
	Name  Field[string]
	City  Field[string]
	State Field[USState]
	Types Field[[]SchoolType]
}

// PersonInput carries the shared person fields of a new player, coach or staff member.
type PersonInput struct {
	FirstName       string
	LastName        string
	Email           *string
	Phone           *string
	TwitterURL      *string
	LinkedInURL     *string
	InstagramURL    *string
	FacebookURL     *string
	TikTokURL       *string
	SchoolID        *string
	AssignedCoachID *string
}

// PersonPatch describes a partial update of the shared person fields. The
// person type is deliberately absent: it is fixed at creation.
type PersonPatch struct {
	FirstName       Field[string]
	LastName        Field[string]
	Email           Field[string]
	Phone           Field[string]
	TwitterURL      Field[string]
	LinkedInURL     Field[string]
	InstagramURL    Field[string]
	FacebookURL     Field[string]
	TikTokURL       Field[string]
	SchoolID        Field[string]
	AssignedCoachID Field[string]
}

// PlayerInput carries player extension fields.
type PlayerInput struct {
	Positions        []Position
	GradYear         *int
	YearsEligibility *int
	Priority         *int
	Likelihood       *int
}

// PlayerPatch describes a partial player extension update.
type PlayerPatch struct {
	Positions        Field[[]Position]
	GradYear         Field[int]
	YearsEligibility Field[int]
	Priority         Field[int]
	Likelihood       Field[int]
}

// CoachInput carries coach extension fields.
type CoachInput struct {
	Specialties     []CoachSpecialty
	CommittedSalary *float64
	EstimatedSalary *float64
}

// CoachPatch describes a partial coach extension update.
type CoachPatch struct {
	Specialties     Field[[]CoachSpecialty]
	CommittedSalary Field[float64]
	EstimatedSalary Field[float64]
}

// StaffInput carries staff extension fields.
type StaffInput struct {
	Specialties []StaffSpecialty
}

// StaffPatch describes a partial staff extension update.
type StaffPatch struct {
	Specialties Field[[]StaffSpecialty]
}

// RatingInput carries rating values for a new rating row.
type RatingInput struct {
	MaxPreps       *int
	Rating247      *int
	Composite247   *float64
	InternalRating *int
}

// RatingPatch describes a partial rating update (or the initial values on upsert).
type RatingPatch struct {
	MaxPreps       Field[int]
	Rating247      Field[int]
	Composite247   Field[float64]
	InternalRating Field[int]
}

// ExternalNILDealInput carries a new external NIL deal. PlayerID is ignored
// when the deal is nested in CreatePlayerInput.
type ExternalNILDealInput struct {
	PlayerID             string
	SourceType           NILSourceType
	CommittedAmount      *float64
	EstimatedAmount      *float64
	DeliverablesRequired bool
	StartDate            *time.Time
	EndDate              *time.Time
}

// ExternalNILDealPatch describes a partial deal update.
type ExternalNILDealPatch struct {
	PlayerID             Field[string]
	SourceType           Field[NILSourceType]
	CommittedAmount      Field[float64]
	EstimatedAmount      Field[float64]
	DeliverablesRequired Field[bool]
	StartDate            Field[time.Time]
	EndDate              Field[time.Time]
}

// InstitutionalAllocationInput carries a new allocation. PlayerID is ignored
// when the allocation is nested in CreatePlayerInput.
type InstitutionalAllocationInput struct {
	PlayerID          string
	AllocationType    AllocationType
	AnnualAmount      *float64
	RecruitingCycleID *string
	TeamID            *string
	CountsTowardCap   bool
	FundingPoolID     *string
	Status            AllocationStatus
}

// InstitutionalAllocationPatch describes a partial allocation update.
type InstitutionalAllocationPatch struct {
	PlayerID          Field[string]
	AllocationType    Field[AllocationType]
	AnnualAmount      Field[float64]
	RecruitingCycleID Field[string]
	TeamID            Field[string]
	CountsTowardCap   Field[bool]
	FundingPoolID     Field[string]
	Status            Field[AllocationStatus]
}

// FundingPoolInput carries a new funding pool.
type FundingPoolInput struct {
	TeamID            string
	RecruitingCycleID *string
	PoolType          PoolType
	TotalAmount       float64
	AllocatedAmount   float64
	CapType           CapType
}

// FundingPoolPatch describes a partial pool update.
type FundingPoolPatch struct {
	TeamID            Field[string]
	RecruitingCycleID Field[string]
	PoolType          Field[PoolType]
	TotalAmount       Field[float64]
	AllocatedAmount   Field[float64]
	CapType           Field[CapType]
}

// TaskInput carries a new task.
type TaskInput struct {
	PersonID    string
	Status      TaskStatus
	DueDate     *time.Time
	Description string
}

// TaskPatch describes a partial task update.
type TaskPatch struct {
	PersonID    Field[string]
	Status      Field[TaskStatus]
	DueDate     Field[time.Time]
	Description Field[string]
}

// CreatePlayerInput creates a player together with its optional rating and NIL records.
type CreatePlayerInput struct {
	Person                   PersonInput
	Player                   PlayerInput
	Rating                   *RatingInput
	ExternalNILDeals         []ExternalNILDealInput
	InstitutionalAllocations []InstitutionalAllocationInput
}

// UpdatePlayerInput patches a player; a non-nil Rating is upserted.
type UpdatePlayerInput struct {
	Person PersonPatch
	Player PlayerPatch
	Rating *RatingPatch
}

// CreateCoachInput creates a coach.
type CreateCoachInput struct {
	Person PersonInput
	Coach  CoachInput
}

// UpdateCoachInput patches a coach.
type UpdateCoachInput struct {
	Person PersonPatch
	Coach  CoachPatch
}

// CreateStaffInput creates a staff member.
type CreateStaffInput struct {
	Person PersonInput
	Staff  StaffInput
}

// UpdateStaffInput patches a staff member.
type UpdateStaffInput struct {
	Person PersonPatch
	Staff  StaffPatch
}

// Package seed loads a small demonstration ledger through the public
// service API.
package seed

import (
	"context"
	"fmt"
	"recruitledger/internal/core"
	"recruitledger/pkg/domain"

	"go.uber.org/zap"
)

// Result summarises what Sample wrote.
type Result struct {
	Skipped bool
	Schools int
	People  int
	Pools   int
}

type school struct {
	key   string
	name  string
	city  string
	state domain.USState
	kind  domain.SchoolType
}

var schools = []school{
	{"lincoln", "Lincoln High School", "Los Angeles", "CA", domain.SchoolHighSchool},
	{"central", "Central High", "Miami", "FL", domain.SchoolHighSchool},
	{"state", "State University", "Austin", "TX", domain.SchoolDivisionI},
	{"columbia", "Columbia University", "New York", "NY", domain.SchoolDivisionI},
}

type pool struct {
	key       string
	cycle     string
	kind      domain.PoolType
	total     float64
	allocated float64
	cap       domain.CapType
}

var pools = []pool{
	{"fb2024", "2024", domain.PoolRevenueShare, 500000, 25000, domain.CapHard},
	{"fb2025", "2025", domain.PoolRevenueShare, 750000, 75000, domain.CapHard},
	{"retention2025", "2025", domain.PoolRetention, 300000, 0, domain.CapSoft},
}

type coach struct {
	key, first, last, email, phone, school string
	specialties                            []domain.CoachSpecialty
	salary                                 float64
}

var coaches = []coach{
	{"alvarez", "Carlos", "Alvarez", "calvarez@central.edu", "(555) 123-4567", "central",
		[]domain.CoachSpecialty{domain.CoachOffense, domain.CoachQBs}, 85000},
	{"johnson", "Mike", "Johnson", "mjohnson@columbia.edu", "(555) 234-5678", "columbia",
		[]domain.CoachSpecialty{domain.CoachDefense, domain.CoachSecondary}, 120000},
}

type allocation struct {
	kind   domain.AllocationType
	amount float64
	pool   string
	cycle  string
	status domain.AllocationStatus
}

type deal struct {
	source       domain.NILSourceType
	estimated    float64
	deliverables bool
}

type player struct {
	first, last, email, phone, twitter, instagram string
	school, coach                                 string
	positions                                     []domain.Position
	gradYear, eligibility, priority, likelihood   int
	maxPreps, rating247, internal                 int // zero means unrated
	composite                                     float64
	allocations                                   []allocation
	deals                                         []deal
}

var players = []player{
	{
		first: "Marcus", last: "Johnson", email: "marcus.j@email.com", phone: "(555) 111-2222",
		twitter: "https://twitter.com/marcusj", instagram: "https://instagram.com/marcusj",
		school: "lincoln", coach: "johnson", positions: []domain.Position{domain.PositionQB},
		gradYear: 2025, eligibility: 4, priority: 5, likelihood: 4,
		maxPreps: 4, rating247: 4, internal: 5, composite: 92.1,
		deals: []deal{{domain.NILSourceCollective, 50000, false}},
	},
	{
		first: "Tyler", last: "Davis", email: "tyler.d@email.com",
		twitter: "https://twitter.com/tdavis", instagram: "https://instagram.com/tdavis",
		school: "state", positions: []domain.Position{domain.PositionWR},
		gradYear: 2024, eligibility: 2, priority: 4, likelihood: 3,
		maxPreps: 3, rating247: 3, internal: 4, composite: 87.4,
		allocations: []allocation{{domain.AllocationBaseline, 25000, "fb2024", "2024", domain.AllocationActive}},
		deals:       []deal{{domain.NILSourceBrand, 35000, true}},
	},
	{
		first: "Derek", last: "Williams", email: "derek.w@email.com", phone: "(555) 333-4444",
		school: "central", coach: "alvarez", positions: []domain.Position{domain.PositionRB},
		gradYear: 2025, eligibility: 4, priority: 5, likelihood: 5,
		maxPreps: 5, rating247: 5, internal: 5, composite: 96.5,
		allocations: []allocation{{domain.AllocationRecruiting, 75000, "fb2025", "2025", domain.AllocationApproved}},
	},
	{
		first: "Leah", last: "Chen", email: "leah.chen@email.com",
		instagram: "https://instagram.com/leahchen",
		school: "state", positions: []domain.Position{domain.PositionCB, domain.PositionS},
		gradYear: 2024, eligibility: 1, priority: 3, likelihood: 3,
		maxPreps: 4, rating247: 4, internal: 4, composite: 90.2,
		deals: []deal{{domain.NILSourceMarketplace, 30000, true}},
	},
	{
		first: "Jordan", last: "Price", email: "jprice@email.com",
		twitter: "https://twitter.com/jprice",
		school: "state", positions: []domain.Position{domain.PositionWR, domain.PositionATH},
		gradYear: 2026, eligibility: 4, priority: 4, likelihood: 2,
		rating247: 4, internal: 3, composite: 88.3,
		deals: []deal{{domain.NILSourceCollective, 40000, false}},
	},
}

type staffer struct {
	first, last, email, phone, school string
	specialties                       []domain.StaffSpecialty
}

var staff = []staffer{
	{"Sarah", "Martinez", "smartinez@columbia.edu", "(555) 555-6789", "columbia",
		[]domain.StaffSpecialty{domain.StaffRecruiting, domain.StaffOperations}},
	{"James", "Thompson", "jthompson@central.edu", "(555) 666-7890", "central",
		[]domain.StaffSpecialty{domain.StaffFinance, domain.StaffAdmin}},
}

// Sample writes the demonstration ledger unless any school or person
// already exists.
func Sample(ctx context.Context, svc *core.Service, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	existingSchools, err := svc.ListSchools(ctx)
	if err != nil {
		return Result{}, err
	}
	existingPeople, err := svc.ListPeople(ctx)
	if err != nil {
		return Result{}, err
	}
	if len(existingSchools) > 0 || len(existingPeople) > 0 {
		logger.Info("sample data already present, skipping seed",
			zap.Int("schools", len(existingSchools)), zap.Int("people", len(existingPeople)))
		return Result{Skipped: true}, nil
	}

	var res Result
	schoolIDs := make(map[string]string, len(schools))
	for _, s := range schools {
		created, err := svc.CreateSchool(ctx, domain.SchoolInput{
			Name:  s.name,
			City:  ptr(s.city),
			State: ptr(s.state),
			Types: []domain.SchoolType{s.kind},
		})
		if err != nil {
			return res, fmt.Errorf("seed school %s: %w", s.name, err)
		}
		schoolIDs[s.key] = created.ID
		res.Schools++
	}

	poolIDs := make(map[string]string, len(pools))
	for _, p := range pools {
		created, err := svc.CreateFundingPool(ctx, domain.FundingPoolInput{
			TeamID:            "Football",
			RecruitingCycleID: ptr(p.cycle),
			PoolType:          p.kind,
			TotalAmount:       p.total,
			AllocatedAmount:   p.allocated,
			CapType:           p.cap,
		})
		if err != nil {
			return res, fmt.Errorf("seed funding pool %s: %w", p.key, err)
		}
		poolIDs[p.key] = created.ID
		res.Pools++
	}

	coachIDs := make(map[string]string, len(coaches))
	for _, c := range coaches {
		created, err := svc.CreateCoach(ctx, domain.CreateCoachInput{
			Person: domain.PersonInput{
				FirstName: c.first,
				LastName:  c.last,
				Email:     ptr(c.email),
				Phone:     ptr(c.phone),
				SchoolID:  ptr(schoolIDs[c.school]),
			},
			Coach: domain.CoachInput{
				Specialties:     c.specialties,
				CommittedSalary: ptr(c.salary),
				EstimatedSalary: ptr(c.salary),
			},
		})
		if err != nil {
			return res, fmt.Errorf("seed coach %s %s: %w", c.first, c.last, err)
		}
		coachIDs[c.key] = created.ID
		res.People++
	}

	for _, p := range players {
		in := domain.CreatePlayerInput{
			Person: domain.PersonInput{
				FirstName:       p.first,
				LastName:        p.last,
				Email:           optional(p.email),
				Phone:           optional(p.phone),
				TwitterURL:      optional(p.twitter),
				InstagramURL:    optional(p.instagram),
				SchoolID:        ptr(schoolIDs[p.school]),
				AssignedCoachID: optional(coachIDs[p.coach]),
			},
			Player: domain.PlayerInput{
				Positions:        p.positions,
				GradYear:         ptr(p.gradYear),
				YearsEligibility: ptr(p.eligibility),
				Priority:         ptr(p.priority),
				Likelihood:       ptr(p.likelihood),
			},
			Rating: &domain.RatingInput{
				MaxPreps:       optionalInt(p.maxPreps),
				Rating247:      optionalInt(p.rating247),
				Composite247:   ptr(p.composite),
				InternalRating: optionalInt(p.internal),
			},
		}
		for _, d := range p.deals {
			in.ExternalNILDeals = append(in.ExternalNILDeals, domain.ExternalNILDealInput{
				SourceType:           d.source,
				EstimatedAmount:      ptr(d.estimated),
				DeliverablesRequired: d.deliverables,
			})
		}
		for _, a := range p.allocations {
			in.InstitutionalAllocations = append(in.InstitutionalAllocations, domain.InstitutionalAllocationInput{
				AllocationType:    a.kind,
				AnnualAmount:      ptr(a.amount),
				RecruitingCycleID: ptr(a.cycle),
				TeamID:            ptr("Football"),
				CountsTowardCap:   true,
				FundingPoolID:     ptr(poolIDs[a.pool]),
				Status:            a.status,
			})
		}
		if _, err := svc.CreatePlayer(ctx, in); err != nil {
			return res, fmt.Errorf("seed player %s %s: %w", p.first, p.last, err)
		}
		res.People++
	}

	for _, s := range staff {
		_, err := svc.CreateStaff(ctx, domain.CreateStaffInput{
			Person: domain.PersonInput{
				FirstName: s.first,
				LastName:  s.last,
				Email:     ptr(s.email),
				Phone:     ptr(s.phone),
				SchoolID:  ptr(schoolIDs[s.school]),
			},
			Staff: domain.StaffInput{Specialties: s.specialties},
		})
		if err != nil {
			return res, fmt.Errorf("seed staff %s %s: %w", s.first, s.last, err)
		}
		res.People++
	}

	logger.Info("sample data seeded",
		zap.Int("schools", res.Schools), zap.Int("people", res.People), zap.Int("funding_pools", res.Pools))
	return res, nil
}

func ptr[T any](v T) *T { return &v }

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalInt(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

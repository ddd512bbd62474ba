package core_test

import (
	"context"
	"recruitledger/internal/core"
	"recruitledger/internal/infra/persistence/memory"
	"recruitledger/pkg/domain"
	"sync"
	"testing"
	"time"
)

// stepClock returns a strictly increasing time on every call.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

// frozenClock always reports the same instant.
func frozenClock() time.Time {
	return time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
}

func newTestService(t *testing.T, opts ...core.Option) (*core.Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	all := append([]core.Option{core.WithClock(newStepClock().Now)}, opts...)
	return core.NewService(store, all...), store
}

func ptr[T any](v T) *T { return &v }

func mustSchool(t *testing.T, svc *core.Service, name, city string, state domain.USState) domain.School {
	t.Helper()
	school, err := svc.CreateSchool(context.Background(), domain.SchoolInput{
		Name:  name,
		City:  ptr(city),
		State: ptr(state),
		Types: []domain.SchoolType{domain.SchoolHighSchool},
	})
	if err != nil {
		t.Fatalf("create school %s: %v", name, err)
	}
	return school
}

func mustPlayer(t *testing.T, svc *core.Service, in domain.CreatePlayerInput) *domain.PlayerFull {
	t.Helper()
	player, err := svc.CreatePlayer(context.Background(), in)
	if err != nil {
		t.Fatalf("create player %s %s: %v", in.Person.FirstName, in.Person.LastName, err)
	}
	return player
}

func mustCoach(t *testing.T, svc *core.Service, first, last string, schoolID *string) *domain.CoachFull {
	t.Helper()
	coach, err := svc.CreateCoach(context.Background(), domain.CreateCoachInput{
		Person: domain.PersonInput{FirstName: first, LastName: last, SchoolID: schoolID},
		Coach:  domain.CoachInput{Specialties: []domain.CoachSpecialty{domain.CoachOffense}},
	})
	if err != nil {
		t.Fatalf("create coach %s %s: %v", first, last, err)
	}
	return coach
}

func mustStaff(t *testing.T, svc *core.Service, first, last string, schoolID *string) *domain.StaffFull {
	t.Helper()
	staff, err := svc.CreateStaff(context.Background(), domain.CreateStaffInput{
		Person: domain.PersonInput{FirstName: first, LastName: last, SchoolID: schoolID},
		Staff:  domain.StaffInput{Specialties: []domain.StaffSpecialty{domain.StaffFinance}},
	})
	if err != nil {
		t.Fatalf("create staff %s %s: %v", first, last, err)
	}
	return staff
}

func mustPool(t *testing.T, svc *core.Service, total float64, capType domain.CapType) domain.FundingPool {
	t.Helper()
	pool, err := svc.CreateFundingPool(context.Background(), domain.FundingPoolInput{
		TeamID:            "football",
		RecruitingCycleID: ptr("2025"),
		PoolType:          domain.PoolRevenueShare,
		TotalAmount:       total,
		CapType:           capType,
	})
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	return pool
}

func player(first, last string) domain.CreatePlayerInput {
	return domain.CreatePlayerInput{
		Person: domain.PersonInput{FirstName: first, LastName: last},
		Player: domain.PlayerInput{Positions: []domain.Position{domain.PositionWR}},
	}
}

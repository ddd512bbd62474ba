package core

import (
	"context"
	"fmt"
	"recruitledger/pkg/domain"
)

// hydrator attaches joined records to people. Schools and coaches are cached
// so listing many people reads each shared parent once.
type hydrator struct {
	ctx     context.Context
	r       domain.Reader
	schools map[string]*domain.School
	coaches map[string]*domain.CoachFull
}

func newHydrator(ctx context.Context, r domain.Reader) *hydrator {
	return &hydrator{
		ctx:     ctx,
		r:       r,
		schools: make(map[string]*domain.School),
		coaches: make(map[string]*domain.CoachFull),
	}
}

func missingExtension(p domain.Person) error {
	return fmt.Errorf("person %s: %s row missing", p.ID, extensionCollection(p.Type))
}

func (h *hydrator) person(p domain.Person) (domain.PersonFull, error) {
	switch p.Type {
	case domain.PersonPlayer:
		return h.player(p)
	case domain.PersonCoach:
		return h.coach(p)
	case domain.PersonStaff:
		return h.staff(p)
	default:
		return nil, fmt.Errorf("person %s: unknown type %q", p.ID, p.Type)
	}
}

func (h *hydrator) view(p domain.Person) (domain.PersonView, error) {
	view := domain.PersonView{Person: p}
	school, err := h.school(p.SchoolID)
	if err != nil {
		return view, err
	}
	view.School = school
	tasks, err := loadByIndex[domain.Task](h.ctx, h.r, domain.CollectionTasks, domain.IndexPersonID, p.ID)
	if err != nil {
		return view, err
	}
	sortTasks(tasks)
	view.Tasks = tasks
	return view, nil
}

// school resolves a school reference. A dangling id hydrates as no school.
func (h *hydrator) school(id *string) (*domain.School, error) {
	if id == nil {
		return nil, nil
	}
	if cached, ok := h.schools[*id]; ok {
		return cached, nil
	}
	school, ok, err := load[domain.School](h.ctx, h.r, domain.CollectionSchools, *id)
	if err != nil {
		return nil, err
	}
	var out *domain.School
	if ok {
		out = &school
	}
	h.schools[*id] = out
	return out, nil
}

func (h *hydrator) player(p domain.Person) (*domain.PlayerFull, error) {
	profile, ok, err := load[domain.PlayerProfile](h.ctx, h.r, domain.CollectionPlayers, p.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, missingExtension(p)
	}
	view, err := h.view(p)
	if err != nil {
		return nil, err
	}
	full := &domain.PlayerFull{PersonView: view, Player: profile}

	ratings, err := loadByIndex[domain.PlayerRating](h.ctx, h.r, domain.CollectionPlayerRatings, domain.IndexPlayerID, p.ID)
	if err != nil {
		return nil, err
	}
	if len(ratings) > 0 {
		full.Rating = &ratings[0]
	}
	if full.ExternalNILDeals, err = loadByIndex[domain.ExternalNILDeal](h.ctx, h.r, domain.CollectionExternalNILDeals, domain.IndexPlayerID, p.ID); err != nil {
		return nil, err
	}
	sortByCreated(full.ExternalNILDeals, func(d domain.ExternalNILDeal) domain.Base { return d.Base })
	if full.InstitutionalAllocations, err = loadByIndex[domain.InstitutionalAllocation](h.ctx, h.r, domain.CollectionInstitutionalAllocations, domain.IndexPlayerID, p.ID); err != nil {
		return nil, err
	}
	sortByCreated(full.InstitutionalAllocations, func(a domain.InstitutionalAllocation) domain.Base { return a.Base })

	if p.AssignedCoachID != nil {
		coach, err := h.assignedCoach(*p.AssignedCoachID)
		if err != nil {
			return nil, err
		}
		full.AssignedCoach = coach
	}
	return full, nil
}

func (h *hydrator) assignedCoach(id string) (*domain.CoachFull, error) {
	if cached, ok := h.coaches[id]; ok {
		return cached, nil
	}
	person, ok, err := load[domain.Person](h.ctx, h.r, domain.CollectionPeople, id)
	if err != nil {
		return nil, err
	}
	var coach *domain.CoachFull
	if ok && person.Type == domain.PersonCoach {
		if coach, err = h.coach(person); err != nil {
			return nil, err
		}
	}
	h.coaches[id] = coach
	return coach, nil
}

func (h *hydrator) coach(p domain.Person) (*domain.CoachFull, error) {
	profile, ok, err := load[domain.CoachProfile](h.ctx, h.r, domain.CollectionCoaches, p.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, missingExtension(p)
	}
	view, err := h.view(p)
	if err != nil {
		return nil, err
	}
	return &domain.CoachFull{PersonView: view, Coach: profile}, nil
}

func (h *hydrator) staff(p domain.Person) (*domain.StaffFull, error) {
	profile, ok, err := load[domain.StaffProfile](h.ctx, h.r, domain.CollectionStaff, p.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, missingExtension(p)
	}
	view, err := h.view(p)
	if err != nil {
		return nil, err
	}
	return &domain.StaffFull{PersonView: view, Staff: profile}, nil
}

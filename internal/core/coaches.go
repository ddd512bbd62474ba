package core

import (
	"context"
	"recruitledger/pkg/domain"
)

// CreateCoach persists a coach.
func (s *Service) CreateCoach(ctx context.Context, in domain.CreateCoachInput) (*domain.CoachFull, error) {
	person := s.newPerson(in.Person, domain.PersonCoach)
	profile := domain.CoachProfile{
		PersonID:        person.ID,
		Specialties:     domain.Dedupe(in.Coach.Specialties),
		CommittedSalary: clonePtr(in.Coach.CommittedSalary),
		EstimatedSalary: clonePtr(in.Coach.EstimatedSalary),
	}
	err := s.mutate(ctx, "CreateCoach", func(tx domain.Transaction) error {
		return writePerson(ctx, tx, person, profile)
	})
	if err != nil {
		return nil, err
	}
	return newHydrator(ctx, s.store).coach(person)
}

// GetCoach returns the hydrated coach with id. People of another type are reported absent.
func (s *Service) GetCoach(ctx context.Context, id string) (*domain.CoachFull, bool, error) {
	var full *domain.CoachFull
	err := s.read(ctx, "GetCoach", func(r domain.Reader) error {
		person, ok, err := load[domain.Person](ctx, r, domain.CollectionPeople, id)
		if err != nil || !ok || person.Type != domain.PersonCoach {
			return err
		}
		full, err = newHydrator(ctx, r).coach(person)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return full, full != nil, nil
}

// ListCoaches returns every coach ordered by last then first name.
func (s *Service) ListCoaches(ctx context.Context) ([]*domain.CoachFull, error) {
	var out []*domain.CoachFull
	err := s.read(ctx, "ListCoaches", func(r domain.Reader) error {
		people, err := loadByIndex[domain.Person](ctx, r, domain.CollectionPeople, domain.IndexType, string(domain.PersonCoach))
		if err != nil {
			return err
		}
		h := newHydrator(ctx, r)
		out = make([]*domain.CoachFull, 0, len(people))
		for _, p := range people {
			full, err := h.coach(p)
			if err != nil {
				return err
			}
			out = append(out, full)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortPeople(out)
	return out, nil
}

// UpdateCoach patches a coach.
func (s *Service) UpdateCoach(ctx context.Context, id string, in domain.UpdateCoachInput) (*domain.CoachFull, bool, error) {
	var (
		person domain.Person
		found  bool
	)
	err := s.mutate(ctx, "UpdateCoach", func(tx domain.Transaction) error {
		var (
			profile domain.CoachProfile
			err     error
		)
		person, profile, found, err = loadTyped[domain.CoachProfile](ctx, tx, id, domain.PersonCoach)
		if err != nil || !found {
			return err
		}
		if err := applyPersonPatch(&person, in.Person); err != nil {
			return err
		}
		applySet(in.Coach.Specialties, &profile.Specialties)
		in.Coach.CommittedSalary.ApplyToPtr(&profile.CommittedSalary)
		in.Coach.EstimatedSalary.ApplyToPtr(&profile.EstimatedSalary)
		s.touch(&person.Base)
		return writePerson(ctx, tx, person, profile)
	})
	if err != nil || !found {
		return nil, false, err
	}
	full, err := newHydrator(ctx, s.store).coach(person)
	if err != nil {
		return nil, false, err
	}
	return full, true, nil
}

// DeleteCoach removes a coach and its tasks. Players assigned to the coach
// keep their rows with assigned_coach_id cleared.
func (s *Service) DeleteCoach(ctx context.Context, id string) (bool, error) {
	return s.deletePerson(ctx, "DeleteCoach", id, domain.PersonCoach)
}

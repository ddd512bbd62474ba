package core

import (
	"context"
	"recruitledger/pkg/domain"
)

// CreateStaff persists a staff member.
func (s *Service) CreateStaff(ctx context.Context, in domain.CreateStaffInput) (*domain.StaffFull, error) {
	person := s.newPerson(in.Person, domain.PersonStaff)
	profile := domain.StaffProfile{PersonID: person.ID, Specialties: domain.Dedupe(in.Staff.Specialties)}
	err := s.mutate(ctx, "CreateStaff", func(tx domain.Transaction) error {
		return writePerson(ctx, tx, person, profile)
	})
	if err != nil {
		return nil, err
	}
	return newHydrator(ctx, s.store).staff(person)
}

// GetStaff returns the hydrated staff member with id.
func (s *Service) GetStaff(ctx context.Context, id string) (*domain.StaffFull, bool, error) {
	var full *domain.StaffFull
	err := s.read(ctx, "GetStaff", func(r domain.Reader) error {
		person, ok, err := load[domain.Person](ctx, r, domain.CollectionPeople, id)
		if err != nil || !ok || person.Type != domain.PersonStaff {
			return err
		}
		full, err = newHydrator(ctx, r).staff(person)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return full, full != nil, nil
}

// ListStaff returns every staff member ordered by last then first name.
func (s *Service) ListStaff(ctx context.Context) ([]*domain.StaffFull, error) {
	var out []*domain.StaffFull
	err := s.read(ctx, "ListStaff", func(r domain.Reader) error {
		people, err := loadByIndex[domain.Person](ctx, r, domain.CollectionPeople, domain.IndexType, string(domain.PersonStaff))
		if err != nil {
			return err
		}
		h := newHydrator(ctx, r)
		out = make([]*domain.StaffFull, 0, len(people))
		for _, p := range people {
			full, err := h.staff(p)
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

// UpdateStaff patches a staff member.
func (s *Service) UpdateStaff(ctx context.Context, id string, in domain.UpdateStaffInput) (*domain.StaffFull, bool, error) {
	var (
		person domain.Person
		found  bool
	)
	err := s.mutate(ctx, "UpdateStaff", func(tx domain.Transaction) error {
		var (
			profile domain.StaffProfile
			err     error
		)
		person, profile, found, err = loadTyped[domain.StaffProfile](ctx, tx, id, domain.PersonStaff)
		if err != nil || !found {
			return err
		}
		if err := applyPersonPatch(&person, in.Person); err != nil {
			return err
		}
		applySet(in.Staff.Specialties, &profile.Specialties)
		s.touch(&person.Base)
		return writePerson(ctx, tx, person, profile)
	})
	if err != nil || !found {
		return nil, false, err
	}
	full, err := newHydrator(ctx, s.store).staff(person)
	if err != nil {
		return nil, false, err
	}
	return full, true, nil
}

// DeleteStaff removes a staff member and their tasks.
func (s *Service) DeleteStaff(ctx context.Context, id string) (bool, error) {
	return s.deletePerson(ctx, "DeleteStaff", id, domain.PersonStaff)
}

package core

import (
	"context"
	"recruitledger/pkg/domain"
	"strings"
)

// CreateSchool persists a new school.
func (s *Service) CreateSchool(ctx context.Context, in domain.SchoolInput) (domain.School, error) {
	school := domain.School{
		Base:  s.newBase(),
		Name:  strings.TrimSpace(in.Name),
		City:  trimPtr(in.City),
		State: clonePtr(in.State),
		Types: domain.Dedupe(in.Types),
	}
	err := s.mutate(ctx, "CreateSchool", func(tx domain.Transaction) error {
		if err := school.Validate(); err != nil {
			return err
		}
		return put(ctx, tx, domain.CollectionSchools, school)
	})
	if err != nil {
		return domain.School{}, err
	}
	return school, nil
}

// GetSchool returns the school with id.
func (s *Service) GetSchool(ctx context.Context, id string) (domain.School, bool, error) {
	var (
		school domain.School
		ok     bool
	)
	err := s.read(ctx, "GetSchool", func(r domain.Reader) error {
		var err error
		school, ok, err = load[domain.School](ctx, r, domain.CollectionSchools, id)
		return err
	})
	return school, ok, err
}

// ListSchools returns every school ordered by name.
func (s *Service) ListSchools(ctx context.Context) ([]domain.School, error) {
	var schools []domain.School
	err := s.read(ctx, "ListSchools", func(r domain.Reader) error {
		var err error
		schools, err = loadAll[domain.School](ctx, r, domain.CollectionSchools)
		return err
	})
	if err != nil {
		return nil, err
	}
	sortSchools(schools)
	return schools, nil
}

// UpdateSchool applies patch to the school with id.
func (s *Service) UpdateSchool(ctx context.Context, id string, patch domain.SchoolPatch) (domain.School, bool, error) {
	var (
		school domain.School
		found  bool
	)
	err := s.mutate(ctx, "UpdateSchool", func(tx domain.Transaction) error {
		var err error
		school, found, err = load[domain.School](ctx, tx, domain.CollectionSchools, id)
		if err != nil || !found {
			return err
		}
		if err := applyRequired(domain.CollectionSchools, "name", patch.Name, &school.Name); err != nil {
			return err
		}
		school.Name = strings.TrimSpace(school.Name)
		patch.City.ApplyToPtr(&school.City)
		school.City = trimPtr(school.City)
		patch.State.ApplyToPtr(&school.State)
		applySet(patch.Types, &school.Types)
		if err := school.Validate(); err != nil {
			return err
		}
		s.touch(&school.Base)
		return put(ctx, tx, domain.CollectionSchools, school)
	})
	if err != nil || !found {
		return domain.School{}, false, err
	}
	return school, true, nil
}

// DeleteSchool removes a school and clears school_id on every affiliated person.
func (s *Service) DeleteSchool(ctx context.Context, id string) (bool, error) {
	var found bool
	err := s.mutate(ctx, "DeleteSchool", func(tx domain.Transaction) error {
		var err error
		_, found, err = tx.Get(ctx, domain.CollectionSchools, id)
		if err != nil || !found {
			return err
		}
		if err := s.nullifySchoolReferences(ctx, tx, id); err != nil {
			return err
		}
		return tx.Delete(ctx, domain.CollectionSchools, id)
	})
	return found, err
}

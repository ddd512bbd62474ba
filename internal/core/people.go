package core

import (
	"context"
	"recruitledger/pkg/domain"
	"strings"
)

func (s *Service) newPerson(in domain.PersonInput, t domain.PersonType) domain.Person {
	return domain.Person{
		Base:            s.newBase(),
		FirstName:       strings.TrimSpace(in.FirstName),
		LastName:        strings.TrimSpace(in.LastName),
		Email:           trimPtr(in.Email),
		Phone:           trimPtr(in.Phone),
		TwitterURL:      trimPtr(in.TwitterURL),
		LinkedInURL:     trimPtr(in.LinkedInURL),
		InstagramURL:    trimPtr(in.InstagramURL),
		FacebookURL:     trimPtr(in.FacebookURL),
		TikTokURL:       trimPtr(in.TikTokURL),
		Type:            t,
		SchoolID:        clonePtr(in.SchoolID),
		AssignedCoachID: clonePtr(in.AssignedCoachID),
	}
}

func applyPersonPatch(p *domain.Person, patch domain.PersonPatch) error {
	if err := applyRequired(domain.CollectionPeople, "first_name", patch.FirstName, &p.FirstName); err != nil {
		return err
	}
	if err := applyRequired(domain.CollectionPeople, "last_name", patch.LastName, &p.LastName); err != nil {
		return err
	}
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	for _, f := range []struct {
		patch domain.Field[string]
		dst   **string
	}{
		{patch.Email, &p.Email},
		{patch.Phone, &p.Phone},
		{patch.TwitterURL, &p.TwitterURL},
		{patch.LinkedInURL, &p.LinkedInURL},
		{patch.InstagramURL, &p.InstagramURL},
		{patch.FacebookURL, &p.FacebookURL},
		{patch.TikTokURL, &p.TikTokURL},
	} {
		f.patch.ApplyToPtr(f.dst)
		*f.dst = trimPtr(*f.dst)
	}
	patch.SchoolID.ApplyToPtr(&p.SchoolID)
	patch.AssignedCoachID.ApplyToPtr(&p.AssignedCoachID)
	return nil
}

// writePerson validates a person row with its extension and writes both.
func writePerson(ctx context.Context, tx domain.Transaction, p domain.Person, ext interface {
	domain.Record
	Validate() error
}) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := ext.Validate(); err != nil {
		return err
	}
	if err := validatePersonReferences(ctx, tx, p); err != nil {
		return err
	}
	if err := put(ctx, tx, domain.CollectionPeople, p); err != nil {
		return err
	}
	return put(ctx, tx, extensionCollection(p.Type), ext)
}

// loadTyped loads a person and its extension row, reporting absent when the
// person does not exist or is not of type want.
func loadTyped[E any](ctx context.Context, r domain.Reader, id string, want domain.PersonType) (domain.Person, E, bool, error) {
	var ext E
	person, ok, err := load[domain.Person](ctx, r, domain.CollectionPeople, id)
	if err != nil || !ok || person.Type != want {
		return domain.Person{}, ext, false, err
	}
	ext, ok, err = load[E](ctx, r, extensionCollection(want), id)
	if err != nil {
		return domain.Person{}, ext, false, err
	}
	if !ok {
		return domain.Person{}, ext, false, missingExtension(person)
	}
	return person, ext, true, nil
}

// GetPerson returns any person hydrated as its concrete variant.
func (s *Service) GetPerson(ctx context.Context, id string) (domain.PersonFull, bool, error) {
	var (
		full domain.PersonFull
		ok   bool
	)
	err := s.read(ctx, "GetPerson", func(r domain.Reader) error {
		person, found, err := load[domain.Person](ctx, r, domain.CollectionPeople, id)
		if err != nil || !found {
			return err
		}
		full, err = newHydrator(ctx, r).person(person)
		ok = err == nil
		return err
	})
	return full, ok, err
}

// ListPeople returns every person ordered by last then first name.
func (s *Service) ListPeople(ctx context.Context) ([]domain.PersonFull, error) {
	var out []domain.PersonFull
	err := s.read(ctx, "ListPeople", func(r domain.Reader) error {
		people, err := loadAll[domain.Person](ctx, r, domain.CollectionPeople)
		if err != nil {
			return err
		}
		h := newHydrator(ctx, r)
		out = make([]domain.PersonFull, 0, len(people))
		for _, p := range people {
			full, err := h.person(p)
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

// DeletePerson removes a person of any type together with its dependents.
func (s *Service) DeletePerson(ctx context.Context, id string) (bool, error) {
	return s.deletePerson(ctx, "DeletePerson", id, "")
}

func (s *Service) deletePerson(ctx context.Context, op, id string, want domain.PersonType) (bool, error) {
	var found bool
	err := s.mutate(ctx, op, func(tx domain.Transaction) error {
		person, ok, err := load[domain.Person](ctx, tx, domain.CollectionPeople, id)
		if err != nil || !ok {
			return err
		}
		if want != "" && person.Type != want {
			return nil
		}
		found = true
		return s.cascadeDeletePerson(ctx, tx, person)
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

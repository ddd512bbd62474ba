package core

import (
	"context"
	"fmt"
	"recruitledger/pkg/domain"
)

func newPlayerProfile(id string, in domain.PlayerInput) domain.PlayerProfile {
	return domain.PlayerProfile{
		PersonID:         id,
		Positions:        domain.Dedupe(in.Positions),
		GradYear:         clonePtr(in.GradYear),
		YearsEligibility: clonePtr(in.YearsEligibility),
		Priority:         clonePtr(in.Priority),
		Likelihood:       clonePtr(in.Likelihood),
	}
}

func applyPlayerPatch(p *domain.PlayerProfile, patch domain.PlayerPatch) {
	applySet(patch.Positions, &p.Positions)
	patch.GradYear.ApplyToPtr(&p.GradYear)
	patch.YearsEligibility.ApplyToPtr(&p.YearsEligibility)
	patch.Priority.ApplyToPtr(&p.Priority)
	patch.Likelihood.ApplyToPtr(&p.Likelihood)
}

// CreatePlayer persists a player together with an optional rating and any
// nested NIL records in a single transaction, returning the hydrated player.
func (s *Service) CreatePlayer(ctx context.Context, in domain.CreatePlayerInput) (*domain.PlayerFull, error) {
	person := s.newPerson(in.Person, domain.PersonPlayer)
	profile := newPlayerProfile(person.ID, in.Player)
	err := s.mutate(ctx, "CreatePlayer", func(tx domain.Transaction) error {
		if err := writePerson(ctx, tx, person, profile); err != nil {
			return err
		}
		if in.Rating != nil {
			rating := s.newRating(person.ID, *in.Rating)
			if err := rating.Validate(); err != nil {
				return err
			}
			if err := put(ctx, tx, domain.CollectionPlayerRatings, rating); err != nil {
				return err
			}
		}
		for _, dealIn := range in.ExternalNILDeals {
			dealIn.PlayerID = person.ID
			if err := s.insertExternalNILDeal(ctx, tx, s.newExternalNILDeal(dealIn)); err != nil {
				return err
			}
		}
		for _, allocIn := range in.InstitutionalAllocations {
			allocIn.PlayerID = person.ID
			if err := s.writeAllocation(ctx, tx, s.newAllocation(allocIn)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.hydratePlayer(ctx, person.ID)
}

// GetPlayer returns the hydrated player with id. People of another type are reported absent.
func (s *Service) GetPlayer(ctx context.Context, id string) (*domain.PlayerFull, bool, error) {
	var full *domain.PlayerFull
	err := s.read(ctx, "GetPlayer", func(r domain.Reader) error {
		person, ok, err := load[domain.Person](ctx, r, domain.CollectionPeople, id)
		if err != nil || !ok || person.Type != domain.PersonPlayer {
			return err
		}
		full, err = newHydrator(ctx, r).player(person)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return full, full != nil, nil
}

// ListPlayers returns every player ordered by last then first name.
func (s *Service) ListPlayers(ctx context.Context) ([]*domain.PlayerFull, error) {
	var out []*domain.PlayerFull
	err := s.read(ctx, "ListPlayers", func(r domain.Reader) error {
		people, err := loadByIndex[domain.Person](ctx, r, domain.CollectionPeople, domain.IndexType, string(domain.PersonPlayer))
		if err != nil {
			return err
		}
		h := newHydrator(ctx, r)
		out = make([]*domain.PlayerFull, 0, len(people))
		for _, p := range people {
			full, err := h.player(p)
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

// UpdatePlayer patches the person row, the player extension and, when a
// rating patch is supplied, upserts the player's rating.
func (s *Service) UpdatePlayer(ctx context.Context, id string, in domain.UpdatePlayerInput) (*domain.PlayerFull, bool, error) {
	var found bool
	err := s.mutate(ctx, "UpdatePlayer", func(tx domain.Transaction) error {
		person, profile, ok, err := loadTyped[domain.PlayerProfile](ctx, tx, id, domain.PersonPlayer)
		if err != nil || !ok {
			return err
		}
		found = true
		if err := applyPersonPatch(&person, in.Person); err != nil {
			return err
		}
		applyPlayerPatch(&profile, in.Player)
		s.touch(&person.Base)
		if err := writePerson(ctx, tx, person, profile); err != nil {
			return err
		}
		if in.Rating != nil {
			if _, err := s.upsertRating(ctx, tx, id, *in.Rating); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil || !found {
		return nil, false, err
	}
	full, err := s.hydratePlayer(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return full, true, nil
}

// DeletePlayer removes a player with its tasks, rating, NIL deals and allocations.
func (s *Service) DeletePlayer(ctx context.Context, id string) (bool, error) {
	return s.deletePerson(ctx, "DeletePlayer", id, domain.PersonPlayer)
}

func (s *Service) hydratePlayer(ctx context.Context, id string) (*domain.PlayerFull, error) {
	person, ok, err := load[domain.Person](ctx, s.store, domain.CollectionPeople, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("player %s not readable after write", id)
	}
	return newHydrator(ctx, s.store).player(person)
}

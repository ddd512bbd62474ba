package core

import (
	"context"
	"recruitledger/pkg/domain"
)

func (s *Service) newExternalNILDeal(in domain.ExternalNILDealInput) domain.ExternalNILDeal {
	return domain.ExternalNILDeal{
		Base:                 s.newBase(),
		PlayerID:             in.PlayerID,
		SourceType:           in.SourceType,
		CommittedAmount:      clonePtr(in.CommittedAmount),
		EstimatedAmount:      clonePtr(in.EstimatedAmount),
		DeliverablesRequired: in.DeliverablesRequired,
		StartDate:            clonePtr(in.StartDate),
		EndDate:              clonePtr(in.EndDate),
	}
}

func (s *Service) insertExternalNILDeal(ctx context.Context, tx domain.Transaction, deal domain.ExternalNILDeal) error {
	if err := deal.Validate(); err != nil {
		return err
	}
	if _, err := requirePerson(ctx, tx, domain.CollectionExternalNILDeals, "player_id", deal.PlayerID, domain.PersonPlayer); err != nil {
		return err
	}
	return put(ctx, tx, domain.CollectionExternalNILDeals, deal)
}

// CreateExternalNILDeal records third-party NIL income for a player.
func (s *Service) CreateExternalNILDeal(ctx context.Context, in domain.ExternalNILDealInput) (domain.ExternalNILDeal, error) {
	deal := s.newExternalNILDeal(in)
	err := s.mutate(ctx, "CreateExternalNILDeal", func(tx domain.Transaction) error {
		return s.insertExternalNILDeal(ctx, tx, deal)
	})
	if err != nil {
		return domain.ExternalNILDeal{}, err
	}
	return deal, nil
}

// GetExternalNILDeal returns the deal with id.
func (s *Service) GetExternalNILDeal(ctx context.Context, id string) (domain.ExternalNILDeal, bool, error) {
	var (
		deal domain.ExternalNILDeal
		ok   bool
	)
	err := s.read(ctx, "GetExternalNILDeal", func(r domain.Reader) error {
		var err error
		deal, ok, err = load[domain.ExternalNILDeal](ctx, r, domain.CollectionExternalNILDeals, id)
		return err
	})
	return deal, ok, err
}

// ListExternalNILDeals returns every deal in creation order.
func (s *Service) ListExternalNILDeals(ctx context.Context) ([]domain.ExternalNILDeal, error) {
	var deals []domain.ExternalNILDeal
	err := s.read(ctx, "ListExternalNILDeals", func(r domain.Reader) error {
		var err error
		deals, err = loadAll[domain.ExternalNILDeal](ctx, r, domain.CollectionExternalNILDeals)
		return err
	})
	if err != nil {
		return nil, err
	}
	sortByCreated(deals, func(d domain.ExternalNILDeal) domain.Base { return d.Base })
	return deals, nil
}

// ListExternalNILDealsByPlayer returns the deals of one player.
func (s *Service) ListExternalNILDealsByPlayer(ctx context.Context, playerID string) ([]domain.ExternalNILDeal, error) {
	var deals []domain.ExternalNILDeal
	err := s.read(ctx, "ListExternalNILDealsByPlayer", func(r domain.Reader) error {
		var err error
		deals, err = loadByIndex[domain.ExternalNILDeal](ctx, r, domain.CollectionExternalNILDeals, domain.IndexPlayerID, playerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	sortByCreated(deals, func(d domain.ExternalNILDeal) domain.Base { return d.Base })
	return deals, nil
}

// UpdateExternalNILDeal applies patch to the deal with id.
func (s *Service) UpdateExternalNILDeal(ctx context.Context, id string, patch domain.ExternalNILDealPatch) (domain.ExternalNILDeal, bool, error) {
	var (
		deal  domain.ExternalNILDeal
		found bool
	)
	err := s.mutate(ctx, "UpdateExternalNILDeal", func(tx domain.Transaction) error {
		var err error
		deal, found, err = load[domain.ExternalNILDeal](ctx, tx, domain.CollectionExternalNILDeals, id)
		if err != nil || !found {
			return err
		}
		entity := domain.CollectionExternalNILDeals
		if err := applyRequired(entity, "player_id", patch.PlayerID, &deal.PlayerID); err != nil {
			return err
		}
		if err := applyRequired(entity, "source_type", patch.SourceType, &deal.SourceType); err != nil {
			return err
		}
		if err := applyRequired(entity, "deliverables_required", patch.DeliverablesRequired, &deal.DeliverablesRequired); err != nil {
			return err
		}
		patch.CommittedAmount.ApplyToPtr(&deal.CommittedAmount)
		patch.EstimatedAmount.ApplyToPtr(&deal.EstimatedAmount)
		patch.StartDate.ApplyToPtr(&deal.StartDate)
		patch.EndDate.ApplyToPtr(&deal.EndDate)
		s.touch(&deal.Base)
		return s.insertExternalNILDeal(ctx, tx, deal)
	})
	if err != nil || !found {
		return domain.ExternalNILDeal{}, false, err
	}
	return deal, true, nil
}

// DeleteExternalNILDeal removes the deal with id.
func (s *Service) DeleteExternalNILDeal(ctx context.Context, id string) (bool, error) {
	var found bool
	err := s.mutate(ctx, "DeleteExternalNILDeal", func(tx domain.Transaction) error {
		var err error
		_, found, err = tx.Get(ctx, domain.CollectionExternalNILDeals, id)
		if err != nil || !found {
			return err
		}
		return tx.Delete(ctx, domain.CollectionExternalNILDeals, id)
	})
	return found, err
}

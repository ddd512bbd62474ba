package core

import (
	"context"
	"recruitledger/pkg/domain"
)

func (s *Service) newAllocation(in domain.InstitutionalAllocationInput) domain.InstitutionalAllocation {
	return domain.InstitutionalAllocation{
		Base:              s.newBase(),
		PlayerID:          in.PlayerID,
		AllocationType:    in.AllocationType,
		AnnualAmount:      clonePtr(in.AnnualAmount),
		RecruitingCycleID: trimPtr(in.RecruitingCycleID),
		TeamID:            trimPtr(in.TeamID),
		CountsTowardCap:   in.CountsTowardCap,
		FundingPoolID:     clonePtr(in.FundingPoolID),
		Status:            in.Status,
	}
}

// writeAllocation validates fields, references and the pool cap, then writes.
func (s *Service) writeAllocation(ctx context.Context, tx domain.Transaction, a domain.InstitutionalAllocation) error {
	if err := a.Validate(); err != nil {
		return err
	}
	entity := domain.CollectionInstitutionalAllocations
	if _, err := requirePerson(ctx, tx, entity, "player_id", a.PlayerID, domain.PersonPlayer); err != nil {
		return err
	}
	if err := validateReference(ctx, tx, entity, "funding_pool_id", domain.CollectionFundingPools, a.FundingPoolID); err != nil {
		return err
	}
	if err := checkPoolCap(ctx, tx, a); err != nil {
		return err
	}
	return put(ctx, tx, entity, a)
}

// CreateInstitutionalAllocation records a school-paid allocation to a player.
func (s *Service) CreateInstitutionalAllocation(ctx context.Context, in domain.InstitutionalAllocationInput) (domain.InstitutionalAllocation, error) {
	alloc := s.newAllocation(in)
	err := s.mutate(ctx, "CreateInstitutionalAllocation", func(tx domain.Transaction) error {
		return s.writeAllocation(ctx, tx, alloc)
	})
	if err != nil {
		return domain.InstitutionalAllocation{}, err
	}
	return alloc, nil
}

// GetInstitutionalAllocation returns the allocation with id.
func (s *Service) GetInstitutionalAllocation(ctx context.Context, id string) (domain.InstitutionalAllocation, bool, error) {
	var (
		alloc domain.InstitutionalAllocation
		ok    bool
	)
	err := s.read(ctx, "GetInstitutionalAllocation", func(r domain.Reader) error {
		var err error
		alloc, ok, err = load[domain.InstitutionalAllocation](ctx, r, domain.CollectionInstitutionalAllocations, id)
		return err
	})
	return alloc, ok, err
}

// ListInstitutionalAllocations returns every allocation in creation order.
func (s *Service) ListInstitutionalAllocations(ctx context.Context) ([]domain.InstitutionalAllocation, error) {
	return s.listAllocations(ctx, "ListInstitutionalAllocations", func(r domain.Reader) ([]domain.InstitutionalAllocation, error) {
		return loadAll[domain.InstitutionalAllocation](ctx, r, domain.CollectionInstitutionalAllocations)
	})
}

// ListInstitutionalAllocationsByPlayer returns the allocations of one player.
func (s *Service) ListInstitutionalAllocationsByPlayer(ctx context.Context, playerID string) ([]domain.InstitutionalAllocation, error) {
	return s.listAllocations(ctx, "ListInstitutionalAllocationsByPlayer", func(r domain.Reader) ([]domain.InstitutionalAllocation, error) {
		return loadByIndex[domain.InstitutionalAllocation](ctx, r, domain.CollectionInstitutionalAllocations, domain.IndexPlayerID, playerID)
	})
}

// ListInstitutionalAllocationsByFundingPool returns the allocations drawing on one pool.
func (s *Service) ListInstitutionalAllocationsByFundingPool(ctx context.Context, poolID string) ([]domain.InstitutionalAllocation, error) {
	return s.listAllocations(ctx, "ListInstitutionalAllocationsByFundingPool", func(r domain.Reader) ([]domain.InstitutionalAllocation, error) {
		return loadByIndex[domain.InstitutionalAllocation](ctx, r, domain.CollectionInstitutionalAllocations, domain.IndexFundingPoolID, poolID)
	})
}

func (s *Service) listAllocations(ctx context.Context, op string, fetch func(domain.Reader) ([]domain.InstitutionalAllocation, error)) ([]domain.InstitutionalAllocation, error) {
	var out []domain.InstitutionalAllocation
	err := s.read(ctx, op, func(r domain.Reader) error {
		var err error
		out, err = fetch(r)
		return err
	})
	if err != nil {
		return nil, err
	}
	sortByCreated(out, func(a domain.InstitutionalAllocation) domain.Base { return a.Base })
	return out, nil
}

// UpdateInstitutionalAllocation applies patch to the allocation with id.
func (s *Service) UpdateInstitutionalAllocation(ctx context.Context, id string, patch domain.InstitutionalAllocationPatch) (domain.InstitutionalAllocation, bool, error) {
	var (
		alloc domain.InstitutionalAllocation
		found bool
	)
	err := s.mutate(ctx, "UpdateInstitutionalAllocation", func(tx domain.Transaction) error {
		var err error
		alloc, found, err = load[domain.InstitutionalAllocation](ctx, tx, domain.CollectionInstitutionalAllocations, id)
		if err != nil || !found {
			return err
		}
		entity := domain.CollectionInstitutionalAllocations
		if err := applyRequired(entity, "player_id", patch.PlayerID, &alloc.PlayerID); err != nil {
			return err
		}
		if err := applyRequired(entity, "allocation_type", patch.AllocationType, &alloc.AllocationType); err != nil {
			return err
		}
		if err := applyRequired(entity, "counts_toward_cap", patch.CountsTowardCap, &alloc.CountsTowardCap); err != nil {
			return err
		}
		if err := applyRequired(entity, "status", patch.Status, &alloc.Status); err != nil {
			return err
		}
		patch.AnnualAmount.ApplyToPtr(&alloc.AnnualAmount)
		patch.RecruitingCycleID.ApplyToPtr(&alloc.RecruitingCycleID)
		patch.TeamID.ApplyToPtr(&alloc.TeamID)
		patch.FundingPoolID.ApplyToPtr(&alloc.FundingPoolID)
		s.touch(&alloc.Base)
		return s.writeAllocation(ctx, tx, alloc)
	})
	if err != nil || !found {
		return domain.InstitutionalAllocation{}, false, err
	}
	return alloc, true, nil
}

// DeleteInstitutionalAllocation removes the allocation with id.
func (s *Service) DeleteInstitutionalAllocation(ctx context.Context, id string) (bool, error) {
	var found bool
	err := s.mutate(ctx, "DeleteInstitutionalAllocation", func(tx domain.Transaction) error {
		var err error
		_, found, err = tx.Get(ctx, domain.CollectionInstitutionalAllocations, id)
		if err != nil || !found {
			return err
		}
		return tx.Delete(ctx, domain.CollectionInstitutionalAllocations, id)
	})
	return found, err
}

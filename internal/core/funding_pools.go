package core

import (
	"context"
	"recruitledger/pkg/domain"
	"strings"
)

// CreateFundingPool persists a budget envelope.
func (s *Service) CreateFundingPool(ctx context.Context, in domain.FundingPoolInput) (domain.FundingPool, error) {
	pool := domain.FundingPool{
		Base:              s.newBase(),
		TeamID:            strings.TrimSpace(in.TeamID),
		RecruitingCycleID: trimPtr(in.RecruitingCycleID),
		PoolType:          in.PoolType,
		TotalAmount:       in.TotalAmount,
		AllocatedAmount:   in.AllocatedAmount,
		CapType:           in.CapType,
	}
	err := s.mutate(ctx, "CreateFundingPool", func(tx domain.Transaction) error {
		if err := pool.Validate(); err != nil {
			return err
		}
		return put(ctx, tx, domain.CollectionFundingPools, pool)
	})
	if err != nil {
		return domain.FundingPool{}, err
	}
	return pool, nil
}

// GetFundingPool returns the pool with id.
func (s *Service) GetFundingPool(ctx context.Context, id string) (domain.FundingPool, bool, error) {
	var (
		pool domain.FundingPool
		ok   bool
	)
	err := s.read(ctx, "GetFundingPool", func(r domain.Reader) error {
		var err error
		pool, ok, err = load[domain.FundingPool](ctx, r, domain.CollectionFundingPools, id)
		return err
	})
	return pool, ok, err
}

// ListFundingPools returns every pool ordered by team then recruiting cycle.
func (s *Service) ListFundingPools(ctx context.Context) ([]domain.FundingPool, error) {
	var pools []domain.FundingPool
	err := s.read(ctx, "ListFundingPools", func(r domain.Reader) error {
		var err error
		pools, err = loadAll[domain.FundingPool](ctx, r, domain.CollectionFundingPools)
		return err
	})
	if err != nil {
		return nil, err
	}
	sortFundingPools(pools)
	return pools, nil
}

// UpdateFundingPool applies patch to the pool with id. Lowering a hard cap
// below what is already committed is allowed and shows up as over cap in
// FundingPoolUtilization.
func (s *Service) UpdateFundingPool(ctx context.Context, id string, patch domain.FundingPoolPatch) (domain.FundingPool, bool, error) {
	var (
		pool  domain.FundingPool
		found bool
	)
	err := s.mutate(ctx, "UpdateFundingPool", func(tx domain.Transaction) error {
		var err error
		pool, found, err = load[domain.FundingPool](ctx, tx, domain.CollectionFundingPools, id)
		if err != nil || !found {
			return err
		}
		entity := domain.CollectionFundingPools
		if err := applyRequired(entity, "team_id", patch.TeamID, &pool.TeamID); err != nil {
			return err
		}
		pool.TeamID = strings.TrimSpace(pool.TeamID)
		patch.RecruitingCycleID.ApplyToPtr(&pool.RecruitingCycleID)
		if err := applyRequired(entity, "pool_type", patch.PoolType, &pool.PoolType); err != nil {
			return err
		}
		if err := applyRequired(entity, "total_amount", patch.TotalAmount, &pool.TotalAmount); err != nil {
			return err
		}
		if err := applyRequired(entity, "allocated_amount", patch.AllocatedAmount, &pool.AllocatedAmount); err != nil {
			return err
		}
		if err := applyRequired(entity, "cap_type", patch.CapType, &pool.CapType); err != nil {
			return err
		}
		if err := pool.Validate(); err != nil {
			return err
		}
		s.touch(&pool.Base)
		return put(ctx, tx, entity, pool)
	})
	if err != nil || !found {
		return domain.FundingPool{}, false, err
	}
	return pool, true, nil
}

// DeleteFundingPool removes a pool and unlinks every allocation drawing on it.
func (s *Service) DeleteFundingPool(ctx context.Context, id string) (bool, error) {
	var found bool
	err := s.mutate(ctx, "DeleteFundingPool", func(tx domain.Transaction) error {
		var err error
		_, found, err = tx.Get(ctx, domain.CollectionFundingPools, id)
		if err != nil || !found {
			return err
		}
		if err := s.nullifyFundingPoolReferences(ctx, tx, id); err != nil {
			return err
		}
		return tx.Delete(ctx, domain.CollectionFundingPools, id)
	})
	return found, err
}

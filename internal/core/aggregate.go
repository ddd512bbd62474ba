package core

import (
	"context"
	"recruitledger/pkg/domain"
	"sort"
)

// SchoolsWithCounts returns every school, sorted by name, with the number of
// affiliated players, coaches and staff.
func (s *Service) SchoolsWithCounts(ctx context.Context) ([]domain.SchoolWithCounts, error) {
	var out []domain.SchoolWithCounts
	err := s.read(ctx, "SchoolsWithCounts", func(r domain.Reader) error {
		schools, err := loadAll[domain.School](ctx, r, domain.CollectionSchools)
		if err != nil {
			return err
		}
		people, err := loadAll[domain.Person](ctx, r, domain.CollectionPeople)
		if err != nil {
			return err
		}
		sortSchools(schools)
		out = make([]domain.SchoolWithCounts, 0, len(schools))
		for _, school := range schools {
			row := domain.SchoolWithCounts{School: school}
			for _, p := range people {
				if p.SchoolID == nil || *p.SchoolID != school.ID {
					continue
				}
				switch p.Type {
				case domain.PersonPlayer:
					row.PlayerCount++
				case domain.PersonCoach:
					row.CoachCount++
				case domain.PersonStaff:
					row.StaffCount++
				}
			}
			out = append(out, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PlayerNILTotals sums the NIL records of one player. The boolean is false
// when playerID does not name a player.
func (s *Service) PlayerNILTotals(ctx context.Context, playerID string) (domain.NILTotals, bool, error) {
	var (
		totals domain.NILTotals
		found  bool
	)
	err := s.read(ctx, "PlayerNILTotals", func(r domain.Reader) error {
		person, ok, err := load[domain.Person](ctx, r, domain.CollectionPeople, playerID)
		if err != nil || !ok || person.Type != domain.PersonPlayer {
			return err
		}
		found = true
		totals, err = playerTotals(ctx, r, playerID)
		return err
	})
	return totals, found, err
}

func playerTotals(ctx context.Context, r domain.Reader, playerID string) (domain.NILTotals, error) {
	totals := domain.NILTotals{PlayerID: playerID}
	allocations, err := loadByIndex[domain.InstitutionalAllocation](ctx, r, domain.CollectionInstitutionalAllocations, domain.IndexPlayerID, playerID)
	if err != nil {
		return totals, err
	}
	deals, err := loadByIndex[domain.ExternalNILDeal](ctx, r, domain.CollectionExternalNILDeals, domain.IndexPlayerID, playerID)
	if err != nil {
		return totals, err
	}
	addAllocations(&totals, allocations)
	addDeals(&totals, deals)
	return totals, nil
}

func addAllocations(t *domain.NILTotals, allocations []domain.InstitutionalAllocation) {
	for _, a := range allocations {
		t.InstitutionalAnnual += amount(a.AnnualAmount)
		t.InstitutionalCount++
	}
}

func addDeals(t *domain.NILTotals, deals []domain.ExternalNILDeal) {
	for _, d := range deals {
		t.ExternalEstimated += amount(d.EstimatedAmount)
		t.ExternalCommitted += amount(d.CommittedAmount)
		t.ExternalDealCount++
	}
}

// NILSummary totals NIL activity across every player. Players appear in
// descending order of total, ties broken by id; players without any NIL
// record are listed with zero totals.
func (s *Service) NILSummary(ctx context.Context) (domain.NILSummary, error) {
	var summary domain.NILSummary
	err := s.read(ctx, "NILSummary", func(r domain.Reader) error {
		players, err := loadByIndex[domain.Person](ctx, r, domain.CollectionPeople, domain.IndexType, string(domain.PersonPlayer))
		if err != nil {
			return err
		}
		allocations, err := loadAll[domain.InstitutionalAllocation](ctx, r, domain.CollectionInstitutionalAllocations)
		if err != nil {
			return err
		}
		deals, err := loadAll[domain.ExternalNILDeal](ctx, r, domain.CollectionExternalNILDeals)
		if err != nil {
			return err
		}
		byPlayer := make(map[string]*domain.NILTotals, len(players))
		for _, p := range players {
			byPlayer[p.ID] = &domain.NILTotals{PlayerID: p.ID}
		}
		for _, a := range allocations {
			if t, ok := byPlayer[a.PlayerID]; ok {
				addAllocations(t, []domain.InstitutionalAllocation{a})
			}
		}
		for _, d := range deals {
			if t, ok := byPlayer[d.PlayerID]; ok {
				addDeals(t, []domain.ExternalNILDeal{d})
			}
		}
		summary.Players = make([]domain.NILTotals, 0, len(byPlayer))
		for _, t := range byPlayer {
			summary.InstitutionalAnnual += t.InstitutionalAnnual
			summary.ExternalEstimated += t.ExternalEstimated
			summary.ExternalCommitted += t.ExternalCommitted
			summary.Players = append(summary.Players, *t)
		}
		sort.Slice(summary.Players, func(i, j int) bool {
			a, b := summary.Players[i], summary.Players[j]
			if a.Total() != b.Total() {
				return a.Total() > b.Total()
			}
			return a.PlayerID < b.PlayerID
		})
		return nil
	})
	if err != nil {
		return domain.NILSummary{}, err
	}
	return summary, nil
}

// FundingPoolUtilization reports, per pool, the annual amounts of linked
// allocations that count toward the cap against the pool total.
func (s *Service) FundingPoolUtilization(ctx context.Context) ([]domain.PoolUtilization, error) {
	var out []domain.PoolUtilization
	err := s.read(ctx, "FundingPoolUtilization", func(r domain.Reader) error {
		pools, err := loadAll[domain.FundingPool](ctx, r, domain.CollectionFundingPools)
		if err != nil {
			return err
		}
		sortFundingPools(pools)
		out = make([]domain.PoolUtilization, 0, len(pools))
		for _, pool := range pools {
			linked, err := loadByIndex[domain.InstitutionalAllocation](ctx, r, domain.CollectionInstitutionalAllocations, domain.IndexFundingPoolID, pool.ID)
			if err != nil {
				return err
			}
			u := domain.PoolUtilization{Pool: pool}
			for _, a := range linked {
				if a.CountsTowardCap {
					u.Committed += amount(a.AnnualAmount)
				}
			}
			u.Remaining = pool.TotalAmount - u.Committed
			u.OverCap = u.Committed > pool.TotalAmount
			out = append(out, u)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

package core

import (
	"context"
	"fmt"
	"recruitledger/pkg/domain"
)

// validateReference fails with a ReferenceError when id is set and does not
// resolve in target. An unset id always passes.
func validateReference(ctx context.Context, r domain.Reader, entity domain.Collection, field string, target domain.Collection, id *string) error {
	if id == nil {
		return nil
	}
	_, ok, err := r.Get(ctx, target, *id)
	if err != nil {
		return fmt.Errorf("resolve %s.%s: %w", entity, field, err)
	}
	if !ok {
		return &domain.ReferenceError{Entity: entity, Field: field, Target: target, ID: *id}
	}
	return nil
}

// requirePerson resolves a person reference and, when want is non-empty,
// checks its type.
func requirePerson(ctx context.Context, r domain.Reader, entity domain.Collection, field, id string, want domain.PersonType) (domain.Person, error) {
	person, ok, err := load[domain.Person](ctx, r, domain.CollectionPeople, id)
	if err != nil {
		return domain.Person{}, fmt.Errorf("resolve %s.%s: %w", entity, field, err)
	}
	if !ok {
		return domain.Person{}, &domain.ReferenceError{Entity: entity, Field: field, Target: domain.CollectionPeople, ID: id}
	}
	if want != "" && person.Type != want {
		return domain.Person{}, &domain.ReferenceError{
			Entity: entity, Field: field, Target: domain.CollectionPeople, ID: id,
			Reason: fmt.Sprintf("is a %s, not a %s", person.Type, want),
		}
	}
	return person, nil
}

func validatePersonReferences(ctx context.Context, r domain.Reader, p domain.Person) error {
	if err := validateReference(ctx, r, domain.CollectionPeople, "school_id", domain.CollectionSchools, p.SchoolID); err != nil {
		return err
	}
	if p.AssignedCoachID != nil {
		if _, err := requirePerson(ctx, r, domain.CollectionPeople, "assigned_coach_id", *p.AssignedCoachID, domain.PersonCoach); err != nil {
			return err
		}
	}
	return nil
}

func extensionCollection(t domain.PersonType) domain.Collection {
	switch t {
	case domain.PersonPlayer:
		return domain.CollectionPlayers
	case domain.PersonCoach:
		return domain.CollectionCoaches
	default:
		return domain.CollectionStaff
	}
}

// cascadeDeletePerson removes a person and everything owned by it, dependents
// first: tasks, then for players the rating, NIL deals and allocations, then
// the extension row. People assigned to a deleted coach keep their row with
// assigned_coach_id cleared. The person row goes last.
func (s *Service) cascadeDeletePerson(ctx context.Context, tx domain.Transaction, person domain.Person) error {
	if err := deleteByIndex(ctx, tx, domain.CollectionTasks, domain.IndexPersonID, person.ID); err != nil {
		return err
	}
	switch person.Type {
	case domain.PersonPlayer:
		for _, c := range []domain.Collection{
			domain.CollectionPlayerRatings,
			domain.CollectionExternalNILDeals,
			domain.CollectionInstitutionalAllocations,
		} {
			if err := deleteByIndex(ctx, tx, c, domain.IndexPlayerID, person.ID); err != nil {
				return err
			}
		}
	case domain.PersonCoach:
		assigned, err := loadByIndex[domain.Person](ctx, tx, domain.CollectionPeople, domain.IndexAssignedCoachID, person.ID)
		if err != nil {
			return err
		}
		for _, p := range assigned {
			p.AssignedCoachID = nil
			s.touch(&p.Base)
			if err := put(ctx, tx, domain.CollectionPeople, p); err != nil {
				return err
			}
		}
	}
	if err := tx.Delete(ctx, extensionCollection(person.Type), person.ID); err != nil {
		return err
	}
	return tx.Delete(ctx, domain.CollectionPeople, person.ID)
}

// nullifySchoolReferences clears school_id on every person affiliated with
// the school. People are never deleted with their school.
func (s *Service) nullifySchoolReferences(ctx context.Context, tx domain.Transaction, schoolID string) error {
	people, err := loadByIndex[domain.Person](ctx, tx, domain.CollectionPeople, domain.IndexSchoolID, schoolID)
	if err != nil {
		return err
	}
	for _, p := range people {
		p.SchoolID = nil
		s.touch(&p.Base)
		if err := put(ctx, tx, domain.CollectionPeople, p); err != nil {
			return err
		}
	}
	return nil
}

// nullifyFundingPoolReferences unlinks allocations from a deleted pool.
func (s *Service) nullifyFundingPoolReferences(ctx context.Context, tx domain.Transaction, poolID string) error {
	allocations, err := loadByIndex[domain.InstitutionalAllocation](ctx, tx, domain.CollectionInstitutionalAllocations, domain.IndexFundingPoolID, poolID)
	if err != nil {
		return err
	}
	for _, a := range allocations {
		a.FundingPoolID = nil
		s.touch(&a.Base)
		if err := put(ctx, tx, domain.CollectionInstitutionalAllocations, a); err != nil {
			return err
		}
	}
	return nil
}

func deleteByIndex(ctx context.Context, tx domain.Transaction, c domain.Collection, field, value string) error {
	docs, err := tx.GetByIndex(ctx, c, field, value)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if err := tx.Delete(ctx, c, doc.ID); err != nil {
			return err
		}
	}
	return nil
}

// checkPoolCap rejects an allocation that would push a hard-capped pool's
// counted allocations above its total. Soft pools and allocations that do not
// count toward the cap always pass.
func checkPoolCap(ctx context.Context, r domain.Reader, a domain.InstitutionalAllocation) error {
	if a.FundingPoolID == nil || !a.CountsTowardCap {
		return nil
	}
	pool, ok, err := load[domain.FundingPool](ctx, r, domain.CollectionFundingPools, *a.FundingPoolID)
	if err != nil {
		return err
	}
	if !ok {
		return &domain.ReferenceError{
			Entity: domain.CollectionInstitutionalAllocations, Field: "funding_pool_id",
			Target: domain.CollectionFundingPools, ID: *a.FundingPoolID,
		}
	}
	if pool.CapType != domain.CapHard {
		return nil
	}
	linked, err := loadByIndex[domain.InstitutionalAllocation](ctx, r, domain.CollectionInstitutionalAllocations, domain.IndexFundingPoolID, pool.ID)
	if err != nil {
		return err
	}
	committed := amount(a.AnnualAmount)
	for _, other := range linked {
		if other.ID == a.ID || !other.CountsTowardCap {
			continue
		}
		committed += amount(other.AnnualAmount)
	}
	if committed > pool.TotalAmount {
		return &domain.ValidationError{
			Entity: domain.CollectionInstitutionalAllocations,
			Field:  "annual_amount",
			Reason: fmt.Sprintf("hard cap exceeded for pool %s: %.2f committed of %.2f", pool.ID, committed, pool.TotalAmount),
		}
	}
	return nil
}

func amount(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

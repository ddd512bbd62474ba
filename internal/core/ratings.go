package core

import (
	"context"
	"recruitledger/pkg/domain"
)

func (s *Service) newRating(playerID string, in domain.RatingInput) domain.PlayerRating {
	return domain.PlayerRating{
		Base:           s.newBase(),
		PlayerID:       playerID,
		MaxPreps:       clonePtr(in.MaxPreps),
		Rating247:      clonePtr(in.Rating247),
		Composite247:   clonePtr(in.Composite247),
		InternalRating: clonePtr(in.InternalRating),
	}
}

// upsertRating merges patch into the player's rating row, creating it when
// absent. The caller must hold the write lock.
func (s *Service) upsertRating(ctx context.Context, tx domain.Transaction, playerID string, patch domain.RatingPatch) (domain.PlayerRating, error) {
	existing, err := loadByIndex[domain.PlayerRating](ctx, tx, domain.CollectionPlayerRatings, domain.IndexPlayerID, playerID)
	if err != nil {
		return domain.PlayerRating{}, err
	}
	var rating domain.PlayerRating
	if len(existing) > 0 {
		rating = existing[0]
		s.touch(&rating.Base)
	} else {
		rating = domain.PlayerRating{Base: s.newBase(), PlayerID: playerID}
	}
	patch.MaxPreps.ApplyToPtr(&rating.MaxPreps)
	patch.Rating247.ApplyToPtr(&rating.Rating247)
	patch.Composite247.ApplyToPtr(&rating.Composite247)
	patch.InternalRating.ApplyToPtr(&rating.InternalRating)
	if err := rating.Validate(); err != nil {
		return domain.PlayerRating{}, err
	}
	if err := put(ctx, tx, domain.CollectionPlayerRatings, rating); err != nil {
		return domain.PlayerRating{}, err
	}
	return rating, nil
}

// UpdatePlayerRating upserts the rating of a player: an existing row is
// merged and re-stamped, otherwise a new row is created. At most one rating
// row ever exists per player.
func (s *Service) UpdatePlayerRating(ctx context.Context, playerID string, patch domain.RatingPatch) (domain.PlayerRating, error) {
	var rating domain.PlayerRating
	err := s.mutate(ctx, "UpdatePlayerRating", func(tx domain.Transaction) error {
		if _, err := requirePerson(ctx, tx, domain.CollectionPlayerRatings, "player_id", playerID, domain.PersonPlayer); err != nil {
			return err
		}
		var err error
		rating, err = s.upsertRating(ctx, tx, playerID, patch)
		return err
	})
	if err != nil {
		return domain.PlayerRating{}, err
	}
	return rating, nil
}

// GetPlayerRating returns the rating of a player.
func (s *Service) GetPlayerRating(ctx context.Context, playerID string) (domain.PlayerRating, bool, error) {
	var (
		rating domain.PlayerRating
		ok     bool
	)
	err := s.read(ctx, "GetPlayerRating", func(r domain.Reader) error {
		ratings, err := loadByIndex[domain.PlayerRating](ctx, r, domain.CollectionPlayerRatings, domain.IndexPlayerID, playerID)
		if err != nil || len(ratings) == 0 {
			return err
		}
		rating, ok = ratings[0], true
		return nil
	})
	return rating, ok, err
}

// DeletePlayerRating removes the rating of a player.
func (s *Service) DeletePlayerRating(ctx context.Context, playerID string) (bool, error) {
	var found bool
	err := s.mutate(ctx, "DeletePlayerRating", func(tx domain.Transaction) error {
		docs, err := tx.GetByIndex(ctx, domain.CollectionPlayerRatings, domain.IndexPlayerID, playerID)
		if err != nil || len(docs) == 0 {
			return err
		}
		found = true
		return deleteByIndex(ctx, tx, domain.CollectionPlayerRatings, domain.IndexPlayerID, playerID)
	})
	return found, err
}

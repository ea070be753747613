package services

import (
	"context"
	"database/sql"
	"time"

	"barterhub/internal/domain/chat"
	"barterhub/internal/domain/exchange"
	"barterhub/internal/domain/interest"
	"barterhub/internal/repository"
	barter_errors "barterhub/pkg/errors"
	"barterhub/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RealizationOutcome reports what a realize call concluded.
type RealizationOutcome struct {
	// Completed is true when the other side had already confirmed and the
	// exchange was recorded.
	Completed bool
	// Record holds the exchange receipt when Completed.
	Record *exchange.Record
}

// RealizationService handles each side's confirmation of a completed
// exchange. A side may retract its confirmation only until the other side
// has confirmed too; from then on the offer pair is final and an immutable
// exchange record exists.
type RealizationService struct {
	db    *gorm.DB
	repos repository.Repositories
	locks *pairLocks
	log   *logger.Logger
}

// NewRealizationService shares the ledger's pair locks so confirmations
// serialize against interest writes for the same pair.
func NewRealizationService(db *gorm.DB, repos repository.Repositories, ledger *InterestService, log *logger.Logger) *RealizationService {
	return &RealizationService{
		db:    db,
		repos: repos,
		locks: ledger.sharedLocks(),
		log:   log,
	}
}

func (s *RealizationService) inTx(ctx context.Context, fn func(repos repository.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repository.NewRepositories(tx))
	})
}

// Realize marks the caller's interest as REALIZED. If the counterpart has an
// unconsumed REALIZED interest back, the exchange is complete and the
// historian writes the receipt in the same transaction.
func (s *RealizationService) Realize(ctx context.Context, interestID, byUserID uuid.UUID) (RealizationOutcome, error) {
	in, err := s.repos.Interests.GetByID(ctx, interestID)
	if err != nil {
		return RealizationOutcome{}, err
	}
	if in.UserID != byUserID {
		return RealizationOutcome{}, barter_errors.ErrForbidden
	}
	off, err := s.repos.Offers.GetByID(ctx, in.OfferID)
	if err != nil {
		return RealizationOutcome{}, err
	}
	ownerID := off.UserID

	key := chat.PairKey(byUserID, ownerID)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	var outcome RealizationOutcome
	err = s.inTx(ctx, func(repos repository.Repositories) error {
		current, err := repos.Interests.GetByID(ctx, interestID)
		if err != nil {
			return err
		}
		if !current.CanRealize() {
			return barter_errors.ErrBadStatus
		}

		now := time.Now()
		realizedAt := sql.NullTime{Time: now, Valid: true}
		if err := repos.Interests.SetStatus(ctx, interestID, interest.StatusRealized, realizedAt); err != nil {
			return err
		}
		current.Status = interest.StatusRealized
		current.RealizedAt = realizedAt

		mirror, found, err := s.findMirror(ctx, repos, current, ownerID, byUserID)
		if err != nil {
			return err
		}
		if !found {
			outcome = RealizationOutcome{}
			return nil
		}

		rec, err := recordCompletedExchange(ctx, repos, current, mirror, now)
		if err != nil {
			return err
		}
		outcome = RealizationOutcome{Completed: true, Record: &rec}
		return nil
	})
	if err != nil {
		return RealizationOutcome{}, err
	}

	if s.log != nil && outcome.Completed {
		s.log.Infof("exchange completed: users %s and %s, record %s", byUserID, ownerID, outcome.Record.ID)
	}
	return outcome, nil
}

// Unrealize reverts the caller's REALIZED interest back to ACCEPTED. Once
// the mirrored interest also realized (the exchange record exists), neither
// side may retract.
func (s *RealizationService) Unrealize(ctx context.Context, interestID, byUserID uuid.UUID) error {
	in, err := s.repos.Interests.GetByID(ctx, interestID)
	if err != nil {
		return err
	}
	if in.UserID != byUserID {
		return barter_errors.ErrForbidden
	}
	off, err := s.repos.Offers.GetByID(ctx, in.OfferID)
	if err != nil {
		return err
	}

	key := chat.PairKey(byUserID, off.UserID)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	return s.inTx(ctx, func(repos repository.Repositories) error {
		current, err := repos.Interests.GetByID(ctx, interestID)
		if err != nil {
			return err
		}
		if !current.CanUnrealize() {
			return barter_errors.ErrBadStatus
		}

		c, err := repos.Chats.GetByPair(ctx, byUserID, off.UserID)
		if err != nil && !isNotFound(err) {
			return err
		}
		if err == nil {
			if _, err := repos.Exchanges.GetForOffer(ctx, c.ID, current.OfferID); err == nil {
				return barter_errors.ErrAlreadyCompleted
			} else if !isNotFound(err) {
				return err
			}
		}

		return repos.Interests.SetStatus(ctx, interestID, interest.StatusAccepted, sql.NullTime{})
	})
}

// findMirror looks for the counterpart's confirmation: a REALIZED interest
// held by ownerID in one of userID's offers that no exchange record consumed
// yet. Candidates are considered oldest first.
func (s *RealizationService) findMirror(ctx context.Context, repos repository.Repositories, in interest.Interest, ownerID, userID uuid.UUID) (interest.Interest, bool, error) {
	candidates, err := repos.Interests.ListBetween(ctx, ownerID, userID)
	if err != nil {
		return interest.Interest{}, false, err
	}

	c, err := repos.Chats.GetByPair(ctx, userID, ownerID)
	if err != nil {
		if isNotFound(err) {
			// No chat means no mutual match yet, so no mirror either.
			return interest.Interest{}, false, nil
		}
		return interest.Interest{}, false, err
	}

	for _, cand := range candidates {
		if cand.Status != interest.StatusRealized {
			continue
		}
		_, err := repos.Exchanges.GetForOffer(ctx, c.ID, cand.OfferID)
		if isNotFound(err) {
			return cand, true, nil
		}
		if err != nil {
			return interest.Interest{}, false, err
		}
	}
	return interest.Interest{}, false, nil
}

package services

import (
	"context"
	"errors"

	"barterhub/internal/domain/chat"
	"barterhub/internal/domain/interest"
	"barterhub/internal/repository"
	barter_errors "barterhub/pkg/errors"
	"barterhub/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InterestCountCache caches per-offer interest counts. Purely a read-side
// optimization for listing pages; the interests table stays authoritative.
type InterestCountCache interface {
	GetCount(ctx context.Context, offerID uuid.UUID) (int64, bool)
	SetCount(ctx context.Context, offerID uuid.UUID, count int64)
	Invalidate(ctx context.Context, offerID uuid.UUID)
}

// InterestService owns the interest ledger: one record per (offer, user)
// pair with the PROPOSED/ACCEPTED/REALIZED lifecycle. Writes run under the
// pair's lock inside a single transaction together with match evaluation, so
// a caller never observes a half-matched pair.
type InterestService struct {
	db      *gorm.DB
	repos   repository.Repositories
	locks   *pairLocks
	matcher matchDetector
	counts  InterestCountCache
	log     *logger.Logger
}

func NewInterestService(db *gorm.DB, repos repository.Repositories, counts InterestCountCache, log *logger.Logger) *InterestService {
	return &InterestService{
		db:     db,
		repos:  repos,
		locks:  newPairLocks(),
		counts: counts,
		log:    log,
	}
}

// sharedLocks lets the realization service serialize on the same pair locks
// as the ledger. All mutating services for a pair must contend on one set.
func (s *InterestService) sharedLocks() *pairLocks {
	return s.locks
}

func (s *InterestService) inTx(ctx context.Context, fn func(repos repository.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repository.NewRepositories(tx))
	})
}

// ExpressInterest records userID's desire to receive the offer and evaluates
// the pair for a mutual match in the same transaction.
func (s *InterestService) ExpressInterest(ctx context.Context, offerID, userID uuid.UUID) (interest.Interest, MatchOutcome, error) {
	off, err := s.repos.Offers.GetByID(ctx, offerID)
	if err != nil {
		return interest.Interest{}, MatchOutcome{}, err
	}
	if !off.IsActive() {
		return interest.Interest{}, MatchOutcome{}, barter_errors.ErrNotFound
	}
	if off.UserID == userID {
		return interest.Interest{}, MatchOutcome{}, barter_errors.ErrSelfInterest
	}
	if _, err := s.repos.Interests.GetByOfferAndUser(ctx, offerID, userID); err == nil {
		return interest.Interest{}, MatchOutcome{}, barter_errors.ErrDuplicateInterest
	} else if !isNotFound(err) {
		return interest.Interest{}, MatchOutcome{}, err
	}

	key := chat.PairKey(userID, off.UserID)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	in := interest.Interest{
		ID:      uuid.New(),
		OfferID: offerID,
		UserID:  userID,
		Status:  interest.StatusProposed,
	}
	var outcome MatchOutcome
	err = s.inTx(ctx, func(repos repository.Repositories) error {
		if err := repos.Interests.Create(ctx, &in); err != nil {
			return err
		}
		res, err := s.matcher.Evaluate(ctx, repos, in, off.UserID)
		if err != nil {
			return err
		}
		outcome = res
		return nil
	})
	if err != nil {
		return interest.Interest{}, MatchOutcome{}, err
	}

	if outcome.Matched {
		in.Status = interest.StatusAccepted
		if s.log != nil {
			s.log.Infof("mutual match: users %s and %s, chat %s", userID, off.UserID, outcome.ChatID)
		}
	}
	if s.counts != nil {
		s.counts.Invalidate(ctx, offerID)
	}
	return in, outcome, nil
}

// CancelInterest hard-deletes the record. Only the interested user may
// cancel, and only while the interest is PROPOSED or ACCEPTED.
func (s *InterestService) CancelInterest(ctx context.Context, interestID, byUserID uuid.UUID) error {
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

	key := chat.PairKey(in.UserID, off.UserID)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	err = s.inTx(ctx, func(repos repository.Repositories) error {
		current, err := repos.Interests.GetByID(ctx, interestID)
		if err != nil {
			return err
		}
		if !current.CanCancel() {
			return barter_errors.ErrAlreadyRealized
		}
		return repos.Interests.Delete(ctx, interestID)
	})
	if err != nil {
		return err
	}

	if s.counts != nil {
		s.counts.Invalidate(ctx, in.OfferID)
	}
	return nil
}

// ListForOffer returns the interests expressed for an offer, oldest first.
func (s *InterestService) ListForOffer(ctx context.Context, offerID uuid.UUID) ([]interest.Interest, error) {
	return s.repos.Interests.ListByOffer(ctx, offerID)
}

// ListForUser returns the interests a user has expressed, oldest first.
func (s *InterestService) ListForUser(ctx context.Context, userID uuid.UUID) ([]interest.Interest, error) {
	return s.repos.Interests.ListByUser(ctx, userID)
}

// CountForOffer returns the number of interests for an offer, serving from
// cache when one is configured.
func (s *InterestService) CountForOffer(ctx context.Context, offerID uuid.UUID) (int64, error) {
	if s.counts != nil {
		if count, ok := s.counts.GetCount(ctx, offerID); ok {
			return count, nil
		}
	}
	count, err := s.repos.Interests.CountByOffer(ctx, offerID)
	if err != nil {
		return 0, err
	}
	if s.counts != nil {
		s.counts.SetCount(ctx, offerID, count)
	}
	return count, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, barter_errors.ErrNotFound)
}

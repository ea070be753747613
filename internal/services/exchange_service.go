package services

import (
	"context"
	"time"

	"barterhub/internal/domain/exchange"
	"barterhub/internal/domain/interest"
	"barterhub/internal/repository"
	"barterhub/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExchangeService exposes the read side of exchange history. Records are
// written by the historian inside the realization transaction and never
// mutated afterwards.
type ExchangeService struct {
	db    *gorm.DB
	repos repository.Repositories
	log   *logger.Logger
}

func NewExchangeService(db *gorm.DB, repos repository.Repositories, log *logger.Logger) *ExchangeService {
	return &ExchangeService{db: db, repos: repos, log: log}
}

// HistoryForUser returns the user's completed exchanges, newest first.
func (s *ExchangeService) HistoryForUser(ctx context.Context, userID uuid.UUID) ([]exchange.Record, error) {
	return s.repos.Exchanges.ListForUser(ctx, userID)
}

// recordCompletedExchange writes the immutable receipt for a completed
// exchange between the two realized interests. Offer titles are copied at
// recording time so the history survives offer removal. The unique guard on
// (chat, offer pair) makes a second invocation for the same completion
// return the already-written record instead of a duplicate.
func recordCompletedExchange(ctx context.Context, repos repository.Repositories, a, b interest.Interest, realizedAt time.Time) (exchange.Record, error) {
	offerA, err := repos.Offers.GetByID(ctx, a.OfferID)
	if err != nil {
		return exchange.Record{}, err
	}
	offerB, err := repos.Offers.GetByID(ctx, b.OfferID)
	if err != nil {
		return exchange.Record{}, err
	}

	// a's interest targets offerA, owned by b's side, and vice versa. The
	// chat already exists: mutual match precedes any REALIZED status.
	c, err := repos.Chats.GetByPair(ctx, a.UserID, b.UserID)
	if err != nil {
		return exchange.Record{}, err
	}

	// Orient the offer pair by the chat's canonical user order: the low
	// slot carries the offer owned by the low user.
	lowOffer, highOffer := offerA, offerB
	if offerA.UserID != c.UserLowID {
		lowOffer, highOffer = offerB, offerA
	}

	lowOfferID := lowOffer.ID
	highOfferID := highOffer.ID
	rec := exchange.Record{
		ID:             uuid.New(),
		ChatID:         c.ID,
		UserLowID:      c.UserLowID,
		UserHighID:     c.UserHighID,
		OfferLowID:     &lowOfferID,
		OfferHighID:    &highOfferID,
		OfferLowTitle:  lowOffer.Title,
		OfferHighTitle: highOffer.Title,
		RealizedAt:     realizedAt,
	}

	created, err := repos.Exchanges.Create(ctx, &rec)
	if err != nil {
		return exchange.Record{}, err
	}
	if !created {
		return repos.Exchanges.GetForOffer(ctx, c.ID, lowOffer.ID)
	}
	return rec, nil
}

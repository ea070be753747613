package services

import (
	"context"
	"strings"

	"barterhub/internal/domain/offer"
	"barterhub/internal/repository"
	barter_errors "barterhub/pkg/errors"
	"barterhub/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OfferService covers the thin offer CRUD the marketplace needs around the
// exchange core: listing, lookup, and soft removal. Offers are never
// physically erased; interests and exchange history keep referencing them.
type OfferService struct {
	db    *gorm.DB
	repos repository.Repositories
	log   *logger.Logger
}

func NewOfferService(db *gorm.DB, repos repository.Repositories, log *logger.Logger) *OfferService {
	return &OfferService{db: db, repos: repos, log: log}
}

type CreateOfferInput struct {
	Title       string
	Description string
}

func (s *OfferService) Create(ctx context.Context, userID uuid.UUID, in CreateOfferInput) (offer.Offer, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return offer.Offer{}, barter_errors.ErrInvalidInput
	}

	o := offer.Offer{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Status:      offer.StatusActive,
	}
	if err := s.repos.Offers.Create(ctx, &o); err != nil {
		return offer.Offer{}, err
	}
	return o, nil
}

func (s *OfferService) GetByID(ctx context.Context, id uuid.UUID) (offer.Offer, error) {
	return s.repos.Offers.GetByID(ctx, id)
}

func (s *OfferService) ListActive(ctx context.Context, page, limit int) ([]offer.Offer, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repos.Offers.ListActive(ctx, page, limit)
}

func (s *OfferService) ListByUser(ctx context.Context, userID uuid.UUID) ([]offer.Offer, error) {
	return s.repos.Offers.ListByUser(ctx, userID)
}

// Remove soft-deletes the offer by flipping its status to REMOVED.
func (s *OfferService) Remove(ctx context.Context, offerID, byUserID uuid.UUID) error {
	o, err := s.repos.Offers.GetByID(ctx, offerID)
	if err != nil {
		return err
	}
	if o.UserID != byUserID {
		return barter_errors.ErrForbidden
	}
	if o.Status == offer.StatusRemoved {
		return nil
	}
	return s.repos.Offers.UpdateStatus(ctx, offerID, offer.StatusRemoved)
}

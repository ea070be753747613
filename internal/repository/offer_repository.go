package repository

import (
	"context"
	"errors"

	"barterhub/internal/domain/offer"
	barter_errors "barterhub/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresOfferRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) OfferRepository {
	return &PostgresOfferRepository{db: db}
}

func (r *PostgresOfferRepository) Create(ctx context.Context, o *offer.Offer) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *PostgresOfferRepository) GetByID(ctx context.Context, id uuid.UUID) (offer.Offer, error) {
	var o offer.Offer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return offer.Offer{}, barter_errors.ErrNotFound
		}
		return offer.Offer{}, err
	}
	return o, nil
}

func (r *PostgresOfferRepository) ListActive(ctx context.Context, page, limit int) ([]offer.Offer, int64, error) {
	var offers []offer.Offer
	var total int64

	q := r.db.WithContext(ctx).
		Model(&offer.Offer{}).
		Where("status = ?", offer.StatusActive)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := q.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&offers).Error; err != nil {
		return nil, 0, err
	}

	return offers, total, nil
}

func (r *PostgresOfferRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]offer.Offer, error) {
	var offers []offer.Offer
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&offers).Error
	if err != nil {
		return nil, err
	}
	return offers, nil
}

func (r *PostgresOfferRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res := r.db.WithContext(ctx).
		Model(&offer.Offer{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return barter_errors.ErrNotFound
	}
	return nil
}

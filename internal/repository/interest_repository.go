package repository

import (
	"context"
	"database/sql"
	"errors"

	"barterhub/internal/domain/interest"
	barter_errors "barterhub/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresInterestRepository struct {
	db *gorm.DB
}

func NewInterestRepository(db *gorm.DB) InterestRepository {
	return &PostgresInterestRepository{db: db}
}

func (r *PostgresInterestRepository) Create(ctx context.Context, i *interest.Interest) error {
	res := r.db.WithContext(ctx).Create(i)
	if res.Error != nil {
		// The (offer_id, user_id) unique index is the authoritative
		// duplicate guard; the service pre-check only covers the common case.
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return barter_errors.ErrDuplicateInterest
		}
		return res.Error
	}
	return nil
}

func (r *PostgresInterestRepository) GetByID(ctx context.Context, id uuid.UUID) (interest.Interest, error) {
	var i interest.Interest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&i).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return interest.Interest{}, barter_errors.ErrNotFound
		}
		return interest.Interest{}, err
	}
	return i, nil
}

func (r *PostgresInterestRepository) GetByOfferAndUser(ctx context.Context, offerID, userID uuid.UUID) (interest.Interest, error) {
	var i interest.Interest
	err := r.db.WithContext(ctx).
		Where("offer_id = ? AND user_id = ?", offerID, userID).
		First(&i).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return interest.Interest{}, barter_errors.ErrNotFound
		}
		return interest.Interest{}, err
	}
	return i, nil
}

func (r *PostgresInterestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&interest.Interest{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return barter_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresInterestRepository) SetStatus(ctx context.Context, id uuid.UUID, status string, realizedAt sql.NullTime) error {
	res := r.db.WithContext(ctx).
		Model(&interest.Interest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"realized_at": realizedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return barter_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresInterestRepository) PromoteToAccepted(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&interest.Interest{}).
		Where("id IN ? AND status = ?", ids, interest.StatusProposed).
		Update("status", interest.StatusAccepted).Error
}

func (r *PostgresInterestRepository) ListByOffer(ctx context.Context, offerID uuid.UUID) ([]interest.Interest, error) {
	var interests []interest.Interest
	err := r.db.WithContext(ctx).
		Where("offer_id = ?", offerID).
		Order("created_at ASC").
		Find(&interests).Error
	if err != nil {
		return nil, err
	}
	return interests, nil
}

func (r *PostgresInterestRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]interest.Interest, error) {
	var interests []interest.Interest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&interests).Error
	if err != nil {
		return nil, err
	}
	return interests, nil
}

func (r *PostgresInterestRepository) CountByOffer(ctx context.Context, offerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&interest.Interest{}).
		Where("offer_id = ?", offerID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresInterestRepository) ListBetween(ctx context.Context, holderID, ownerID uuid.UUID) ([]interest.Interest, error) {
	var interests []interest.Interest
	err := r.db.WithContext(ctx).
		Joins("JOIN offers ON offers.id = interests.offer_id").
		Where("interests.user_id = ? AND offers.user_id = ?", holderID, ownerID).
		Order("interests.created_at ASC").
		Find(&interests).Error
	if err != nil {
		return nil, err
	}
	return interests, nil
}

package repository

import (
	"context"
	"errors"

	"barterhub/internal/domain/exchange"
	barter_errors "barterhub/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresExchangeRepository struct {
	db *gorm.DB
}

func NewExchangeRepository(db *gorm.DB) ExchangeRepository {
	return &PostgresExchangeRepository{db: db}
}

func (r *PostgresExchangeRepository) Create(ctx context.Context, rec *exchange.Record) (bool, error) {
	// The unique index on (chat_id, offer_low_id, offer_high_id) makes the
	// record idempotent under racing double-confirmations: only one insert
	// lands, the loser observes zero affected rows.
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "chat_id"}, {Name: "offer_low_id"}, {Name: "offer_high_id"},
			},
			DoNothing: true,
		}).
		Create(rec)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PostgresExchangeRepository) GetForOffer(ctx context.Context, chatID, offerID uuid.UUID) (exchange.Record, error) {
	var rec exchange.Record
	err := r.db.WithContext(ctx).
		Where("chat_id = ? AND (offer_low_id = ? OR offer_high_id = ?)", chatID, offerID, offerID).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return exchange.Record{}, barter_errors.ErrNotFound
		}
		return exchange.Record{}, err
	}
	return rec, nil
}

func (r *PostgresExchangeRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]exchange.Record, error) {
	var records []exchange.Record
	err := r.db.WithContext(ctx).
		Where("user_low_id = ? OR user_high_id = ?", userID, userID).
		Order("realized_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

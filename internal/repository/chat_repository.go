package repository

import (
	"context"
	"errors"
	"time"

	"barterhub/internal/domain/chat"
	barter_errors "barterhub/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &PostgresChatRepository{db: db}
}

func (r *PostgresChatRepository) Ensure(ctx context.Context, userA, userB uuid.UUID) (chat.Chat, error) {
	low, high := chat.OrderPair(userA, userB)
	now := time.Now()

	// Insert-or-reactivate on the canonical pair, not read-then-write:
	// two matches racing for the same pair must converge on one ACTIVE row.
	c := chat.Chat{
		ID:         uuid.New(),
		UserLowID:  low,
		UserHighID: high,
		Status:     chat.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_low_id"}, {Name: "user_high_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"status":     chat.StatusActive,
				"updated_at": now,
			}),
		}).
		Create(&c).Error
	if err != nil {
		return chat.Chat{}, err
	}

	// On conflict the generated ID above never hit the table; re-read the
	// canonical row.
	return r.GetByPair(ctx, low, high)
}

func (r *PostgresChatRepository) GetByID(ctx context.Context, id uuid.UUID) (chat.Chat, error) {
	var c chat.Chat
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return chat.Chat{}, barter_errors.ErrNotFound
		}
		return chat.Chat{}, err
	}
	return c, nil
}

func (r *PostgresChatRepository) GetByPair(ctx context.Context, userA, userB uuid.UUID) (chat.Chat, error) {
	low, high := chat.OrderPair(userA, userB)
	var c chat.Chat
	err := r.db.WithContext(ctx).
		Where("user_low_id = ? AND user_high_id = ?", low, high).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return chat.Chat{}, barter_errors.ErrNotFound
		}
		return chat.Chat{}, err
	}
	return c, nil
}

func (r *PostgresChatRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]chat.Chat, error) {
	var chats []chat.Chat
	err := r.db.WithContext(ctx).
		Where("user_low_id = ? OR user_high_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&chats).Error
	if err != nil {
		return nil, err
	}
	return chats, nil
}

func (r *PostgresChatRepository) Archive(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&chat.Chat{}).
		Where("id = ?", id).
		Update("status", chat.StatusArchived)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return barter_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresChatRepository) CreateMessage(ctx context.Context, m *chat.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *PostgresChatRepository) ListMessages(ctx context.Context, chatID uuid.UUID, page, limit int) ([]chat.Message, int64, error) {
	var messages []chat.Message
	var total int64

	q := r.db.WithContext(ctx).
		Model(&chat.Message{}).
		Where("chat_id = ?", chatID)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := q.
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

package chat

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive   = "ACTIVE"
	StatusArchived = "ARCHIVED"
)

// Chat represents the chats table: at most one row per unordered user pair.
// Participants are stored in canonical order (UserLowID < UserHighID) so the
// pair maps to a single row under the composite unique index.
type Chat struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserLowID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_chats_pair"`
	UserHighID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_chats_pair"`
	Status     string    `gorm:"default:ACTIVE"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Message represents the messages table
type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChatID    uuid.UUID `gorm:"type:uuid;index"`
	SenderID  uuid.UUID `gorm:"type:uuid"`
	Text      string
	CreatedAt time.Time
}

func (Chat) TableName() string {
	return "chats"
}

func (Message) TableName() string {
	return "messages"
}

func (c Chat) HasParticipant(userID uuid.UUID) bool {
	return c.UserLowID == userID || c.UserHighID == userID
}

func (c Chat) OtherParticipant(userID uuid.UUID) (uuid.UUID, bool) {
	if c.UserLowID == userID {
		return c.UserHighID, true
	}
	if c.UserHighID == userID {
		return c.UserLowID, true
	}
	return uuid.Nil, false
}

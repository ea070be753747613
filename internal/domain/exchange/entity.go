package exchange

import (
	"time"

	"github.com/google/uuid"
)

// Record represents the exchange_records table: an immutable receipt written
// once both sides of a matched offer pair confirmed realization. Offer titles
// are denormalized so history survives offer removal. Offers and users follow
// the chat's canonical pair order: OfferLowID is the offer owned by the
// chat's UserLowID.
//
// The composite unique index on (chat_id, offer_low_id, offer_high_id) is the
// idempotence guard for racing double-confirmations.
type Record struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ChatID         uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_exchange_records_offers;index"`
	UserLowID      uuid.UUID  `gorm:"type:uuid;index"`
	UserHighID     uuid.UUID  `gorm:"type:uuid;index"`
	OfferLowID     *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_exchange_records_offers"`
	OfferHighID    *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_exchange_records_offers"`
	OfferLowTitle  string
	OfferHighTitle string
	RealizedAt     time.Time
	CreatedAt      time.Time
}

func (Record) TableName() string {
	return "exchange_records"
}

func (r Record) HasUser(userID uuid.UUID) bool {
	return r.UserLowID == userID || r.UserHighID == userID
}

package interest

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Interest lifecycle. PROPOSED is one-sided; ACCEPTED means a mutual match
// exists; REALIZED means this side confirmed the exchange happened.
// Legal transitions: PROPOSED -> ACCEPTED -> REALIZED -> ACCEPTED.
const (
	StatusProposed = "PROPOSED"
	StatusAccepted = "ACCEPTED"
	StatusRealized = "REALIZED"
)

// Interest represents the interests table: one row per (offer, user) pair.
type Interest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OfferID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_interests_offer_user;index"`
	UserID     uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_interests_offer_user;index"`
	Status     string    `gorm:"default:PROPOSED"`
	RealizedAt sql.NullTime
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Interest) TableName() string {
	return "interests"
}

func (i Interest) CanCancel() bool {
	return i.Status == StatusProposed || i.Status == StatusAccepted
}

func (i Interest) CanRealize() bool {
	return i.Status == StatusAccepted
}

func (i Interest) CanUnrealize() bool {
	return i.Status == StatusRealized
}

package offer

import (
	"time"

	"github.com/google/uuid"
)

// Offer statuses. Offers are soft-deleted: interests and exchange history
// keep referencing the row after removal.
const (
	StatusActive  = "ACTIVE"
	StatusRemoved = "REMOVED"
)

// Offer represents the offers table
type Offer struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;index"`
	Title       string
	Description string
	Status      string `gorm:"default:ACTIVE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Offer) TableName() string {
	return "offers"
}

func (o Offer) IsActive() bool {
	return o.Status == StatusActive
}

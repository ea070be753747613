package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// User represents the users table. Accounts are owned by the identity
// layer; the exchange core only reads them for ownership checks.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"uniqueIndex"`
	Email        sql.NullString
	PasswordHash string
	DisplayName  string
	Bio          string
	AvatarURL    string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string {
	return "users"
}

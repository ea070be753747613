package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"barterhub/internal/domain/chat"
	"barterhub/internal/domain/exchange"
	"barterhub/internal/domain/interest"
	"barterhub/internal/domain/offer"
	"barterhub/internal/domain/user"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetByUsername(ctx context.Context, username string) (user.User, error)
}

type OfferRepository interface {
	Create(ctx context.Context, o *offer.Offer) error
	GetByID(ctx context.Context, id uuid.UUID) (offer.Offer, error)
	ListActive(ctx context.Context, page, limit int) ([]offer.Offer, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]offer.Offer, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type InterestRepository interface {
	Create(ctx context.Context, i *interest.Interest) error
	GetByID(ctx context.Context, id uuid.UUID) (interest.Interest, error)
	GetByOfferAndUser(ctx context.Context, offerID, userID uuid.UUID) (interest.Interest, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetStatus(ctx context.Context, id uuid.UUID, status string, realizedAt sql.NullTime) error

	// PromoteToAccepted moves the given interests from PROPOSED to ACCEPTED.
	// Rows already past PROPOSED are left untouched.
	PromoteToAccepted(ctx context.Context, ids []uuid.UUID) error

	ListByOffer(ctx context.Context, offerID uuid.UUID) ([]interest.Interest, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]interest.Interest, error)
	CountByOffer(ctx context.Context, offerID uuid.UUID) (int64, error)

	// ListBetween returns the live interests held by holderID that target
	// offers owned by ownerID, oldest first.
	ListBetween(ctx context.Context, holderID, ownerID uuid.UUID) ([]interest.Interest, error)
}

type ChatRepository interface {
	// Ensure creates the chat for the unordered pair or reactivates an
	// existing one. Safe under concurrent invocation for the same pair.
	Ensure(ctx context.Context, userA, userB uuid.UUID) (chat.Chat, error)

	GetByID(ctx context.Context, id uuid.UUID) (chat.Chat, error)
	GetByPair(ctx context.Context, userA, userB uuid.UUID) (chat.Chat, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]chat.Chat, error)
	Archive(ctx context.Context, id uuid.UUID) error

	CreateMessage(ctx context.Context, m *chat.Message) error
	ListMessages(ctx context.Context, chatID uuid.UUID, page, limit int) ([]chat.Message, int64, error)
}

type ExchangeRepository interface {
	// Create inserts the record unless one already exists for the same
	// (chat, offer pair). Reports whether this call created the row.
	Create(ctx context.Context, r *exchange.Record) (bool, error)

	// GetForOffer returns the record in the chat that consumed the given
	// offer, or ErrNotFound when the offer completed no exchange yet.
	GetForOffer(ctx context.Context, chatID, offerID uuid.UUID) (exchange.Record, error)

	ListForUser(ctx context.Context, userID uuid.UUID) ([]exchange.Record, error)
}

// Repositories bundles one repository per aggregate, all bound to the same
// *gorm.DB. Services rebind the bundle to a transaction to get the
// all-or-nothing unit of work the exchange flow requires.
type Repositories struct {
	Users     UserRepository
	Offers    OfferRepository
	Interests InterestRepository
	Chats     ChatRepository
	Exchanges ExchangeRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:     NewUserRepository(db),
		Offers:    NewOfferRepository(db),
		Interests: NewInterestRepository(db),
		Chats:     NewChatRepository(db),
		Exchanges: NewExchangeRepository(db),
	}
}

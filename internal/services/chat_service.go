package services

import (
	"context"
	"strings"
	"time"

	"barterhub/internal/domain/chat"
	"barterhub/internal/repository"
	barter_errors "barterhub/pkg/errors"
	"barterhub/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatService exposes the chats the allocator created for matched pairs.
// Allocation itself happens inside the match transaction; this service owns
// the read side plus plain message exchange (clients poll for new messages).
type ChatService struct {
	db    *gorm.DB
	repos repository.Repositories
	log   *logger.Logger
}

func NewChatService(db *gorm.DB, repos repository.Repositories, log *logger.Logger) *ChatService {
	return &ChatService{db: db, repos: repos, log: log}
}

func (s *ChatService) ListForUser(ctx context.Context, userID uuid.UUID) ([]chat.Chat, error) {
	return s.repos.Chats.ListForUser(ctx, userID)
}

// GetByPair returns the chat between the caller and the other user.
func (s *ChatService) GetByPair(ctx context.Context, userID, otherID uuid.UUID) (chat.Chat, error) {
	return s.repos.Chats.GetByPair(ctx, userID, otherID)
}

// Archive hides a chat from the caller's list. A later mutual match between
// the same pair reactivates it.
func (s *ChatService) Archive(ctx context.Context, chatID, byUserID uuid.UUID) error {
	c, err := s.repos.Chats.GetByID(ctx, chatID)
	if err != nil {
		return err
	}
	if !c.HasParticipant(byUserID) {
		return barter_errors.ErrForbidden
	}
	return s.repos.Chats.Archive(ctx, chatID)
}

func (s *ChatService) ListMessages(ctx context.Context, chatID, byUserID uuid.UUID, page, limit int) ([]chat.Message, int64, error) {
	c, err := s.repos.Chats.GetByID(ctx, chatID)
	if err != nil {
		return nil, 0, err
	}
	if !c.HasParticipant(byUserID) {
		return nil, 0, barter_errors.ErrForbidden
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	return s.repos.Chats.ListMessages(ctx, chatID, page, limit)
}

func (s *ChatService) SendMessage(ctx context.Context, chatID, senderID uuid.UUID, text string) (chat.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return chat.Message{}, barter_errors.ErrInvalidInput
	}

	c, err := s.repos.Chats.GetByID(ctx, chatID)
	if err != nil {
		return chat.Message{}, err
	}
	if !c.HasParticipant(senderID) {
		return chat.Message{}, barter_errors.ErrForbidden
	}

	m := chat.Message{
		ID:        uuid.New(),
		ChatID:    chatID,
		SenderID:  senderID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := s.repos.Chats.CreateMessage(ctx, &m); err != nil {
		return chat.Message{}, err
	}
	return m, nil
}

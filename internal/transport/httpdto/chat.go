package httpdto

import (
	"time"

	"barterhub/internal/domain/chat"

	"github.com/google/uuid"
)

type ChatResponse struct {
	ID          string    `json:"id"`
	UserAID     string    `json:"user_a_id"`
	UserBID     string    `json:"user_b_id"`
	OtherUserID string    `json:"other_user_id,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type MessageResponse struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat_id"`
	SenderID  string    `json:"sender_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

type ListChatsResponse struct {
	Chats []ChatResponse `json:"chats"`
	Count int            `json:"count"`
}

type ListMessagesResponse struct {
	Messages []MessageResponse `json:"messages"`
	Total    int64             `json:"total"`
}

func FromChat(c chat.Chat) ChatResponse {
	return ChatResponse{
		ID:        c.ID.String(),
		UserAID:   c.UserLowID.String(),
		UserBID:   c.UserHighID.String(),
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// FromChatForViewer annotates the chat with the counterpart of the viewing
// user.
func FromChatForViewer(c chat.Chat, viewerID uuid.UUID) ChatResponse {
	resp := FromChat(c)
	if other, ok := c.OtherParticipant(viewerID); ok {
		resp.OtherUserID = other.String()
	}
	return resp
}

func FromChatSliceForViewer(chats []chat.Chat, viewerID uuid.UUID) []ChatResponse {
	out := make([]ChatResponse, 0, len(chats))
	for _, c := range chats {
		out = append(out, FromChatForViewer(c, viewerID))
	}
	return out
}

func FromMessage(m chat.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID.String(),
		ChatID:    m.ChatID.String(),
		SenderID:  m.SenderID.String(),
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	}
}

func FromMessageSlice(messages []chat.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, FromMessage(m))
	}
	return out
}

package dtos

import (
	"time"

	"github.com/sereneapp/serene/internal/domain"
)

// SendMessageRequestDTO is one incoming chat turn. ConversationID 0 means
// no active conversation; one will be created.
type SendMessageRequestDTO struct {
	ConversationID uint   `json:"conversation_id"`
	Message        string `json:"message"`
}

// SendMessageResponseDTO is the caller-facing result of a successful turn.
type SendMessageResponseDTO struct {
	Content        string `json:"content"`
	ContentHTML    string `json:"content_html,omitempty"`
	IsCrisis       bool   `json:"is_crisis"`
	DetectedMood   string `json:"detected_mood,omitempty"`
	ConversationID uint   `json:"conversation_id"`
}

// RenameConversationRequestDTO carries a user-chosen conversation title.
type RenameConversationRequestDTO struct {
	Title string `json:"title"`
}

type ConversationResponseDTO struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type MessageResponseDTO struct {
	ID          uint   `json:"id"`
	Role        string `json:"role"`
	Content     string `json:"content"`
	ContentHTML string `json:"content_html,omitempty"`
	IsCrisis    bool   `json:"is_crisis"`
	CreatedAt   string `json:"created_at"`
}

func ConversationFromDomain(conv domain.Conversation) ConversationResponseDTO {
	return ConversationResponseDTO{
		ID:        conv.ID,
		Title:     conv.Title,
		CreatedAt: conv.CreatedAt.Format(time.RFC3339),
		UpdatedAt: conv.UpdatedAt.Format(time.RFC3339),
	}
}

func ConversationsFromDomain(convs []domain.Conversation) []ConversationResponseDTO {
	out := make([]ConversationResponseDTO, len(convs))
	for i, c := range convs {
		out[i] = ConversationFromDomain(c)
	}
	return out
}

package domain

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn inside a conversation. Messages are append-only
// and never mutated; they are removed only when their conversation is
// deleted. IsCrisis marks the messages of a turn that triggered the fixed
// safety response.
type Message struct {
	ID             uint      `json:"id" gorm:"primarykey"`
	ConversationID uint      `json:"conversation_id" gorm:"not null;index"`
	UserID         uint      `json:"user_id" gorm:"not null"`
	Role           string    `json:"role" gorm:"not null"` // "user" or "assistant"
	Content        string    `json:"content" gorm:"not null"`
	IsCrisis       bool      `json:"is_crisis" gorm:"not null;default:false"`
	CreatedAt      time.Time `json:"created_at"`
}

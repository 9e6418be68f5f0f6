package domain

import "time"

// DefaultConversationTitle is the placeholder title a conversation carries
// until it is auto-titled from its first user message or renamed.
const DefaultConversationTitle = "New Conversation"

// Conversation represents a single titled chat thread owned by one user.
// UpdatedAt is refreshed on every new message and drives the
// most-recently-active-first ordering of the conversation list.
type Conversation struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Title     string    `json:"title" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

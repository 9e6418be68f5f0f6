package conversation

import (
	"context"

	"github.com/sereneapp/serene/internal/domain"
)

// ConversationRepository handles conversation data operations.
// FindByUserID always returns conversations ordered by updated timestamp
// descending; callers never re-sort.
type ConversationRepository interface {
	Create(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error)
	FindByID(ctx context.Context, id uint) (*domain.Conversation, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Conversation, error)
	UpdateTitle(ctx context.Context, convID uint, title string) error
	TouchUpdatedAt(ctx context.Context, convID uint) error
	Delete(ctx context.Context, convID, userID uint) error
}

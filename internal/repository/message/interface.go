package message

import (
	"context"

	"github.com/sereneapp/serene/internal/domain"
)

// MessageRepository handles message data operations. Messages are
// append-only; FindByConversationID returns them in chronological order.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) (*domain.Message, error)
	FindByConversationID(ctx context.Context, convID uint) ([]domain.Message, error)
	CountByConversationID(ctx context.Context, convID uint) (int64, error)
}

package mood

import (
	"context"

	"github.com/sereneapp/serene/internal/domain"
)

// MoodRepository handles mood-entry data operations. Entries are never
// updated; deletion is the only mutation and is always user-initiated.
type MoodRepository interface {
	Create(ctx context.Context, entry *domain.MoodEntry) (*domain.MoodEntry, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.MoodEntry, error)
	Delete(ctx context.Context, entryID, userID uint) error
}

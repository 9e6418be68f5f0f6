package mood

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/sereneapp/serene/internal/domain"
)

var ErrMoodEntryNotFound = errors.New("mood entry not found")

type gormMoodRepository struct {
	db *gorm.DB
}

func NewMoodRepository(db *gorm.DB) MoodRepository {
	return &gormMoodRepository{db: db}
}

// Create inserts a new mood entry after validating it.
func (r *gormMoodRepository) Create(ctx context.Context, entry *domain.MoodEntry) (*domain.MoodEntry, error) {
	if entry == nil {
		return nil, errors.New("mood entry cannot be nil")
	}
	if err := entry.Validate(); err != nil {
		log.Printf("[MoodRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		log.Printf("[MoodRepository] Database error during mood entry creation for user ID %d: %v", entry.UserID, err)
		return nil, errors.New("database error creating mood entry")
	}

	return entry, nil
}

// FindByUserID returns the user's mood entries newest first.
func (r *gormMoodRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.MoodEntry, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}

	var entries []domain.MoodEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		log.Printf("[MoodRepository] Database error finding mood entries for user ID %d: %v", userID, err)
		return nil, errors.New("database error fetching mood entries")
	}

	return entries, nil
}

// Delete removes a single entry owned by the user. Auto-detected entries
// share this path with manual ones.
func (r *gormMoodRepository) Delete(ctx context.Context, entryID, userID uint) error {
	if entryID == 0 || userID == 0 {
		return errors.New("invalid mood entry ID or user ID")
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&domain.MoodEntry{})
	if result.Error != nil {
		log.Printf("[MoodRepository] Database error deleting mood entry ID %d for user ID %d: %v", entryID, userID, result.Error)
		return errors.New("database error deleting mood entry")
	}
	if result.RowsAffected == 0 {
		return ErrMoodEntryNotFound
	}
	return nil
}

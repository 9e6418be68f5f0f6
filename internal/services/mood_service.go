package services

import (
	"context"
	"strings"

	"github.com/sereneapp/serene/internal/domain"
	"github.com/sereneapp/serene/internal/repository/mood"
	chatservice "github.com/sereneapp/serene/internal/services/chat"
)

// MoodService handles manual mood logging. Auto-detected entries are
// written by the chat pipeline and only share the listing and deletion
// paths here.
type MoodService struct {
	moodRepo mood.MoodRepository
	logger   Logger
}

func NewMoodService(moodRepo mood.MoodRepository, logger Logger) (*MoodService, error) {
	if moodRepo == nil {
		return nil, chatservice.NewValidationError("constructor", "mood repository is required")
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}
	return &MoodService{moodRepo: moodRepo, logger: logger}, nil
}

// LogMood records a user-chosen mood with optional notes.
func (s *MoodService) LogMood(ctx context.Context, userID uint, moodLabel domain.Mood, notes string) (*domain.MoodEntry, error) {
	entry := &domain.MoodEntry{
		UserID: userID,
		Mood:   moodLabel,
		Notes:  strings.TrimSpace(notes),
		Source: domain.MoodSourceManual,
	}
	if err := entry.Validate(); err != nil {
		return nil, chatservice.NewValidationError("log_mood", err.Error())
	}

	created, err := s.moodRepo.Create(ctx, entry)
	if err != nil {
		return nil, chatservice.NewPersistenceError("log_mood", "could not save mood entry", err)
	}
	return created, nil
}

// GetMoodEntries lists the user's entries newest first, manual and
// auto-detected alike.
func (s *MoodService) GetMoodEntries(ctx context.Context, userID uint) ([]domain.MoodEntry, error) {
	return s.moodRepo.FindByUserID(ctx, userID)
}

// DeleteMoodEntry removes one entry owned by the user.
func (s *MoodService) DeleteMoodEntry(ctx context.Context, userID, entryID uint) error {
	if err := s.moodRepo.Delete(ctx, entryID, userID); err != nil {
		return chatservice.NewPersistenceError("delete_mood", "could not delete mood entry", err)
	}
	return nil
}

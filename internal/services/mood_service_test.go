package services

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sereneapp/serene/internal/domain"
	"github.com/sereneapp/serene/internal/repository/mood"
	chatservice "github.com/sereneapp/serene/internal/services/chat"
)

func newTestMoodService(t *testing.T) *MoodService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.MoodEntry{}))

	svc, err := NewMoodService(mood.NewMoodRepository(db), &NoOpLogger{})
	require.NoError(t, err)
	return svc
}

func TestLogMoodManualEntry(t *testing.T) {
	svc := newTestMoodService(t)
	ctx := context.Background()

	entry, err := svc.LogMood(ctx, 1, domain.MoodHappy, "  went for a walk  ")
	require.NoError(t, err)
	assert.Equal(t, domain.MoodHappy, entry.Mood)
	assert.Equal(t, "went for a walk", entry.Notes)
	assert.Equal(t, domain.MoodSourceManual, entry.Source)
}

func TestLogMoodRejectsInvalidMood(t *testing.T) {
	svc := newTestMoodService(t)

	_, err := svc.LogMood(context.Background(), 1, domain.Mood("elated"), "")
	require.Error(t, err)

	var chatErr *chatservice.ChatError
	require.ErrorAs(t, err, &chatErr)
	assert.Equal(t, chatservice.ErrTypeValidation, chatErr.Type)
}

func TestGetMoodEntriesNewestFirst(t *testing.T) {
	svc := newTestMoodService(t)
	ctx := context.Background()

	first, err := svc.LogMood(ctx, 1, domain.MoodSad, "")
	require.NoError(t, err)
	second, err := svc.LogMood(ctx, 1, domain.MoodNeutral, "")
	require.NoError(t, err)

	entries, err := svc.GetMoodEntries(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, first.ID, entries[1].ID)
}

func TestDeleteMoodEntryRequiresOwnership(t *testing.T) {
	svc := newTestMoodService(t)
	ctx := context.Background()

	entry, err := svc.LogMood(ctx, 1, domain.MoodHappy, "")
	require.NoError(t, err)

	err = svc.DeleteMoodEntry(ctx, 2, entry.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, mood.ErrMoodEntryNotFound)

	entries, err := svc.GetMoodEntries(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "entry must survive a foreign delete")

	require.NoError(t, svc.DeleteMoodEntry(ctx, 1, entry.ID))
	entries, err = svc.GetMoodEntries(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

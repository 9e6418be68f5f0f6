package conversation

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sereneapp/serene/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Conversation{}, &domain.Message{}))
	return db
}

func TestCreateAndFindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Conversation{UserID: 1, Title: domain.DefaultConversationTitle})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConversationTitle, found.Title)
	assert.Equal(t, uint(1), found.UserID)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.Conversation{UserID: 0, Title: "x"})
	assert.Error(t, err)

	_, err = repo.Create(ctx, &domain.Conversation{UserID: 1, Title: "   "})
	assert.Error(t, err)

	_, err = repo.Create(ctx, &domain.Conversation{UserID: 1, Title: "<script>alert(1)</script>"})
	assert.Error(t, err)
}

func TestFindByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConversationRepository(db)

	_, err := repo.FindByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestFindByUserIDOrdersByActivity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	first, err := repo.Create(ctx, &domain.Conversation{UserID: 1, Title: "first"})
	require.NoError(t, err)
	second, err := repo.Create(ctx, &domain.Conversation{UserID: 1, Title: "second"})
	require.NoError(t, err)
	third, err := repo.Create(ctx, &domain.Conversation{UserID: 1, Title: "third"})
	require.NoError(t, err)

	// Give each conversation a distinct activity time, oldest in the
	// middle, so the result order cannot come from insertion order.
	now := time.Now().UTC()
	setUpdatedAt(t, db, first.ID, now.Add(-1*time.Hour))
	setUpdatedAt(t, db, second.ID, now.Add(-3*time.Hour))
	setUpdatedAt(t, db, third.ID, now.Add(-2*time.Hour))

	convs, err := repo.FindByUserID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, convs, 3)
	assert.Equal(t, "first", convs[0].Title)
	assert.Equal(t, "third", convs[1].Title)
	assert.Equal(t, "second", convs[2].Title)
}

func TestFindByUserIDScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.Conversation{UserID: 1, Title: "mine"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Conversation{UserID: 2, Title: "theirs"})
	require.NoError(t, err)

	convs, err := repo.FindByUserID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, "mine", convs[0].Title)
}

func TestUpdateTitle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	conv, err := repo.Create(ctx, &domain.Conversation{UserID: 1, Title: domain.DefaultConversationTitle})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateTitle(ctx, conv.ID, "I feel stressed about work..."))

	found, err := repo.FindByID(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, "I feel stressed about work...", found.Title)
}

func TestUpdateTitleRejectsEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	conv, err := repo.Create(ctx, &domain.Conversation{UserID: 1, Title: "kept"})
	require.NoError(t, err)

	assert.Error(t, repo.UpdateTitle(ctx, conv.ID, "   "))

	found, err := repo.FindByID(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, "kept", found.Title)
}

func TestUpdateTitleMissingConversation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConversationRepository(db)

	err := repo.UpdateTitle(context.Background(), 999, "anything")
	assert.ErrorIs(t, err, ErrConversationNotFound)
}

func TestTouchUpdatedAt(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	conv, err := repo.Create(ctx, &domain.Conversation{UserID: 1, Title: "t"})
	require.NoError(t, err)

	old := time.Now().UTC().Add(-24 * time.Hour)
	setUpdatedAt(t, db, conv.ID, old)

	require.NoError(t, repo.TouchUpdatedAt(ctx, conv.ID))

	found, err := repo.FindByID(ctx, conv.ID)
	require.NoError(t, err)
	assert.True(t, found.UpdatedAt.After(old.Add(time.Hour)), "updated_at should be refreshed to now")

	assert.ErrorIs(t, repo.TouchUpdatedAt(ctx, 999), ErrConversationNotFound)
}

func TestTouchUpdatedAtReordersListing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	older, err := repo.Create(ctx, &domain.Conversation{UserID: 1, Title: "older"})
	require.NoError(t, err)
	newer, err := repo.Create(ctx, &domain.Conversation{UserID: 1, Title: "newer"})
	require.NoError(t, err)

	// Touch writes the timestamp in the same serialization the driver
	// uses on insert, so a freshly touched conversation always collates
	// above every untouched one, fractional seconds and offset included.
	require.NoError(t, repo.TouchUpdatedAt(ctx, older.ID))

	convs, err := repo.FindByUserID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, older.ID, convs[0].ID)
	assert.Equal(t, newer.ID, convs[1].ID)
}

func TestDeleteCascadesMessages(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	conv, err := repo.Create(ctx, &domain.Conversation{UserID: 1, Title: "doomed"})
	require.NoError(t, err)
	other, err := repo.Create(ctx, &domain.Conversation{UserID: 1, Title: "survivor"})
	require.NoError(t, err)

	msgs := []domain.Message{
		{ConversationID: conv.ID, UserID: 1, Role: domain.RoleUser, Content: "hi"},
		{ConversationID: conv.ID, UserID: 1, Role: domain.RoleAssistant, Content: "hello"},
		{ConversationID: other.ID, UserID: 1, Role: domain.RoleUser, Content: "kept"},
	}
	require.NoError(t, db.Create(&msgs).Error)

	require.NoError(t, repo.Delete(ctx, conv.ID, 1))

	_, err = repo.FindByID(ctx, conv.ID)
	assert.ErrorIs(t, err, ErrConversationNotFound)

	var count int64
	require.NoError(t, db.Model(&domain.Message{}).Where("conversation_id = ?", conv.ID).Count(&count).Error)
	assert.Zero(t, count, "messages of the deleted conversation must be gone")

	require.NoError(t, db.Model(&domain.Message{}).Where("conversation_id = ?", other.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count, "other conversations keep their messages")
}

func TestDeleteRequiresOwnership(t *testing.T) {
	db := setupTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	conv, err := repo.Create(ctx, &domain.Conversation{UserID: 1, Title: "private"})
	require.NoError(t, err)

	err = repo.Delete(ctx, conv.ID, 2)
	assert.ErrorIs(t, err, ErrUnauthorizedAccess)

	_, err = repo.FindByID(ctx, conv.ID)
	assert.NoError(t, err, "conversation must survive an unauthorized delete")
}

func setUpdatedAt(t *testing.T, db *gorm.DB, convID uint, when time.Time) {
	t.Helper()
	err := db.Model(&domain.Conversation{}).
		Where("id = ?", convID).
		Update("updated_at", when).Error
	require.NoError(t, err)
}

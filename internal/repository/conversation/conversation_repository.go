package conversation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sereneapp/serene/internal/domain"
)

var ErrConversationNotFound = errors.New("conversation not found")
var ErrUnauthorizedAccess = errors.New("unauthorized access to conversation")

const maxTitleLength = 200

type gormConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &gormConversationRepository{db: db}
}

// Create inserts a new conversation after validating its input.
func (r *gormConversationRepository) Create(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error) {
	if err := r.validateConversationInput(conv); err != nil {
		log.Printf("[ConversationRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(conv).Error; err != nil {
		log.Printf("[ConversationRepository] Database error during creation for user ID %d: %v", conv.UserID, err)
		return nil, errors.New("database error creating conversation")
	}

	return conv, nil
}

func (r *gormConversationRepository) FindByID(ctx context.Context, id uint) (*domain.Conversation, error) {
	if id == 0 {
		return nil, errors.New("invalid conversation ID")
	}

	var conv domain.Conversation
	err := r.db.WithContext(ctx).First(&conv, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		log.Printf("[ConversationRepository] FindByID database error: %v", err)
		return nil, errors.New("database query failed")
	}
	return &conv, nil
}

// FindByUserID returns the user's conversations most recently active first.
// The updated_at ordering is the sole mechanism behind the sidebar order.
func (r *gormConversationRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Conversation, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}

	var convs []domain.Conversation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC, id DESC").
		Find(&convs).Error
	if err != nil {
		log.Printf("[ConversationRepository] Database error finding conversations for user ID %d: %v", userID, err)
		return nil, errors.New("database error fetching conversations")
	}

	return convs, nil
}

// UpdateTitle sets the conversation title. The title must already be
// validated as non-empty by the caller; an empty title is rejected here as
// a last line of defense against persisting one.
func (r *gormConversationRepository) UpdateTitle(ctx context.Context, convID uint, title string) error {
	if convID == 0 {
		return errors.New("invalid conversation ID")
	}
	if strings.TrimSpace(title) == "" {
		return errors.New("conversation title cannot be empty")
	}
	if err := r.validateTitle(title); err != nil {
		return fmt.Errorf("title validation: %w", err)
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Conversation{}).
		Where("id = ?", convID).
		Update("title", title)
	if result.Error != nil {
		log.Printf("[ConversationRepository] Database error updating title for conversation ID %d: %v", convID, result.Error)
		return errors.New("database error updating conversation title")
	}
	if result.RowsAffected == 0 {
		return ErrConversationNotFound
	}
	return nil
}

// TouchUpdatedAt refreshes the updated timestamp to now. The value is set
// from Go, not CURRENT_TIMESTAMP: the driver stores time.Time as offset-
// and fraction-bearing text, and SQLite compares TEXT lexicographically,
// so mixing in the server-side format would corrupt the recency ordering.
func (r *gormConversationRepository) TouchUpdatedAt(ctx context.Context, convID uint) error {
	if convID == 0 {
		return errors.New("invalid conversation ID")
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Conversation{}).
		Where("id = ?", convID).
		Update("updated_at", time.Now())
	if result.Error != nil {
		log.Printf("[ConversationRepository] Database error updating timestamp for conversation ID %d: %v", convID, result.Error)
		return errors.New("database error updating conversation timestamp")
	}
	if result.RowsAffected == 0 {
		return ErrConversationNotFound
	}
	return nil
}

// Delete removes the conversation and all its messages in one transaction,
// so a crash mid-delete can never orphan messages.
func (r *gormConversationRepository) Delete(ctx context.Context, convID, userID uint) error {
	if convID == 0 || userID == 0 {
		return errors.New("invalid conversation ID or user ID")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", convID, userID).
			Delete(&domain.Conversation{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUnauthorizedAccess
		}
		return tx.Where("conversation_id = ?", convID).
			Delete(&domain.Message{}).Error
	})
	if err != nil {
		if errors.Is(err, ErrUnauthorizedAccess) {
			return ErrUnauthorizedAccess
		}
		log.Printf("[ConversationRepository] Database error deleting conversation ID %d for user ID %d: %v", convID, userID, err)
		return errors.New("database error deleting conversation")
	}

	log.Printf("[ConversationRepository] Conversation deleted: ID %d for user %d", convID, userID)
	return nil
}

func (r *gormConversationRepository) validateConversationInput(conv *domain.Conversation) error {
	if conv == nil {
		return errors.New("conversation cannot be nil")
	}
	if conv.UserID == 0 {
		return errors.New("user ID is required")
	}
	if strings.TrimSpace(conv.Title) == "" {
		return errors.New("conversation title cannot be empty")
	}
	return r.validateTitle(conv.Title)
}

func (r *gormConversationRepository) validateTitle(title string) error {
	if len(title) > maxTitleLength {
		return fmt.Errorf("title must be %d characters or less", maxTitleLength)
	}
	// Basic XSS protection
	if strings.Contains(title, "<script") || strings.Contains(title, "javascript:") {
		return errors.New("invalid characters detected in title")
	}
	return nil
}

package message

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/sereneapp/serene/internal/domain"
)

var ErrMessageNotFound = errors.New("message not found")

type gormMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

// Create appends a message after validating its input.
func (r *gormMessageRepository) Create(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	if err := r.validateMessageInput(message); err != nil {
		log.Printf("[MessageRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		// Secure logging - message content never exposed
		log.Printf("[MessageRepository] Database error during message creation for conversation ID %d: %v", message.ConversationID, err)
		return nil, errors.New("database error creating message")
	}

	return message, nil
}

// FindByConversationID returns all messages of a conversation in
// chronological order.
func (r *gormMessageRepository) FindByConversationID(ctx context.Context, convID uint) ([]domain.Message, error) {
	if convID == 0 {
		return nil, errors.New("invalid conversation ID")
	}

	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", convID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error finding messages for conversation ID %d: %v", convID, err)
		return nil, errors.New("database error fetching messages")
	}

	return messages, nil
}

func (r *gormMessageRepository) CountByConversationID(ctx context.Context, convID uint) (int64, error) {
	if convID == 0 {
		return 0, errors.New("invalid conversation ID")
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("conversation_id = ?", convID).
		Count(&count).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error counting messages for conversation ID %d: %v", convID, err)
		return 0, errors.New("database error counting messages")
	}

	return count, nil
}

func (r *gormMessageRepository) validateMessageInput(message *domain.Message) error {
	if message == nil {
		return errors.New("message cannot be nil")
	}
	if message.ConversationID == 0 {
		return errors.New("conversation ID is required")
	}
	if message.UserID == 0 {
		return errors.New("user ID is required")
	}
	if message.Role != domain.RoleUser && message.Role != domain.RoleAssistant {
		return fmt.Errorf("role must be %q or %q", domain.RoleUser, domain.RoleAssistant)
	}
	if message.Content == "" {
		return errors.New("message content cannot be empty")
	}
	return nil
}

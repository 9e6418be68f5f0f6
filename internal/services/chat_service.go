package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sereneapp/serene/internal/domain"
	"github.com/sereneapp/serene/internal/repository/conversation"
	"github.com/sereneapp/serene/internal/repository/message"
	"github.com/sereneapp/serene/internal/repository/mood"
	chatservice "github.com/sereneapp/serene/internal/services/chat"
)

// TurnResult is what the caller receives for one successful chat turn.
type TurnResult struct {
	Content        string
	IsCrisis       bool
	DetectedMood   domain.Mood
	ConversationID uint
}

// ChatService owns the message-intake pipeline: it sequences
// classification, response selection, persistence and the auto-detected
// mood side effect for every incoming user message, and carries the
// conversation CRUD operations around it.
type ChatService struct {
	config    *chatservice.Config
	convRepo  conversation.ConversationRepository
	msgRepo   message.MessageRepository
	moodRepo  mood.MoodRepository
	responder *chatservice.Responder
	locks     *chatservice.ConversationLocks
	logger    Logger
}

func NewChatService(
	convRepo conversation.ConversationRepository,
	msgRepo message.MessageRepository,
	moodRepo mood.MoodRepository,
	aiService *AIService,
	logger Logger,
) (*ChatService, error) {
	if convRepo == nil {
		return nil, chatservice.NewValidationError("constructor", "conversation repository is required")
	}
	if msgRepo == nil {
		return nil, chatservice.NewValidationError("constructor", "message repository is required")
	}
	if moodRepo == nil {
		return nil, chatservice.NewValidationError("constructor", "mood repository is required")
	}
	if aiService == nil {
		return nil, chatservice.NewValidationError("constructor", "AI service is required")
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}

	config := chatservice.DefaultConfig()
	if err := config.Validate(); err != nil {
		return nil, chatservice.NewValidationError("config", err.Error())
	}

	return &ChatService{
		config:    config,
		convRepo:  convRepo,
		msgRepo:   msgRepo,
		moodRepo:  moodRepo,
		responder: chatservice.NewResponder(config, aiService, logger),
		locks:     chatservice.NewConversationLocks(),
		logger:    logger,
	}, nil
}

// CreateConversation starts a new, empty conversation with the placeholder
// title. The real title arrives with the first message.
func (s *ChatService) CreateConversation(ctx context.Context, userID uint) (*domain.Conversation, error) {
	newConv := &domain.Conversation{UserID: userID, Title: domain.DefaultConversationTitle}
	created, err := s.convRepo.Create(ctx, newConv)
	if err != nil {
		return nil, chatservice.NewPersistenceError("create_conversation", "could not create conversation", err)
	}
	return created, nil
}

// GetUserConversations lists the user's conversations most recently
// active first.
func (s *ChatService) GetUserConversations(ctx context.Context, userID uint) ([]domain.Conversation, error) {
	return s.convRepo.FindByUserID(ctx, userID)
}

// authorizeConversation loads a conversation and verifies ownership. The
// failure modes stay distinct: a missing conversation is NOT_FOUND, a
// foreign one is UNAUTHORIZED, and a database failure surfaces as a
// persistence error rather than masquerading as either.
func (s *ChatService) authorizeConversation(ctx context.Context, userID, convID uint) (*domain.Conversation, error) {
	convRecord, err := s.convRepo.FindByID(ctx, convID)
	if err != nil {
		if errors.Is(err, conversation.ErrConversationNotFound) {
			return nil, chatservice.NewNotFoundError("authorization", convID)
		}
		return nil, chatservice.NewPersistenceError("authorization", "could not load conversation", err)
	}
	if convRecord.UserID != userID {
		return nil, chatservice.NewUnauthorizedError(userID, convID)
	}
	return convRecord, nil
}

// GetConversationMessages returns a conversation's messages in
// chronological order after verifying ownership.
func (s *ChatService) GetConversationMessages(ctx context.Context, userID, convID uint) ([]domain.Message, error) {
	if _, err := s.authorizeConversation(ctx, userID, convID); err != nil {
		return nil, err
	}
	return s.msgRepo.FindByConversationID(ctx, convID)
}

// RenameConversation applies a user-chosen title. An empty title after
// trimming is a silent no-op: an empty title is never persisted and the
// caller sees success.
func (s *ChatService) RenameConversation(ctx context.Context, userID, convID uint, newTitle string) error {
	if _, err := s.authorizeConversation(ctx, userID, convID); err != nil {
		return err
	}

	trimmed := strings.TrimSpace(newTitle)
	if trimmed == "" {
		s.logger.Debug("rename with empty title ignored", "conversation_id", convID)
		return nil
	}

	if err := s.convRepo.UpdateTitle(ctx, convID, trimmed); err != nil {
		return chatservice.NewPersistenceError("rename_conversation", "could not rename conversation", err)
	}
	return nil
}

// DeleteConversation removes a conversation and, transactionally, all its
// messages. The delete runs under the conversation lock so it cannot
// interleave with the persistence steps of an in-flight turn. Selecting
// the next active conversation is the caller's job.
func (s *ChatService) DeleteConversation(ctx context.Context, userID, convID uint) error {
	if _, err := s.authorizeConversation(ctx, userID, convID); err != nil {
		return err
	}

	s.locks.Lock(convID)
	defer s.locks.Unlock(convID)

	if err := s.convRepo.Delete(ctx, convID, userID); err != nil {
		return chatservice.NewPersistenceError("delete_conversation", "could not delete conversation", err)
	}
	return nil
}

// SendMessage runs one full chat turn. convID 0 means no active
// conversation, in which case one is created first. The persistence steps
// hold the conversation lock; the generation call does not. A generation
// failure aborts the turn after the user message and conversation metadata
// have committed, and nothing is rolled back.
func (s *ChatService) SendMessage(ctx context.Context, userID, convID uint, text string) (*TurnResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, chatservice.NewValidationError("send_message", "message cannot be empty")
	}

	if convID == 0 {
		created, err := s.CreateConversation(ctx, userID)
		if err != nil {
			return nil, err
		}
		convID = created.ID
	} else {
		if _, err := s.authorizeConversation(ctx, userID, convID); err != nil {
			return nil, err
		}
	}

	history, err := s.persistUserTurn(ctx, userID, convID, text)
	if err != nil {
		return nil, err
	}

	// Generation runs outside the conversation lock; the turn holds no
	// lock across the network call.
	reply, err := s.responder.Respond(ctx, text, history)
	if err != nil {
		return nil, chatservice.NewGenerationError("send_message", "could not get a response", err)
	}

	if err := s.persistAssistantTurn(ctx, userID, convID, reply); err != nil {
		return nil, err
	}

	if reply.DetectedMood != domain.MoodNone {
		if err := s.recordDetectedMood(ctx, userID, text, reply.DetectedMood); err != nil {
			return nil, err
		}
	}

	return &TurnResult{
		Content:        reply.Content,
		IsCrisis:       reply.IsCrisis,
		DetectedMood:   reply.DetectedMood,
		ConversationID: convID,
	}, nil
}

// persistUserTurn commits the user half of the turn under the
// conversation lock: the message itself with its crisis flag, the
// first-message auto-title, and the activity timestamp. It returns the
// history as it stood before this message, for the generation request.
func (s *ChatService) persistUserTurn(ctx context.Context, userID, convID uint, text string) ([]domain.Message, error) {
	s.locks.Lock(convID)
	defer s.locks.Unlock(convID)

	// Re-checked under the lock: a concurrent delete may have won the
	// race since the pre-lock ownership check.
	if _, err := s.authorizeConversation(ctx, userID, convID); err != nil {
		return nil, err
	}

	history, err := s.msgRepo.FindByConversationID(ctx, convID)
	if err != nil {
		return nil, chatservice.NewPersistenceError("send_message", "could not load history", err)
	}
	isFirstMessage := len(history) == 0

	classification := chatservice.Classify(text)
	userMessage := &domain.Message{
		ConversationID: convID,
		UserID:         userID,
		Role:           domain.RoleUser,
		Content:        text,
		IsCrisis:       classification.Crisis,
	}
	if _, err := s.msgRepo.Create(ctx, userMessage); err != nil {
		return nil, chatservice.NewPersistenceError("send_message", "could not save user message", err)
	}

	if isFirstMessage {
		title := chatservice.TruncateWithEllipsis(text, s.config.TitleMaxLen)
		if err := s.convRepo.UpdateTitle(ctx, convID, title); err != nil {
			return nil, chatservice.NewPersistenceError("send_message", "could not auto-title conversation", err)
		}
	}

	if err := s.convRepo.TouchUpdatedAt(ctx, convID); err != nil {
		return nil, chatservice.NewPersistenceError("send_message", "could not update conversation activity", err)
	}

	return history, nil
}

func (s *ChatService) persistAssistantTurn(ctx context.Context, userID, convID uint, reply chatservice.Reply) error {
	s.locks.Lock(convID)
	defer s.locks.Unlock(convID)

	// The conversation may have been deleted while generation ran
	// unlocked; never insert a reply into a conversation that is gone.
	if _, err := s.authorizeConversation(ctx, userID, convID); err != nil {
		return err
	}

	assistantMessage := &domain.Message{
		ConversationID: convID,
		UserID:         userID,
		Role:           domain.RoleAssistant,
		Content:        reply.Content,
		IsCrisis:       reply.IsCrisis,
	}
	if _, err := s.msgRepo.Create(ctx, assistantMessage); err != nil {
		return chatservice.NewPersistenceError("send_message", "could not save assistant message", err)
	}

	if err := s.convRepo.TouchUpdatedAt(ctx, convID); err != nil {
		return chatservice.NewPersistenceError("send_message", "could not update conversation activity", err)
	}
	return nil
}

// recordDetectedMood writes the auto-detected mood entry for a turn that
// yielded a signal, with an attributed excerpt of the triggering text.
func (s *ChatService) recordDetectedMood(ctx context.Context, userID uint, text string, detected domain.Mood) error {
	excerpt := chatservice.TruncateWithEllipsis(text, s.config.NoteExcerptMaxLen)
	entry := &domain.MoodEntry{
		UserID: userID,
		Mood:   detected,
		Notes:  fmt.Sprintf("Auto-detected from chat: \"%s\"", excerpt),
		Source: domain.MoodSourceChat,
	}
	if _, err := s.moodRepo.Create(ctx, entry); err != nil {
		return chatservice.NewPersistenceError("send_message", "could not save detected mood", err)
	}
	s.logger.Info("auto-detected mood recorded", "user_id", userID, "mood", string(detected))
	return nil
}

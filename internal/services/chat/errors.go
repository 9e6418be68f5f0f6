package chat

import "fmt"

type ErrorType string

const (
	ErrTypeConfig       ErrorType = "CONFIG"
	ErrTypeValidation   ErrorType = "VALIDATION"
	ErrTypePersistence  ErrorType = "PERSISTENCE"
	ErrTypeGeneration   ErrorType = "GENERATION"
	ErrTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrTypeNotFound     ErrorType = "NOT_FOUND"
)

type ChatError struct {
	Type           ErrorType
	Operation      string
	Message        string
	ConversationID uint
	UserID         uint
	Cause          error
}

func (e *ChatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Chat %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("Chat %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *ChatError) Unwrap() error { return e.Cause }

func NewValidationError(operation, msg string) *ChatError {
	return &ChatError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

func NewPersistenceError(operation, msg string, cause error) *ChatError {
	return &ChatError{Type: ErrTypePersistence, Operation: operation, Message: msg, Cause: cause}
}

func NewGenerationError(operation, msg string, cause error) *ChatError {
	return &ChatError{Type: ErrTypeGeneration, Operation: operation, Message: msg, Cause: cause}
}

func NewNotFoundError(operation string, convID uint) *ChatError {
	return &ChatError{
		Type:           ErrTypeNotFound,
		Operation:      operation,
		Message:        "conversation not found",
		ConversationID: convID,
	}
}

func NewUnauthorizedError(userID, convID uint) *ChatError {
	return &ChatError{
		Type:           ErrTypeUnauthorized,
		Operation:      "authorization",
		Message:        "conversation not found or unauthorized",
		UserID:         userID,
		ConversationID: convID,
	}
}

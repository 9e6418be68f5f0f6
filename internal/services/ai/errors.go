package ai

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeNetwork    ErrorType = "NETWORK"
	ErrTypeProvider   ErrorType = "PROVIDER"
	ErrTypeRateLimit  ErrorType = "RATE_LIMIT"
	ErrTypeQuota      ErrorType = "QUOTA"
	ErrTypeValidation ErrorType = "VALIDATION"
)

type AIError struct {
	Type      ErrorType
	Code      int
	Message   string
	Operation string
	Cause     error
}

func (e *AIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("AI %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("AI %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *AIError) Unwrap() error { return e.Cause }

func NewConfigError(msg string) *AIError {
	return &AIError{Type: ErrTypeConfig, Message: msg, Operation: "config"}
}

func NewProviderError(operation, msg string, cause error) *AIError {
	return &AIError{Type: ErrTypeProvider, Operation: operation, Message: msg, Cause: cause}
}

func NewRateLimitError(operation string, cause error) *AIError {
	return &AIError{Type: ErrTypeRateLimit, Code: 429, Operation: operation,
		Message: "rate limit exceeded", Cause: cause}
}

func NewQuotaError(operation string, cause error) *AIError {
	return &AIError{Type: ErrTypeQuota, Code: 402, Operation: operation,
		Message: "quota or capacity exhausted", Cause: cause}
}

// IsRateLimit reports whether err is a rate-limit failure from the
// generation service.
func IsRateLimit(err error) bool {
	var aiErr *AIError
	return errors.As(err, &aiErr) && aiErr.Type == ErrTypeRateLimit
}

// IsQuota reports whether err is a quota/capacity failure from the
// generation service.
func IsQuota(err error) bool {
	var aiErr *AIError
	return errors.As(err, &aiErr) && aiErr.Type == ErrTypeQuota
}

package ai

import "context"

// ChatMessage is one role/content pair of a completion request.
type ChatMessage struct {
	Role    string
	Content string
}

// CompletionProvider handles chat completions against the generation
// service. A single call is a single attempt; callers own any retry
// policy, and none is applied for chat turns.
type CompletionProvider interface {
	CreateChatCompletion(ctx context.Context, messages []ChatMessage) (string, error)
}

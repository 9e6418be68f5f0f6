package services

import (
	"context"

	"github.com/sereneapp/serene/internal/services/ai"
)

// AIService wraps the completion provider behind a validated configuration.
type AIService struct {
	provider ai.CompletionProvider
	config   *ai.Config
}

func NewAIService(apiKey, baseURL, model string) (*AIService, error) {
	config := ai.DefaultConfig()
	config.APIKey = apiKey
	config.BaseURL = baseURL
	config.Model = model

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &AIService{
		provider: ai.NewOpenAIProvider(config),
		config:   config,
	}, nil
}

// CreateChatCompletion performs a single, non-retried completion call.
func (s *AIService) CreateChatCompletion(ctx context.Context, messages []ai.ChatMessage) (string, error) {
	return s.provider.CreateChatCompletion(ctx, messages)
}

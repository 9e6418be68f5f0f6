package ai

import (
	"context"
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider talks to any OpenAI-compatible chat-completions endpoint.
type OpenAIProvider struct {
	config *Config
	client *openai.Client
}

func NewOpenAIProvider(config *Config) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	return &OpenAIProvider{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

// CreateChatCompletion sends the full role/content sequence and returns the
// generated text. Upstream 429 and 402 statuses are surfaced as distinct
// error types so callers can tell rate limiting and capacity exhaustion
// apart from generic failures.
func (p *OpenAIProvider) CreateChatCompletion(ctx context.Context, messages []ChatMessage) (string, error) {
	if len(messages) == 0 {
		return "", &AIError{Type: ErrTypeValidation, Operation: "completion", Message: "no messages to send"}
	}

	req := openai.ChatCompletionRequest{
		Model:       p.config.Model,
		Temperature: p.config.Temperature,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", p.classifyError("completion", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &AIError{
			Type:      ErrTypeProvider,
			Operation: "completion",
			Message:   "empty completion response",
		}
	}

	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) classifyError(operation string, err error) *AIError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			return NewRateLimitError(operation, err)
		case http.StatusPaymentRequired:
			return NewQuotaError(operation, err)
		}
	}
	return NewProviderError(operation, "failed to create completion", err)
}

package chat

import (
	"context"

	"github.com/sereneapp/serene/internal/domain"
	"github.com/sereneapp/serene/internal/services/ai"
)

// Reply is the outcome of selecting a response for one user message.
type Reply struct {
	Content      string
	IsCrisis     bool
	DetectedMood domain.Mood
}

// Responder decides between the fixed safety script and a generated reply.
type Responder struct {
	config   *Config
	provider ai.CompletionProvider
	logger   Logger
}

func NewResponder(config *Config, provider ai.CompletionProvider, logger Logger) *Responder {
	return &Responder{
		config:   config,
		provider: provider,
		logger:   logger,
	}
}

// Respond classifies the user text and produces the reply for this turn.
// A crisis signal short-circuits to the verbatim safety script without
// touching the generation service. Otherwise the provider is invoked once,
// under a timeout, with the system prompt, the prior history and the new
// user message as the latest turn. The detected mood always comes from the
// classifier, never from the model. Generation failures propagate to the
// caller untouched so rate-limit and quota conditions stay distinguishable.
func (r *Responder) Respond(ctx context.Context, userText string, history []domain.Message) (Reply, error) {
	result := Classify(userText)

	if result.Crisis {
		r.logger.Warn("crisis signal detected, returning safety script")
		return Reply{
			Content:      CrisisResponse,
			IsCrisis:     true,
			DetectedMood: domain.MoodVerySad,
		}, nil
	}

	messages := make([]ai.ChatMessage, 0, len(history)+2)
	messages = append(messages, ai.ChatMessage{Role: "system", Content: SystemPrompt})
	for _, m := range history {
		messages = append(messages, ai.ChatMessage{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, ai.ChatMessage{Role: domain.RoleUser, Content: userText})

	genCtx, cancel := context.WithTimeout(ctx, r.config.GenerationTimeout)
	defer cancel()

	content, err := r.provider.CreateChatCompletion(genCtx, messages)
	if err != nil {
		r.logger.Error("completion call failed", "error", err)
		return Reply{}, err
	}

	return Reply{
		Content:      content,
		IsCrisis:     false,
		DetectedMood: result.Mood,
	}, nil
}

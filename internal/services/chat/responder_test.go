package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sereneapp/serene/internal/domain"
	"github.com/sereneapp/serene/internal/services/ai"
)

type stubProvider struct {
	reply    string
	err      error
	calls    int
	received []ai.ChatMessage
}

func (s *stubProvider) CreateChatCompletion(ctx context.Context, messages []ai.ChatMessage) (string, error) {
	s.calls++
	s.received = messages
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

type testLogger struct{}

func (testLogger) Info(msg string, keysAndValues ...interface{})  {}
func (testLogger) Error(msg string, keysAndValues ...interface{}) {}
func (testLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (testLogger) Warn(msg string, keysAndValues ...interface{})  {}

func newTestResponder(provider ai.CompletionProvider) *Responder {
	return NewResponder(DefaultConfig(), provider, testLogger{})
}

func TestRespondCrisisShortCircuits(t *testing.T) {
	provider := &stubProvider{reply: "should never be used"}
	responder := newTestResponder(provider)

	reply, err := responder.Respond(context.Background(), "I want to die", nil)
	require.NoError(t, err)

	assert.True(t, reply.IsCrisis)
	assert.Equal(t, CrisisResponse, reply.Content)
	assert.Equal(t, domain.MoodVerySad, reply.DetectedMood)
	assert.Zero(t, provider.calls, "crisis turn must never reach the provider")
}

func TestRespondBuildsPromptFromHistory(t *testing.T) {
	provider := &stubProvider{reply: "That sounds really hard."}
	responder := newTestResponder(provider)

	history := []domain.Message{
		{Role: domain.RoleUser, Content: "hi"},
		{Role: domain.RoleAssistant, Content: "Hello, how are you feeling?"},
	}

	reply, err := responder.Respond(context.Background(), "I've been sad", history)
	require.NoError(t, err)
	assert.Equal(t, "That sounds really hard.", reply.Content)
	assert.False(t, reply.IsCrisis)
	assert.Equal(t, domain.MoodSad, reply.DetectedMood)

	require.Len(t, provider.received, 4)
	assert.Equal(t, "system", provider.received[0].Role)
	assert.Equal(t, SystemPrompt, provider.received[0].Content)
	assert.Equal(t, "hi", provider.received[1].Content)
	assert.Equal(t, "Hello, how are you feeling?", provider.received[2].Content)
	assert.Equal(t, domain.RoleUser, provider.received[3].Role)
	assert.Equal(t, "I've been sad", provider.received[3].Content)
}

func TestRespondMoodComesFromClassifierNotModel(t *testing.T) {
	provider := &stubProvider{reply: "I'm so glad to hear that!"}
	responder := newTestResponder(provider)

	reply, err := responder.Respond(context.Background(), "just a normal update", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.MoodNone, reply.DetectedMood)
}

func TestRespondPropagatesProviderErrors(t *testing.T) {
	rateLimited := ai.NewRateLimitError("chat_completion", nil)
	provider := &stubProvider{err: rateLimited}
	responder := newTestResponder(provider)

	_, err := responder.Respond(context.Background(), "I feel stressed", nil)
	require.Error(t, err)
	assert.True(t, ai.IsRateLimit(err), "rate-limit condition must stay distinguishable")
}

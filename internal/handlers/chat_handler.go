package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/sereneapp/serene/internal/domain"
	"github.com/sereneapp/serene/internal/dtos"
	"github.com/sereneapp/serene/internal/middleware"
	"github.com/sereneapp/serene/internal/services"
	"github.com/sereneapp/serene/internal/services/ai"
	chatservice "github.com/sereneapp/serene/internal/services/chat"
)

type ChatHandler struct {
	ChatService *services.ChatService
}

func NewChatHandler(cs *services.ChatService) *ChatHandler {
	return &ChatHandler{ChatService: cs}
}

// GetConversations lists the user's conversations, most recently active first.
func (h *ChatHandler) GetConversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(uint)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	convs, err := h.ChatService.GetUserConversations(r.Context(), userID)
	if err != nil {
		writeError(w, "Could not retrieve conversations", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dtos.ConversationsFromDomain(convs))
}

// CreateConversation starts a new empty conversation.
func (h *ChatHandler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(uint)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conv, err := h.ChatService.CreateConversation(r.Context(), userID)
	if err != nil {
		writeError(w, "Could not create conversation", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, dtos.ConversationFromDomain(*conv))
}

// GetConversationMessages returns the full transcript of one conversation.
func (h *ChatHandler) GetConversationMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(uint)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	convID, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid conversation ID", http.StatusBadRequest)
		return
	}

	messages, err := h.ChatService.GetConversationMessages(r.Context(), userID, convID)
	if err != nil {
		h.writeChatError(w, err, "Could not retrieve messages")
		return
	}

	out := make([]dtos.MessageResponseDTO, len(messages))
	for i, m := range messages {
		out[i] = dtos.MessageResponseDTO{
			ID:        m.ID,
			Role:      m.Role,
			Content:   m.Content,
			IsCrisis:  m.IsCrisis,
			CreatedAt: m.CreatedAt.Format(time.RFC3339),
		}
		if m.Role == domain.RoleAssistant {
			out[i].ContentHTML = renderMarkdown(m.Content)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// RenameConversation sets a user-chosen conversation title.
func (h *ChatHandler) RenameConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(uint)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	convID, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid conversation ID", http.StatusBadRequest)
		return
	}

	var req dtos.RenameConversationRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.ChatService.RenameConversation(r.Context(), userID, convID, req.Title); err != nil {
		h.writeChatError(w, err, "Could not rename conversation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteConversation removes a conversation and all of its messages.
func (h *ChatHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(uint)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	convID, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid conversation ID", http.StatusBadRequest)
		return
	}

	if err := h.ChatService.DeleteConversation(r.Context(), userID, convID); err != nil {
		h.writeChatError(w, err, "Could not delete conversation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SendMessage runs one full chat turn and returns the assistant reply.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(uint)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req dtos.SendMessageRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.ChatService.SendMessage(r.Context(), userID, req.ConversationID, req.Message)
	if err != nil {
		h.writeChatError(w, err, "Could not process message")
		return
	}

	writeJSON(w, http.StatusOK, dtos.SendMessageResponseDTO{
		Content:        result.Content,
		ContentHTML:    renderMarkdown(result.Content),
		IsCrisis:       result.IsCrisis,
		DetectedMood:   string(result.DetectedMood),
		ConversationID: result.ConversationID,
	})
}

// writeChatError maps service errors to HTTP statuses. Provider throttling
// and exhausted credit are surfaced distinctly so the client can show a
// useful message instead of a generic failure.
func (h *ChatHandler) writeChatError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case ai.IsRateLimit(err):
		writeError(w, "The assistant is receiving too many requests. Please try again in a moment.", http.StatusTooManyRequests)
		return
	case ai.IsQuota(err):
		writeError(w, "The assistant is temporarily unavailable. Please try again later.", http.StatusPaymentRequired)
		return
	}

	var chatErr *chatservice.ChatError
	if errors.As(err, &chatErr) {
		switch chatErr.Type {
		case chatservice.ErrTypeValidation:
			writeError(w, chatErr.Message, http.StatusBadRequest)
			return
		case chatservice.ErrTypeUnauthorized:
			writeError(w, "Forbidden", http.StatusForbidden)
			return
		case chatservice.ErrTypeNotFound:
			writeError(w, "Conversation not found", http.StatusNotFound)
			return
		case chatservice.ErrTypeGeneration:
			writeError(w, "The assistant could not generate a reply. Please try again.", http.StatusBadGateway)
			return
		}
	}
	writeError(w, fallback, http.StatusInternalServerError)
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	return uint(id), err
}

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

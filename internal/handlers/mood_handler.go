package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sereneapp/serene/internal/domain"
	"github.com/sereneapp/serene/internal/dtos"
	"github.com/sereneapp/serene/internal/middleware"
	"github.com/sereneapp/serene/internal/repository/mood"
	"github.com/sereneapp/serene/internal/services"
	chatservice "github.com/sereneapp/serene/internal/services/chat"
)

type MoodHandler struct {
	MoodService *services.MoodService
}

func NewMoodHandler(ms *services.MoodService) *MoodHandler {
	return &MoodHandler{MoodService: ms}
}

// GetMoodEntries returns the user's mood history, newest first.
func (h *MoodHandler) GetMoodEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(uint)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	entries, err := h.MoodService.GetMoodEntries(r.Context(), userID)
	if err != nil {
		writeError(w, "Could not retrieve mood entries", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dtos.MoodEntriesFromDomain(entries))
}

// LogMood records a manual mood check-in.
func (h *MoodHandler) LogMood(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(uint)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req dtos.LogMoodRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	entry, err := h.MoodService.LogMood(r.Context(), userID, domain.Mood(req.Mood), req.Notes)
	if err != nil {
		var chatErr *chatservice.ChatError
		if errors.As(err, &chatErr) && chatErr.Type == chatservice.ErrTypeValidation {
			writeError(w, chatErr.Message, http.StatusBadRequest)
			return
		}
		writeError(w, "Could not record mood", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, dtos.MoodEntryFromDomain(*entry))
}

// DeleteMoodEntry removes one of the user's mood entries.
func (h *MoodHandler) DeleteMoodEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(uint)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	entryID, err := pathID(r)
	if err != nil {
		writeError(w, "Invalid mood entry ID", http.StatusBadRequest)
		return
	}

	if err := h.MoodService.DeleteMoodEntry(r.Context(), userID, entryID); err != nil {
		if errors.Is(err, mood.ErrMoodEntryNotFound) {
			writeError(w, "Mood entry not found", http.StatusNotFound)
			return
		}
		writeError(w, "Could not delete mood entry", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

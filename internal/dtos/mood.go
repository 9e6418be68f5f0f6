package dtos

import (
	"time"

	"github.com/sereneapp/serene/internal/domain"
)

type LogMoodRequestDTO struct {
	Mood  string `json:"mood"`
	Notes string `json:"notes"`
}

type MoodEntryResponseDTO struct {
	ID        uint   `json:"id"`
	Mood      string `json:"mood"`
	Notes     string `json:"notes,omitempty"`
	Source    string `json:"source"`
	CreatedAt string `json:"created_at"`
}

func MoodEntryFromDomain(entry domain.MoodEntry) MoodEntryResponseDTO {
	return MoodEntryResponseDTO{
		ID:        entry.ID,
		Mood:      string(entry.Mood),
		Notes:     entry.Notes,
		Source:    entry.Source,
		CreatedAt: entry.CreatedAt.Format(time.RFC3339),
	}
}

func MoodEntriesFromDomain(entries []domain.MoodEntry) []MoodEntryResponseDTO {
	out := make([]MoodEntryResponseDTO, len(entries))
	for i, e := range entries {
		out[i] = MoodEntryFromDomain(e)
	}
	return out
}

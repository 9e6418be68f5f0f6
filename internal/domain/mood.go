package domain

import (
	"errors"
	"time"
)

// Mood is one of five ordered emotional-valence categories used for
// tracking and charting. MoodNone is the absence of a signal and is never
// persisted.
type Mood string

const (
	MoodVerySad   Mood = "very_sad"
	MoodSad       Mood = "sad"
	MoodNeutral   Mood = "neutral"
	MoodHappy     Mood = "happy"
	MoodVeryHappy Mood = "very_happy"
	MoodNone      Mood = ""
)

func (m Mood) IsValid() bool {
	switch m {
	case MoodVerySad, MoodSad, MoodNeutral, MoodHappy, MoodVeryHappy:
		return true
	}
	return false
}

const (
	MoodSourceManual = "manual"
	MoodSourceChat   = "chat"
)

// MoodEntry is a single logged mood, created either by the user on the
// mood page or as a side effect of the chat pipeline detecting an
// emotional signal. Entries are never mutated; multiple entries per day
// are permitted and all retained.
type MoodEntry struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Mood      Mood      `json:"mood" gorm:"not null"`
	Notes     string    `json:"notes"`
	Source    string    `json:"source" gorm:"not null;default:manual"`
	CreatedAt time.Time `json:"created_at"`
}

func (e *MoodEntry) Validate() error {
	if e.UserID == 0 {
		return errors.New("user ID is required")
	}
	if !e.Mood.IsValid() {
		return errors.New("mood must be one of very_sad, sad, neutral, happy, very_happy")
	}
	return nil
}

package chat

import (
	"fmt"
	"time"
)

type Config struct {
	// Auto-title Configuration
	TitleMaxLen int // Title length before truncation with ellipsis

	// Mood Configuration
	NoteExcerptMaxLen int // Excerpt length for auto-detected mood notes

	// Performance Configuration
	GenerationTimeout time.Duration // Timeout on the generation-service call
}

func (c *Config) Validate() error {
	if c.TitleMaxLen <= 0 {
		return fmt.Errorf("title_max_len must be positive")
	}
	if c.NoteExcerptMaxLen <= 0 {
		return fmt.Errorf("note_excerpt_max_len must be positive")
	}
	if c.GenerationTimeout <= 0 {
		return fmt.Errorf("generation_timeout must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		TitleMaxLen:       50,
		NoteExcerptMaxLen: 80,
		GenerationTimeout: 60 * time.Second,
	}
}

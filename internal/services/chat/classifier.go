package chat

import (
	"strings"

	"github.com/sereneapp/serene/internal/domain"
)

// Classification is the result of scanning one user utterance.
type Classification struct {
	Crisis bool
	Mood   domain.Mood
}

// crisisPhrases are matched as case-insensitive substrings anywhere in the
// text. Any hit forces the fixed safety response.
var crisisPhrases = []string{
	"suicide",
	"kill myself",
	"end my life",
	"don't want to live",
	"want to die",
	"self harm",
	"hurt myself",
	"no point in living",
	"better off dead",
	"end it all",
	"take my life",
	"suicidal",
}

// moodBucket pairs a set of signal words with the mood they indicate.
type moodBucket struct {
	words []string
	mood  domain.Mood
}

// moodBuckets are evaluated in order and the first bucket with any
// substring match wins; there is no scoring across buckets. The order
// very_sad, very_happy, sad, anxious (mapped to neutral), happy is a
// deliberate bias toward surfacing severe negative signals over milder
// positive ones.
var moodBuckets = []moodBucket{
	{mood: domain.MoodVerySad, words: []string{
		"hopeless", "despair", "worthless", "can't go on", "miserable", "devastated",
	}},
	{mood: domain.MoodVeryHappy, words: []string{
		"amazing", "ecstatic", "best day", "overjoyed", "thrilled", "fantastic",
	}},
	{mood: domain.MoodSad, words: []string{
		"sad", "depressed", "lonely", "unhappy", "crying", "heartbroken",
	}},
	{mood: domain.MoodNeutral, words: []string{
		"anxious", "anxiety", "stressed", "overwhelmed", "nervous", "worried", "panic",
	}},
	{mood: domain.MoodHappy, words: []string{
		"happy", "great", "good day", "grateful", "excited", "joyful", "proud",
	}},
}

// Classify maps raw user text to a crisis flag and a mood signal. It is a
// pure function: deterministic, total over any input, no side effects.
// Crisis detection has absolute precedence; a crisis text always reads as
// very_sad and no bucket inference runs.
func Classify(text string) Classification {
	lower := strings.ToLower(text)

	for _, phrase := range crisisPhrases {
		if strings.Contains(lower, phrase) {
			return Classification{Crisis: true, Mood: domain.MoodVerySad}
		}
	}

	for _, bucket := range moodBuckets {
		for _, word := range bucket.words {
			if strings.Contains(lower, word) {
				return Classification{Mood: bucket.mood}
			}
		}
	}

	return Classification{Mood: domain.MoodNone}
}

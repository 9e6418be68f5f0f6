package chat

import (
	"strings"
	"unicode/utf8"
)

// TruncateWithEllipsis shortens a UTF-8 string to maxLen runes, appending
// "..." only when something was cut. Inputs at or under the limit are
// returned unchanged.
func TruncateWithEllipsis(input string, maxLen int) string {
	if input == "" || maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(input) <= maxLen {
		return input
	}

	var b strings.Builder
	count := 0
	for _, r := range input {
		if count >= maxLen {
			break
		}
		b.WriteRune(r)
		count++
	}
	b.WriteString("...")
	return b.String()
}

// CleanWhitespace collapses runs of whitespace into single spaces.
func CleanWhitespace(input string) string {
	return strings.Join(strings.Fields(input), " ")
}

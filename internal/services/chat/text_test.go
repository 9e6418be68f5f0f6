package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateWithEllipsisShortInput(t *testing.T) {
	assert.Equal(t, "hello", TruncateWithEllipsis("hello", 50))
}

func TestTruncateWithEllipsisExactLimit(t *testing.T) {
	input := strings.Repeat("a", 50)
	assert.Equal(t, input, TruncateWithEllipsis(input, 50))
}

func TestTruncateWithEllipsisOverLimit(t *testing.T) {
	input := strings.Repeat("a", 60)
	got := TruncateWithEllipsis(input, 50)
	assert.Equal(t, strings.Repeat("a", 50)+"...", got)
	assert.Len(t, got, 53)
}

func TestTruncateWithEllipsisCountsRunes(t *testing.T) {
	input := strings.Repeat("é", 60)
	got := TruncateWithEllipsis(input, 50)
	assert.Equal(t, strings.Repeat("é", 50)+"...", got)
}

func TestTruncateWithEllipsisEmptyAndZero(t *testing.T) {
	assert.Equal(t, "", TruncateWithEllipsis("", 50))
	assert.Equal(t, "", TruncateWithEllipsis("hello", 0))
}

func TestCleanWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", CleanWhitespace("  a\t b \n c  "))
	assert.Equal(t, "", CleanWhitespace("   "))
}

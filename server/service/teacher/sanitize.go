package teacher

import (
	"log/slog"
	"regexp"
	"strings"
)

// DefaultMaxInputLength is the truncation limit applied to user input.
const DefaultMaxInputLength = 1000

var (
	controlChars = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)
	runsOfSpace  = regexp.MustCompile(`\s+`)
)

// sanitizeInput normalizes raw user text: control characters are stripped,
// backticks are escaped so input cannot break out of prompt fencing, over-long
// input is truncated with an ellipsis, and whitespace is collapsed. Returns
// "" when nothing usable remains.
func sanitizeInput(text string, maxLength int) string {
	if text == "" {
		return ""
	}
	if maxLength <= 0 {
		maxLength = DefaultMaxInputLength
	}

	text = controlChars.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "`", "\\`")

	// Truncate by runes so multi-byte scripts never split mid-character.
	if runes := []rune(text); len(runes) > maxLength {
		text = string(runes[:maxLength]) + "..."
		slog.Warn("input truncated", "max_length", maxLength)
	}

	return runsOfSpace.ReplaceAllString(strings.TrimSpace(text), " ")
}

package validators

import "strings"

// SanitizeSearch trims and caps a free-text search term. Interior whitespace
// runs collapse to a single space, and truncation counts runes rather than
// bytes so accented names are never cut mid-character.
func SanitizeSearch(input string, maxRunes int) string {
	trimmed := strings.Join(strings.Fields(input), " ")
	if maxRunes <= 0 {
		return trimmed
	}
	runes := []rune(trimmed)
	if len(runes) > maxRunes {
		return strings.TrimSpace(string(runes[:maxRunes]))
	}
	return trimmed
}

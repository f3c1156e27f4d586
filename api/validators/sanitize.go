package validators

import (
	"strings"
	"unicode/utf8"
)

// SanitizeString trims, collapses internal whitespace runs to a single space
// and cuts the result to at most maxLen bytes on a rune boundary.
func SanitizeString(input string, maxLen int) string {
	out := strings.Join(strings.Fields(input), " ")
	if maxLen <= 0 || len(out) <= maxLen {
		return out
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(out[cut]) {
		cut--
	}
	return strings.TrimRight(out[:cut], " ")
}

package utils

import "strings"

// Truncate shortens s to at most limit runes, marking the cut with "...".
// Whitespace runs are collapsed first so table cells stay on one line.
func Truncate(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

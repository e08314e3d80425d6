package core

import "strings"

// CleanString trims surrounding whitespace.
func CleanString(s string) string {
	return strings.TrimSpace(s)
}

// WordCount counts whitespace separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

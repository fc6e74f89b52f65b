package entity

import "strings"

// NormalizeWordToken produces the lookup key for a word: trimmed and lower-cased.
func NormalizeWordToken(word string) string {
	trimmed := strings.TrimSpace(word)
	if trimmed == "" {
		return ""
	}
	return strings.ToLower(trimmed)
}

// Tokenize splits a line into whitespace-separated tokens.
func Tokenize(line string) []string {
	return strings.Fields(line)
}

// IsBlankLine reports whether a line carries no input. Empty lines, a single
// space and any other whitespace-only line are blank.
func IsBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

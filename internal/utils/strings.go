package utils

import "strings"

// IsSingleLine reports whether s contains no line breaks.
func IsSingleLine(s string) bool {
	return !strings.ContainsAny(s, "\r\n")
}

// NormalizeField trims surrounding whitespace from a label or account.
func NormalizeField(s string) string {
	return strings.TrimSpace(s)
}

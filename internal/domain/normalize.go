package domain

import "strings"

// NormalizeEmail trims surrounding whitespace and lowercases an email address.
// All store lookups and membership comparisons use the normalized form.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

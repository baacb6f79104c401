// Package validation provides pure input validators for user-supplied
// credentials. All functions are total: bad input yields a zero value,
// never a panic.
package validation

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	whitespace   = regexp.MustCompile(`\s`)
	hasDigit     = regexp.MustCompile(`[0-9]`)
	hasLetter    = regexp.MustCompile(`[a-zA-Z]`)
)

// FormatEmail returns a trimmed, lowercased email with all whitespace removed,
// or "" when the input does not look like local-part@domain.tld.
func FormatEmail(raw string) string {
	if raw == "" {
		return ""
	}

	email := strings.ToLower(strings.TrimSpace(raw))
	email = whitespace.ReplaceAllString(email, "")

	if !emailPattern.MatchString(email) {
		return ""
	}
	return email
}

// AllowPassword reports whether a password meets the minimum policy:
// at least 10 characters, at least one digit, at least one ASCII letter.
func AllowPassword(password string) bool {
	if len(password) < 10 {
		return false
	}
	if !hasDigit.MatchString(password) {
		return false
	}
	return hasLetter.MatchString(password)
}

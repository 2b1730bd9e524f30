package service

import (
	"regexp"
	"strings"
	"unicode"
)

const maxEmailLength = 254

var (
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	javascriptURI  = regexp.MustCompile(`(?i)javascript:`)
	eventAttribute = regexp.MustCompile(`(?i)on\w+=`)
)

// passwordSymbols is the set of which at least one must appear in a password.
const passwordSymbols = "@$!%*?&"

// SanitizeInput strips angle brackets, javascript: URIs and inline event
// handler attributes, then trims surrounding whitespace.
func SanitizeInput(s string) string {
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	s = javascriptURI.ReplaceAllString(s, "")
	s = eventAttribute.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// NormalizeEmail lower-cases and sanitizes an email address.
func NormalizeEmail(email string) string {
	return SanitizeInput(strings.ToLower(email))
}

// IsValidEmail reports whether email is a plausible address of at most 254 bytes.
func IsValidEmail(email string) bool {
	return len(email) <= maxEmailLength && emailPattern.MatchString(email)
}

// IsStrongPassword reports whether password has at least 8 characters with a
// lower-case letter, an upper-case letter, a digit and one of @$!%*?&.
func IsStrongPassword(password string) bool {
	if len([]rune(password)) < 8 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

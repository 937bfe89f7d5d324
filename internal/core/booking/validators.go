package booking

import (
	"net/mail"
	"strings"
	"time"
)

// IsValidEmail reports whether the string is a bare, well-formed email
// address (no display name).
func IsValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// ParseDate parses a strict YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	return t, err == nil
}

// ParseTime parses a strict HH:MM 24-hour time of day.
func ParseTime(s string) (time.Time, bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	return t, err == nil
}

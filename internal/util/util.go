package util

import (
	"strconv"
	"strings"
)

// NormalizeEmail trims surrounding whitespace and lower-cases the address,
// so "A@x.com " and "a@x.com" identify the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ParseID parses a positive decimal identifier. It reports false for anything else.
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

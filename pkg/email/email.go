package email

import (
	"strings"
	"unicode/utf8"

	dErrors "mergington/pkg/domain-errors"
)

// ErrInvalid is returned for empty or malformed addresses.
var ErrInvalid = dErrors.New(dErrors.CodeInvalidInput, "Invalid email")

// Normalize trims and lowercases an address for comparison and storage.
func Normalize(raw string) (string, error) {
	if raw == "" || !utf8.ValidString(raw) {
		return "", ErrInvalid
	}
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return "", ErrInvalid
	}
	return normalized, nil
}

// Equal reports whether two addresses match after normalization.
// Stored entries are trimmed and lowercased too, so seeded rosters with
// mixed casing still collide with new signups.
func Equal(a, b string) bool {
	return strings.ToLower(strings.TrimSpace(a)) == strings.ToLower(strings.TrimSpace(b))
}

package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsUnwritable reports whether err looks like a read-only or permission
// failure from the underlying store. Callers surface these distinctly from
// not-found so users get told the database is unwritable instead of a
// generic failure. Driver messages are the only signal available, so this is
// a string check (sqlite "readonly database", mysql "access denied").
func IsUnwritable(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "readonly") ||
		strings.Contains(msg, "read-only") ||
		strings.Contains(msg, "permission denied") ||
		strings.Contains(msg, "access denied")
}

// IsDuplicate reports whether err is a unique-constraint violation.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Sentinel errors for the service contract. Handlers translate these to
// HTTP statuses in one place.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyVoted       = errors.New("already voted")
	ErrInvalidOption      = errors.New("invalid option")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidInput       = errors.New("invalid input")
)

// isDuplicate reports whether err is a unique-constraint violation.
// gorm's error translation covers postgres; the string checks cover the
// sqlite driver used in tests, which predates the translator.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

// notFound maps gorm's record-not-found onto the sentinel.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

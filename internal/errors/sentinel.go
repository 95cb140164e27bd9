package errors

import (
	"errors"
	"fmt"

	"github.com/julianstephens/dietplan/internal/constants"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrNotInitialized = errors.New("storage not initialized")
	ErrAlreadyExists  = errors.New("already exists")
	ErrInvalidDate    = errors.New("invalid date")
)

// NotFound wraps ErrNotFound with the kind and id of the missing entity.
func NotFound(kind, id string) error {
	return fmt.Errorf("%s %q %w", kind, id, ErrNotFound)
}

// AlreadyExists wraps ErrAlreadyExists with the kind and id of the entity.
func AlreadyExists(kind, id string) error {
	return fmt.Errorf("%s %q %w", kind, id, ErrAlreadyExists)
}

// NotInitialized wraps ErrNotInitialized with a hint to run init.
func NotInitialized(path string) error {
	return fmt.Errorf("%w at %s, run '%s init' first", ErrNotInitialized, path, constants.AppName)
}

// InvalidDate wraps ErrInvalidDate for a date argument.
func InvalidDate(date string) error {
	return fmt.Errorf("%w %q (expected YYYY-MM-DD)", ErrInvalidDate, date)
}

package resource

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIdentifier is a malformed path id: neither a 24-hex storage
	// key nor a positive base-10 sequence id.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrNotFound is a well-formed id with no matching record.
	ErrNotFound = errors.New("record not found")

	// ErrDependencyNotFound is a write referencing a foreign record that is
	// missing or inactive at write time.
	ErrDependencyNotFound = errors.New("referenced record not found or inactive")

	// ErrValidation covers malformed payload fields.
	ErrValidation = errors.New("validation failed")
)

// Validationf wraps ErrValidation with field context.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Package journal defines the error taxonomy shared by the author and entry
// registers. Errors are raised synchronously to the immediate caller; the
// registers never retry, log, or swallow them, and a failed operation leaves
// register state untouched.
package journal

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports an operation that referenced an identifier with no
	// matching record.
	ErrNotFound = errors.New("not found")

	// ErrConflict reports a violated uniqueness constraint, such as renaming
	// an author to a name another author already holds.
	ErrConflict = errors.New("already exists")
)

// ValidationError reports a caller-supplied value that is missing, blank, or
// out of range. Validation always happens before any register mutation is
// committed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validationf builds a ValidationError with a formatted reason.
func Validationf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

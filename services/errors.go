package services

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the service layer. Controllers map these onto
// HTTP statuses; nothing in this package knows about HTTP.
var (
	ErrNotFound           = errors.New("record not found")
	ErrForbidden          = errors.New("operation not permitted")
	ErrInvalidCredentials = errors.New("invalid NetID or password")
	ErrNetIDTaken         = errors.New("NetID is already taken")
	ErrSamePassword       = errors.New("new password cannot be the same as the old password")
	ErrDifferentGroups    = errors.New("reviewer and reviewee are not in the same group")
)

// ValidationError marks malformed input (bad time ranges, unknown question
// references, empty submissions). Detect it with errors.As.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("this user is already exist")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrProductNotFound    = errors.New("product not found")

	// ErrMalformedID is always wrapped together with the not-found error of
	// the resource that was looked up.
	ErrMalformedID = errors.New("malformed id")

	ErrNoToken      = errors.New("no token provided")
	ErrInvalidToken = errors.New("invalid token")
	ErrNotAllowed   = errors.New("not allowed")
	ErrOnlyAdmin    = errors.New("only admin")
)

// ValidationError reports the first payload field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

package entity

import "errors"

var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrConflict        = errors.New("conflict")
	ErrTooManyRequests = errors.New("too many requests")
)

// Error carries a caller-facing message for one of the sentinel kinds.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func NewValidationError(message string) error {
	return &Error{Kind: ErrValidation, Message: message}
}

func NewNotFoundError(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func NewForbiddenError(message string) error {
	return &Error{Kind: ErrForbidden, Message: message}
}

func NewUnauthorizedError(message string) error {
	return &Error{Kind: ErrUnauthorized, Message: message}
}

func NewConflictError(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}

func NewTooManyRequestsError(message string) error {
	return &Error{Kind: ErrTooManyRequests, Message: message}
}

package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidAmount indicates a monetary amount that is not usable for the
// requested operation (non-positive charge or payment, zero adjustment).
var ErrInvalidAmount = errors.New("invalid amount")

// ErrOverflow indicates a monetary computation exceeded the supported magnitude.
var ErrOverflow = errors.New("arithmetic overflow")

// ErrConcurrentModification indicates the optimistic-lock retry budget was
// exhausted because the account kept changing underneath the operation.
// The whole operation is safe for the caller to retry.
var ErrConcurrentModification = errors.New("concurrent modification")

// ErrAlreadyReversed indicates the target entry already has a reversal entry
// pointing at it. Reversing twice is rejected, not repeated.
var ErrAlreadyReversed = errors.New("entry already reversed")

// AppError carries an HTTP-ish status code alongside a message and the
// underlying cause. Repositories use it for infrastructure failures.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

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

// ErrEmptyInput indicates that a document's raw line stream was empty or unusable.
// Fatal for the document, retryable by re-submission.
var ErrEmptyInput = errors.New("empty or malformed input stream")

// ErrInternalInvariant indicates a defect: a pipeline guarantee was violated
// (e.g. a duplicate idempotency key surviving deduplication). Logged distinctly
// from business conditions.
var ErrInternalInvariant = errors.New("internal invariant violation")

// AppError wraps an underlying error with an HTTP-ish status code and context message.
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

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that satisfies errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

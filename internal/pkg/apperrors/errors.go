package apperrors

import "errors"

// Sentinel errors shared across the application. Services and controllers
// match on these with errors.Is; CustomError carries per-occurrence context.
var (
	// Authentication / authorization
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrPermissionDenied       = errors.New("permission denied")

	// Resource errors
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("revision conflict")

	// Input errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Persistence errors
	ErrStorage = errors.New("storage failure")
	ErrTimeout = errors.New("storage operation timed out")
)

// NewNotFoundError creates a not-found error with a message
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrNotFound, Message: message}
}

// NewConflictError creates a revision-conflict error with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates a permission-denied error with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewStorageError wraps an unexpected persistence-layer failure
func NewStorageError(cause error, message string) error {
	return &CustomError{Err: ErrStorage, Cause: cause, Message: message}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Cause   error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap exposes the sentinel so errors.Is keeps working through the wrapper
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

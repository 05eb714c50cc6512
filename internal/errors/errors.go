package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeUnauthenticated indicates an operation that needs a resolved principal ran without one.
	ErrCodeUnauthenticated ErrorCode = "unauthenticated"
	// ErrCodeForbidden indicates the principal is not allowed to perform the operation.
	ErrCodeForbidden ErrorCode = "forbidden"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeAlreadyApplied indicates a duplicate application for the same posting.
	ErrCodeAlreadyApplied ErrorCode = "already_applied"
	// ErrCodeInvalidTransition indicates a disallowed application status change.
	ErrCodeInvalidTransition ErrorCode = "invalid_transition"
	// ErrCodeInvalidState indicates the target is not in a state that permits the operation.
	ErrCodeInvalidState ErrorCode = "invalid_state"
	// ErrCodeProfileResolution indicates the role record behind a session could not be loaded.
	ErrCodeProfileResolution ErrorCode = "profile_resolution"
	// ErrCodeTransientIO indicates a retryable storage or network failure.
	ErrCodeTransientIO ErrorCode = "transient_io"
	// ErrCodeConflict indicates a conflict with existing data (e.g., unique constraint violation).
	ErrCodeConflict ErrorCode = "conflict"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeForeignKey indicates a foreign key constraint violation.
	ErrCodeForeignKey ErrorCode = "foreign_key"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates an AppError with the given code.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Newf creates an AppError with the given code and a formatted message.
func Newf(code ErrorCode, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Unauthenticated creates an Unauthenticated error.
func Unauthenticated(message string) *AppError { return New(ErrCodeUnauthenticated, message) }

// Forbidden creates a Forbidden error.
func Forbidden(message string) *AppError { return New(ErrCodeForbidden, message) }

// Forbiddenf creates a Forbidden error with a formatted message.
func Forbiddenf(format string, args ...any) *AppError {
	return Newf(ErrCodeForbidden, format, args...)
}

// NotFound creates a NotFound error.
func NotFound(message string) *AppError { return New(ErrCodeNotFound, message) }

// NotFoundf creates a NotFound error with a formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return Newf(ErrCodeNotFound, format, args...)
}

// AlreadyApplied creates an AlreadyApplied error.
func AlreadyApplied(message string) *AppError { return New(ErrCodeAlreadyApplied, message) }

// InvalidTransitionf creates an InvalidTransition error with a formatted message.
func InvalidTransitionf(format string, args ...any) *AppError {
	return Newf(ErrCodeInvalidTransition, format, args...)
}

// InvalidState creates an InvalidState error.
func InvalidState(message string) *AppError { return New(ErrCodeInvalidState, message) }

// Conflict creates a Conflict error.
func Conflict(message string) *AppError { return New(ErrCodeConflict, message) }

// Validation creates a Validation error.
func Validation(message string) *AppError { return New(ErrCodeValidation, message) }

// ValidationField creates a Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
}

// Internal creates an Internal error.
func Internal(message string) *AppError { return New(ErrCodeInternal, message) }

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsUnauthenticated checks if an error is an Unauthenticated error.
func IsUnauthenticated(err error) bool { return isCode(err, ErrCodeUnauthenticated) }

// IsForbidden checks if an error is a Forbidden error.
func IsForbidden(err error) bool { return isCode(err, ErrCodeForbidden) }

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool { return isCode(err, ErrCodeNotFound) }

// IsAlreadyApplied checks if an error is an AlreadyApplied error.
func IsAlreadyApplied(err error) bool { return isCode(err, ErrCodeAlreadyApplied) }

// IsInvalidTransition checks if an error is an InvalidTransition error.
func IsInvalidTransition(err error) bool { return isCode(err, ErrCodeInvalidTransition) }

// IsInvalidState checks if an error is an InvalidState error.
func IsInvalidState(err error) bool { return isCode(err, ErrCodeInvalidState) }

// IsProfileResolution checks if an error is a ProfileResolution error.
func IsProfileResolution(err error) bool { return isCode(err, ErrCodeProfileResolution) }

// IsTransientIO checks if an error is a TransientIO error.
func IsTransientIO(err error) bool { return isCode(err, ErrCodeTransientIO) }

// IsConflict checks if an error is a Conflict error.
func IsConflict(err error) bool { return isCode(err, ErrCodeConflict) }

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool { return isCode(err, ErrCodeValidation) }

// IsForeignKey checks if an error is a ForeignKey error.
func IsForeignKey(err error) bool { return isCode(err, ErrCodeForeignKey) }

// IsTimeout checks if an error is a Timeout error.
func IsTimeout(err error) bool { return isCode(err, ErrCodeTimeout) }

// IsCanceled checks if an error is a Canceled error.
func IsCanceled(err error) bool { return isCode(err, ErrCodeCanceled) }

// GetCode returns the ErrorCode of the outermost AppError in err's chain, or "".
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}

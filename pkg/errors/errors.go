package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Common sentinel errors for quick checks
var (
	// ErrNotFound is returned when a land record is not found.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned when a caller signature is missing or invalid.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the caller lacks the role an operation requires.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict is returned when the ledger state rejects the operation.
	ErrConflict = errors.New("state conflict")

	// ErrInvalidInput is returned when an operation argument is invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal is returned when an internal error occurs.
	ErrInternal = errors.New("internal error")
)

// Error is the base interface for all typed errors in the ledger.
// It extends the standard error interface with additional context.
type Error interface {
	error
	// Code returns the error code
	Code() string
	// Message returns the human-readable error message
	Message() string
	// Unwrap returns the underlying cause
	Unwrap() error
}

// BaseError provides a foundation for all typed errors.
type BaseError struct {
	code    string
	message string
	cause   error
	stack   []uintptr
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Code returns the error code.
func (e *BaseError) Code() string {
	return e.code
}

// Message returns the error message.
func (e *BaseError) Message() string {
	return e.message
}

// Unwrap returns the underlying cause.
func (e *BaseError) Unwrap() error {
	return e.cause
}

// Stack returns the captured stack trace.
func (e *BaseError) Stack() []uintptr {
	return e.stack
}

// captureStack captures the current stack trace.
func captureStack(skip int) []uintptr {
	const maxDepth = 32
	stack := make([]uintptr, maxDepth)
	n := runtime.Callers(skip+2, stack)
	return stack[:n]
}

// StackTrace returns a formatted stack trace string.
func (e *BaseError) StackTrace() string {
	if len(e.stack) == 0 {
		return ""
	}

	var buf strings.Builder
	frames := runtime.CallersFrames(e.stack)
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			fmt.Fprintf(&buf, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return buf.String()
}

// InvalidArgumentError represents an invalid operation argument, such as a
// zero identity or a transfer to the current owner.
type InvalidArgumentError struct {
	*BaseError
	Field string
	Value interface{}
}

// NewInvalidArgumentError creates a new invalid argument error.
func NewInvalidArgumentError(field, message string, value interface{}) *InvalidArgumentError {
	return &InvalidArgumentError{
		BaseError: &BaseError{
			code:    CodeInvalidArgument,
			message: message,
			stack:   captureStack(1),
		},
		Field: field,
		Value: value,
	}
}

// Error implements the error interface.
func (e *InvalidArgumentError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid argument: %s: %s", e.Field, e.message)
	}
	return fmt.Sprintf("invalid argument: %s", e.message)
}

// NotFoundError represents a reference to an unregistered land id.
type NotFoundError struct {
	*BaseError
	Resource string
	ID       string
}

// NewNotFoundError creates a new not found error.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{
		BaseError: &BaseError{
			code:    CodeNotFound,
			message: fmt.Sprintf("%s not found", resource),
			stack:   captureStack(1),
		},
		Resource: resource,
		ID:       id,
	}
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s with ID '%s' not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// AuthorizationError represents a caller lacking the role an operation
// requires: admin for register/verify/admin-transfer, current owner for
// ownership transfer.
type AuthorizationError struct {
	*BaseError
	Operation string
	Required  string
}

// NewAuthorizationError creates a new authorization error.
func NewAuthorizationError(operation, required string) *AuthorizationError {
	message := "not authorized"
	if operation != "" && required != "" {
		message = fmt.Sprintf("not authorized: %s requires %s", operation, required)
	}
	return &AuthorizationError{
		BaseError: &BaseError{
			code:    CodeAuthorization,
			message: message,
			stack:   captureStack(1),
		},
		Operation: operation,
		Required:  required,
	}
}

// StateConflictError represents an operation rejected by the current ledger
// state rather than by its arguments.
type StateConflictError struct {
	*BaseError
	Resource string
	ID       string
	Reason   string
}

// NewStateConflictError creates a new state conflict error.
func NewStateConflictError(resource, id, reason string) *StateConflictError {
	message := fmt.Sprintf("%s state conflict", resource)
	if reason != "" {
		message = fmt.Sprintf("%s '%s': %s", resource, id, reason)
	}
	return &StateConflictError{
		BaseError: &BaseError{
			code:    CodeStateConflict,
			message: message,
			stack:   captureStack(1),
		},
		Resource: resource,
		ID:       id,
		Reason:   reason,
	}
}

// UnauthenticatedError represents a request whose caller identity could not
// be established.
type UnauthenticatedError struct {
	*BaseError
	Realm string
}

// NewUnauthenticatedError creates a new unauthenticated error.
func NewUnauthenticatedError(message string) *UnauthenticatedError {
	if message == "" {
		message = "authentication required"
	}
	return &UnauthenticatedError{
		BaseError: &BaseError{
			code:    CodeUnauthenticated,
			message: message,
			stack:   captureStack(1),
		},
	}
}

// WithRealm sets the authentication realm.
func (e *UnauthenticatedError) WithRealm(realm string) *UnauthenticatedError {
	e.Realm = realm
	return e
}

// InternalError represents an internal ledger error.
type InternalError struct {
	*BaseError
	Operation string
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, cause error) *InternalError {
	if message == "" {
		message = "internal error"
	}
	return &InternalError{
		BaseError: &BaseError{
			code:    CodeInternal,
			message: message,
			cause:   cause,
			stack:   captureStack(1),
		},
	}
}

// WithOperation sets the operation context.
func (e *InternalError) WithOperation(op string) *InternalError {
	e.Operation = op
	return e
}

// StorageError represents a journal or snapshot failure.
type StorageError struct {
	*BaseError
	Operation string
}

// NewStorageError creates a new storage error.
func NewStorageError(operation, message string, cause error) *StorageError {
	if message == "" {
		message = fmt.Sprintf("storage %s failed", operation)
	}
	return &StorageError{
		BaseError: &BaseError{
			code:    CodeStorageError,
			message: message,
			cause:   cause,
			stack:   captureStack(1),
		},
		Operation: operation,
	}
}

// RateLimitError represents an exhausted request budget.
type RateLimitError struct {
	*BaseError
	RetryAfter string
}

// NewRateLimitError creates a new rate limit error.
func NewRateLimitError(message, retryAfter string) *RateLimitError {
	if message == "" {
		message = "rate limit exceeded"
	}
	return &RateLimitError{
		BaseError: &BaseError{
			code:    CodeRateLimit,
			message: message,
			stack:   captureStack(1),
		},
		RetryAfter: retryAfter,
	}
}

// Package apperror defines a centralized system for application-specific errors.
// Every failure that reaches the HTTP layer is expressed as an *AppError so that
// the response status and the JSON error body are decided in exactly one place.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType is an enumeration (using `iota`) for the categories of application errors.
type ErrorType int

const (
	// UnknownError is for unspecified errors
	UnknownError ErrorType = iota
	// DatabaseError represents an error originating from the persistence layer
	DatabaseError
	// ConfigError represents an error related to application configuration
	ConfigError
	// AuthError represents an authentication error (missing/invalid token, bad credentials)
	AuthError
	// UnauthorizedError represents an authorization error (valid identity, not permitted)
	UnauthorizedError
	// NotFoundError represents a resource not found error
	NotFoundError
	// ValidationError represents a schema validation failure reported by the store
	ValidationError
	// BadRequestError represents a request rejected before it reaches the store
	BadRequestError
	// CastError represents a malformed identifier in a path parameter
	CastError
	// UnknownEndpointError represents a request to a route that does not exist
	UnknownEndpointError
	// MethodNotAllowedError represents a known route called with the wrong method
	MethodNotAllowedError
	// InternalError represents a generic internal server error
	InternalError
	// MigrationError represents an error during database migrations
	MigrationError
)

// AppError is a custom error type for the application.
// It allows wrapping an underlying error (`Err`) for logs while keeping the
// client-facing `Message` under control.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error // Underlying error
}

// Error returns the string representation of the error, satisfying the `error` interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error so `errors.Is` and `errors.As` can walk the chain.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code appropriate for the error type
func (e *AppError) StatusCode() int {
	switch e.Type {
	case AuthError:
		// 401: no identity could be established.
		return http.StatusUnauthorized
	case UnauthorizedError:
		// 403: the identity is known but the action is not allowed for it.
		return http.StatusForbidden
	case NotFoundError, UnknownEndpointError:
		return http.StatusNotFound
	case ValidationError, BadRequestError, CastError:
		return http.StatusBadRequest
	case MethodNotAllowedError:
		return http.StatusMethodNotAllowed
	case DatabaseError, ConfigError, InternalError, MigrationError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError creates a new AppError. This is the generic constructor behind
// the typed helpers below.
func NewAppError(errType ErrorType, message string, underlyingError error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     underlyingError,
	}
}

// Constructor functions for specific error types.
// `NewDatabaseError("message", err)` reads better than `NewAppError(DatabaseError, "message", err)`.

// NewDatabaseError creates a new DatabaseError
func NewDatabaseError(message string, underlyingError error) *AppError {
	return NewAppError(DatabaseError, message, underlyingError)
}

// NewConfigError creates a new ConfigError
func NewConfigError(message string, underlyingError error) *AppError {
	return NewAppError(ConfigError, message, underlyingError)
}

// NewAuthError creates a new AuthError (for authentication issues)
func NewAuthError(message string, underlyingError error) *AppError {
	return NewAppError(AuthError, message, underlyingError)
}

// NewUnauthorizedError creates a new UnauthorizedError (for authorization issues)
func NewUnauthorizedError(message string, underlyingError error) *AppError {
	return NewAppError(UnauthorizedError, message, underlyingError)
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(message string, underlyingError error) *AppError {
	return NewAppError(NotFoundError, message, underlyingError)
}

// NewValidationError creates a new ValidationError
func NewValidationError(message string, underlyingError error) *AppError {
	return NewAppError(ValidationError, message, underlyingError)
}

// NewBadRequestError creates a new BadRequestError
func NewBadRequestError(message string, underlyingError error) *AppError {
	return NewAppError(BadRequestError, message, underlyingError)
}

// NewCastError creates a new CastError. The message is fixed; the offending
// value is kept only in the wrapped error.
func NewCastError(underlyingError error) *AppError {
	return NewAppError(CastError, "malformatted id", underlyingError)
}

// NewUnknownEndpointError creates a new UnknownEndpointError
func NewUnknownEndpointError() *AppError {
	return NewAppError(UnknownEndpointError, "unknown endpoint", nil)
}

// NewMethodNotAllowedError creates a new MethodNotAllowedError
func NewMethodNotAllowedError() *AppError {
	return NewAppError(MethodNotAllowedError, "method not allowed", nil)
}

// NewInternalError creates a new InternalError
func NewInternalError(message string, underlyingError error) *AppError {
	return NewAppError(InternalError, message, underlyingError)
}

// NewMigrationError creates a new MigrationError
func NewMigrationError(message string, underlyingError error) *AppError {
	return NewAppError(MigrationError, message, underlyingError)
}

// ErrorResponse represents the error payload returned to API clients.
type ErrorResponse struct {
	Error string `json:"error" example:"A description of the error"`
}

// ToResponse converts an AppError to an ErrorResponse suitable for API responses.
// Server-side failures never expose their message; only client errors do.
func (e *AppError) ToResponse() ErrorResponse {
	if e.StatusCode() >= http.StatusInternalServerError {
		return ErrorResponse{Error: "internal server error"}
	}
	return ErrorResponse{Error: e.Message}
}

// FromError attempts to convert a generic error to an *AppError.
// Unlike a plain type assertion it also finds an *AppError wrapped with `%w`.
func FromError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// Is reports whether any error in err's chain is an *AppError of type t.
func Is(err error, t ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == t
}

// IsAuthError checks if an error is an AuthError (authentication problem)
func IsAuthError(err error) bool {
	return Is(err, AuthError)
}

// IsBadRequestError checks if an error is a BadRequest error
func IsBadRequestError(err error) bool {
	return Is(err, BadRequestError)
}

// IsConfigError checks if an error is a ConfigError
func IsConfigError(err error) bool {
	return Is(err, ConfigError)
}

// IsValidationError checks if an error is a Validation error
func IsValidationError(err error) bool {
	return Is(err, ValidationError)
}

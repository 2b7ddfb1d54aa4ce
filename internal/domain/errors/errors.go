package errors

import (
	"net/http"

	"credo/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Wrap attaches an underlying cause alongside the error. errors.Is still
// matches the predefined error, while the cause stays inspectable.
func (e *BaseError) Wrap(cause error, message string) error {
	return errors.Wrap(errors.Join(e, cause), message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types. Several credential flows collapse distinct failure
// causes into a single error value each; see the comments on the individual
// errors for which causes converge.
var (
	// ErrValidation covers malformed input: missing or badly shaped email,
	// empty or oversized password.
	ErrValidation = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Invalid input.",
		"",
	)

	// ErrEmailConflict is returned when registration hits the unique email
	// constraint.
	ErrEmailConflict = NewBaseError(
		http.StatusConflict,
		"EMAIL_ALREADY_REGISTERED",
		"Email already registered.",
		"",
	)

	// ErrInvalidCredentials covers both "no such account" and "wrong password".
	// The two cases must stay indistinguishable to the caller so that login
	// responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Credentials invalid or not provided.",
		"",
	)

	// ErrAccountNotFound is returned by the reset-request flow for an unknown
	// email. Unlike login, this path does reveal account existence.
	ErrAccountNotFound = NewBaseError(
		http.StatusNotFound,
		"ACCOUNT_NOT_FOUND",
		"No user",
		"",
	)

	// ErrInvalidResetToken covers a reset token that is absent, expired, or
	// not matching any account. All three collapse to one message.
	ErrInvalidResetToken = NewBaseError(
		http.StatusBadRequest,
		"INVALID_RESET_TOKEN",
		"Invalid reset token.",
		"",
	)

	// ErrRefreshForbidden covers refresh tokens with a bad signature, a wrong
	// signing algorithm, or an elapsed expiry. Expired and forged tokens get
	// the same answer so the endpoint cannot be used as a validity oracle.
	ErrRefreshForbidden = NewBaseError(
		http.StatusForbidden,
		"REFRESH_FORBIDDEN",
		"Refresh token rejected.",
		"",
	)

	// ErrHashFailed signals a bcrypt failure while hashing a password.
	ErrHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Password processing error.",
		"",
	)

	// ErrMailDelivery signals that the outbound reset email could not be sent.
	ErrMailDelivery = NewBaseError(
		http.StatusInternalServerError,
		"MAIL_DELIVERY_FAILED",
		"Failed to send email.",
		"",
	)

	// ErrInternal is the generic fallback for unexpected failures.
	ErrInternal = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"An unexpected condition was encountered.",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed."
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

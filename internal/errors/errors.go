// Package errors provides the error kinds surfaced by the pocketledger core.
// Every service-layer error is an AppError so callers can branch on Code
// without parsing messages, and so responses never leak store internals.
package errors

import (
	"errors"
	"net/http"
)

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Reference  string `json:"reference,omitempty"`
	Retryable  bool   `json:"retryable"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError of the same kind. Two AppErrors
// are the same kind when code and reference match, so a sentinel still
// matches after Wrap or WithMessage.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Reference == t.Reference
}

// Wrap creates a new AppError with the same kind as sentinel that wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		Reference:  sentinel.Reference,
		Retryable:  sentinel.Retryable,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		Reference:  sentinel.Reference,
		Retryable:  sentinel.Retryable,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// IsRetryable reports whether err carries a kind the caller may retry as a whole command.
func IsRetryable(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Retryable
}

// Authentication errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Invalid user session", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Wrong username or password", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Store errors. ErrConflict is the only kind a caller should retry.
var (
	ErrConflict         = &AppError{Code: "CONFLICT_RETRYABLE", Message: "The operation conflicted with a concurrent change, retry it", Retryable: true, StatusCode: http.StatusConflict}
	ErrStoreUnavailable = &AppError{Code: "STORE_UNAVAILABLE", Message: "The data store is unavailable", StatusCode: http.StatusServiceUnavailable}
	ErrDataIntegrity    = &AppError{Code: "DATA_INTEGRITY_VIOLATION", Message: "Stored data is inconsistent", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound      = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateUsername = &AppError{Code: "DUPLICATE_USERNAME", Message: "Username already exist", StatusCode: http.StatusConflict}
)

// Primary entity not found. Returned when the entity targeted by a read, edit
// or delete does not exist or belongs to someone else.
var (
	ErrProfileNotFound     = &AppError{Code: "PROFILE_NOT_FOUND", Message: "Profile doesn't exist", StatusCode: http.StatusNotFound}
	ErrCategoryNotFound    = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category doesn't exist", StatusCode: http.StatusNotFound}
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction doesn't exist", StatusCode: http.StatusNotFound}
)

// Referenced entity not found. Returned when a profile or category id given as
// input to a transaction does not resolve under the caller.
var (
	ErrProfileReferenceNotFound  = &AppError{Code: "REFERENCE_NOT_FOUND", Message: "Profile doesn't exist", Reference: "profile", StatusCode: http.StatusUnprocessableEntity}
	ErrCategoryReferenceNotFound = &AppError{Code: "REFERENCE_NOT_FOUND", Message: "Category doesn't exist", Reference: "category", StatusCode: http.StatusUnprocessableEntity}
)

// Package errors provides custom error types for the API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Authentication errors. Invalid credentials is deliberately a single
// generic error so callers cannot distinguish an unknown email from a
// wrong password.
var (
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Fixed bill errors.
var (
	ErrFixedBillNotFound = &AppError{Code: "FIXED_BILL_NOT_FOUND", Message: "Fixed bill not found", StatusCode: http.StatusNotFound}
	ErrInvalidDueDay     = &AppError{Code: "INVALID_DUE_DAY", Message: "Due day must be between 1 and 31", StatusCode: http.StatusBadRequest}
)

// Installment errors.
var (
	ErrInstallmentNotFound = &AppError{Code: "INSTALLMENT_NOT_FOUND", Message: "Installment not found", StatusCode: http.StatusNotFound}
	ErrRemainingExceeds    = &AppError{Code: "REMAINING_EXCEEDS_TOTAL", Message: "Remaining installments cannot exceed the total count", StatusCode: http.StatusBadRequest}
)

// Daily entry errors.
var (
	ErrEntryNotFound = &AppError{Code: "ENTRY_NOT_FOUND", Message: "Daily entry not found", StatusCode: http.StatusNotFound}
	ErrInvalidDate   = &AppError{Code: "INVALID_DATE", Message: "Date must be in YYYY-MM-DD format", StatusCode: http.StatusBadRequest}
)

// Ledger errors.
var (
	ErrInvalidMonth    = &AppError{Code: "INVALID_MONTH", Message: "Month must be between 1 and 12", StatusCode: http.StatusBadRequest}
	ErrSummaryNotFound = &AppError{Code: "SUMMARY_NOT_FOUND", Message: "No summary stored for this period", StatusCode: http.StatusNotFound}
	ErrNegativeAmount  = &AppError{Code: "NEGATIVE_AMOUNT", Message: "Amount must not be negative", StatusCode: http.StatusBadRequest}
)

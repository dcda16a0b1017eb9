package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Validation (VAL) ----

// Validation returns a 400 validation error with a caller-supplied message.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

// ErrMissingFields names the fields a payout method kind requires but the request omitted.
func ErrMissingFields(kind string, fields []string) *AppError {
	return New("VAL_002", fmt.Sprintf("missing required fields for %s: %v", kind, fields), http.StatusBadRequest)
}

func ErrConfirmationRequired() *AppError {
	return New("VAL_003", "account details must be confirmed before verification", http.StatusBadRequest)
}

// ---- Payout Methods (PM) ----

func ErrPayoutMethodLimit(limit int) *AppError {
	return New("PM_001", fmt.Sprintf("bank transfer payout method limit of %d reached", limit), http.StatusBadRequest)
}

func ErrNotFound(entity string) *AppError {
	return New("PM_002", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrNotAwaitingVerification() *AppError {
	return New("PM_003", "payout method is not awaiting verification", http.StatusBadRequest)
}

// ---- Authentication & Security Gate (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_002", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrReauthFailed() *AppError {
	return New("AUTH_003", "Password confirmation failed", http.StatusUnauthorized)
}

func ErrReauthLocked() *AppError {
	return New("AUTH_004", "Too many failed password confirmations, try again later", http.StatusTooManyRequests)
}

func ErrEmailExists() *AppError {
	return New("AUTH_005", "Email already registered", http.StatusConflict)
}

func ErrSellerSuspended() *AppError {
	return New("AUTH_006", "Seller account is suspended", http.StatusForbidden)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

func ErrEncryptionFailure(err error) *AppError {
	return Wrap("SYS_002", "Encryption service failure", http.StatusInternalServerError, err)
}

package apperror

import (
	"errors"
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

// CodeOf returns the code of the AppError in err's chain, or "".
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// ---- Security (SEC) ----

func ErrInvalidSignature() *AppError {
	return New("SEC_002", "Invalid signature", http.StatusUnauthorized)
}

// ---- Payment Business Logic (PAY) ----

func ErrInsufficientFunds() *AppError {
	return New("PAY_001", "Insufficient balance in wallet", http.StatusPaymentRequired)
}

func ErrInvalidAmount() *AppError {
	return New("PAY_002", "Invalid amount", http.StatusBadRequest)
}

func ErrDuplicateTransaction() *AppError {
	return New("PAY_003", "Duplicate transaction", http.StatusConflict)
}

func ErrNotFound(entity string) *AppError {
	return New("PAY_004", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrUnsupportedCurrency(currency string) *AppError {
	return New("PAY_006", fmt.Sprintf("Currency %s is not supported by this wallet", currency), http.StatusBadRequest)
}

// ---- Transaction Lifecycle (TRX) ----

func ErrInvalidTransition(from, to string) *AppError {
	return New("TRX_001", fmt.Sprintf("Transition %s -> %s is not allowed", from, to), http.StatusConflict)
}

func ErrAmountMismatch() *AppError {
	return New("TRX_002", "Provider amount does not match transaction amount", http.StatusUnprocessableEntity)
}

func ErrCurrencyMismatch() *AppError {
	return New("TRX_003", "Provider currency does not match transaction currency", http.StatusUnprocessableEntity)
}

func ErrRevertNotAllowed(message string) *AppError {
	return New("TRX_004", message, http.StatusConflict)
}

// ---- Payment Providers (PRV) ----

func ErrUnknownProvider(name string) *AppError {
	return New("PRV_001", fmt.Sprintf("Unknown payment provider %q", name), http.StatusNotFound)
}

func ErrProviderRejected(err error) *AppError {
	return Wrap("PRV_002", "Payment provider rejected the request", http.StatusBadGateway, err)
}

func ErrProviderUnavailable(err error) *AppError {
	return Wrap("PRV_003", "Payment provider outcome unknown", http.StatusBadGateway, err)
}

// ---- Limits (LIM) ----

func ErrInvalidLimit(err error) *AppError {
	return &AppError{Code: "LIM_001", Message: err.Error(), HTTPStatus: http.StatusBadRequest, Err: err}
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrForbidden() *AppError {
	return New("AUTH_004", "Insufficient permissions", http.StatusForbidden)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrLockTimeout(err error) *AppError {
	return Wrap("SYS_002", "Lock acquisition timeout", http.StatusServiceUnavailable, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a PAY_002-style validation error.
func Validation(message string) *AppError {
	return New("PAY_002", message, http.StatusBadRequest)
}

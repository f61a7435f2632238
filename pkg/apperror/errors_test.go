package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("PAY_001", "Insufficient funds", http.StatusPaymentRequired),
			expected: "[PAY_001] Insufficient funds",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
	assert.Nil(t, New("PAY_001", "test", http.StatusBadRequest).Unwrap())
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, "TRX_002", CodeOf(fmt.Errorf("outer: %w", ErrAmountMismatch())))
	assert.Equal(t, "", CodeOf(errors.New("plain")))
}

func TestErrorCodes(t *testing.T) {
	inner := errors.New("boom")
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InvalidSignature", ErrInvalidSignature(), "SEC_002", 401},
		{"InsufficientFunds", ErrInsufficientFunds(), "PAY_001", 402},
		{"InvalidAmount", ErrInvalidAmount(), "PAY_002", 400},
		{"DuplicateTransaction", ErrDuplicateTransaction(), "PAY_003", 409},
		{"NotFound", ErrNotFound("Wallet"), "PAY_004", 404},
		{"UnsupportedCurrency", ErrUnsupportedCurrency("JPY"), "PAY_006", 400},
		{"InvalidTransition", ErrInvalidTransition("FAILED", "SUCCESS"), "TRX_001", 409},
		{"AmountMismatch", ErrAmountMismatch(), "TRX_002", 422},
		{"CurrencyMismatch", ErrCurrencyMismatch(), "TRX_003", 422},
		{"RevertNotAllowed", ErrRevertNotAllowed("no"), "TRX_004", 409},
		{"UnknownProvider", ErrUnknownProvider("x"), "PRV_001", 404},
		{"ProviderRejected", ErrProviderRejected(inner), "PRV_002", 502},
		{"ProviderUnavailable", ErrProviderUnavailable(inner), "PRV_003", 502},
		{"InvalidLimit", ErrInvalidLimit(inner), "LIM_001", 400},
		{"InvalidToken", ErrInvalidToken(), "AUTH_003", 401},
		{"Forbidden", ErrForbidden(), "AUTH_004", 403},
		{"RateLimit", ErrRateLimitExceeded(), "RATE_001", 429},
		{"Database", ErrDatabaseError(inner), "SYS_001", 500},
		{"LockTimeout", ErrLockTimeout(inner), "SYS_002", 503},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestNotFoundEntity(t *testing.T) {
	err := ErrNotFound("Transaction")
	assert.Contains(t, err.Message, "Transaction")
	assert.Equal(t, "Transition PENDING -> REFUNDED is not allowed", ErrInvalidTransition("PENDING", "REFUNDED").Message)
}

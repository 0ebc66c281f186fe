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
			appErr:   New("LGR_001", "Insufficient balance", http.StatusPaymentRequired),
			expected: "[LGR_001] Insufficient balance",
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
}

func TestAppError_IsNilUnwrap(t *testing.T) {
	appErr := New("VAL_001", "test", http.StatusBadRequest)
	assert.Nil(t, appErr.Unwrap())
}

func TestErrorCatalog(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InvalidSignature", ErrInvalidSignature(), "SEC_001", 401},
		{"MissingSignature", ErrMissingSignature(), "SEC_002", 401},
		{"TransactionNotFound", ErrTransactionNotFound("TX1"), "RCN_001", 500},
		{"AmountMismatch", ErrAmountMismatch(), "RCN_002", 400},
		{"DuplicateExternalID", ErrDuplicateExternalID(), "RCN_003", 409},
		{"InsufficientFunds", ErrInsufficientFunds(), "LGR_001", 402},
		{"DuplicateLedgerEntry", ErrDuplicateLedgerEntry(), "LGR_002", 409},
		{"PromotionNotFound", ErrPromotionNotFound(), "PRM_001", 404},
		{"PromotionNotCodeBased", ErrPromotionNotCodeBased(), "PRM_002", 400},
		{"InvalidToken", ErrInvalidToken(), "AUTH_001", 401},
		{"RateLimitExceeded", ErrRateLimitExceeded(), "RATE_001", 429},
		{"Validation", Validation("bad input"), "VAL_001", 400},
		{"InvalidAmount", ErrInvalidAmount(), "VAL_002", 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestErrTransactionNotFound_Message(t *testing.T) {
	err := ErrTransactionNotFound("GHOST")
	assert.Contains(t, err.Message, "GHOST")
}

package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses. The wrapped
// internal error is logged, never returned to callers.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"`
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

// ---- Signature Trust Boundary (SEC) ----

func ErrInvalidSignature() *AppError {
	return New("SEC_001", "Invalid callback signature", http.StatusUnauthorized)
}

func ErrMissingSignature() *AppError {
	return New("SEC_002", "Missing callback signature", http.StatusUnauthorized)
}

// ---- Reconciliation (RCN) ----

// ErrTransactionNotFound maps to 500: the gateway is expected to redeliver,
// and a persistently missing order code needs manual reconciliation.
func ErrTransactionNotFound(orderCode string) *AppError {
	return New("RCN_001", fmt.Sprintf("No transaction for order code %s", orderCode), http.StatusInternalServerError)
}

func ErrAmountMismatch() *AppError {
	return New("RCN_002", "Callback amount does not match transaction", http.StatusBadRequest)
}

func ErrDuplicateExternalID() *AppError {
	return New("RCN_003", "Order code already registered", http.StatusConflict)
}

// ---- Balance Ledger (LGR) ----

func ErrInsufficientFunds() *AppError {
	return New("LGR_001", "Insufficient balance", http.StatusPaymentRequired)
}

func ErrDuplicateLedgerEntry() *AppError {
	return New("LGR_002", "Duplicate ledger reference", http.StatusConflict)
}

// ---- Promotions (PRM) ----
// Promotion errors stay internal: the evaluator downgrades every failure to
// "not applicable" and never fails the deposit.

func ErrPromotionNotFound() *AppError {
	return New("PRM_001", "Promotion not found", http.StatusNotFound)
}

func ErrPromotionNotCodeBased() *AppError {
	return New("PRM_002", "Promotion does not issue codes", http.StatusBadRequest)
}

// ---- Service Auth (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_001", "Invalid or expired service token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- Validation & System ----

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

// ErrInvalidAmount rejects non-positive amounts.
func ErrInvalidAmount() *AppError {
	return New("VAL_002", "Invalid amount", http.StatusBadRequest)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

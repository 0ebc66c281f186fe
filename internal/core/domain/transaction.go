package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionKind represents the direction of a money movement request.
type TransactionKind string

const (
	TransactionKindDeposit    TransactionKind = "DEPOSIT"
	TransactionKindWithdrawal TransactionKind = "WITHDRAWAL"
)

// TransactionStatus represents the lifecycle state of a transaction.
// The state machine is forward-only: PENDING -> PROCESSING -> {APPROVED, FAILED},
// with EXPIRED reachable from PENDING via the stale-transaction sweep.
type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "PENDING"
	TransactionStatusProcessing TransactionStatus = "PROCESSING"
	TransactionStatusApproved   TransactionStatus = "APPROVED"
	TransactionStatusFailed     TransactionStatus = "FAILED"
	TransactionStatusExpired    TransactionStatus = "EXPIRED"
)

// Transaction is a deposit or withdrawal request awaiting gateway settlement.
// ExternalID is the gateway-assigned order code and the idempotency key for
// callback reconciliation. Transactions are never deleted; terminal rows are
// retained for audit.
type Transaction struct {
	InternalID uuid.UUID         `json:"internal_id"`
	ExternalID string            `json:"external_id"` // Gateway order code
	UserID     uuid.UUID         `json:"user_id"`
	Amount     int64             `json:"amount"` // Smallest currency unit
	Kind       TransactionKind   `json:"kind"`
	Status     TransactionStatus `json:"status"`
	PromoCode  *string           `json:"promo_code,omitempty"` // Attached at intake, claimed at settlement
	AdminNote  *string           `json:"admin_note,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	SettledAt  *time.Time        `json:"settled_at,omitempty"` // Set iff status is terminal
}

// IsTerminal returns true if the transaction has reached a final state.
func (t *Transaction) IsTerminal() bool {
	return t.Status == TransactionStatusApproved ||
		t.Status == TransactionStatusFailed ||
		t.Status == TransactionStatusExpired
}

// IsSettleable returns true if a gateway callback may still settle this
// transaction.
func (t *Transaction) IsSettleable() bool {
	return t.Status == TransactionStatusPending || t.Status == TransactionStatusProcessing
}

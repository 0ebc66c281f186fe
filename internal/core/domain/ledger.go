package domain

import (
	"time"

	"github.com/google/uuid"
)

// LedgerReason classifies a balance mutation.
type LedgerReason string

const (
	LedgerReasonDepositCredit   LedgerReason = "deposit_credit"
	LedgerReasonPromotionBonus  LedgerReason = "promotion_bonus"
	LedgerReasonWithdrawalDebit LedgerReason = "withdrawal_debit"
)

// LedgerEntry records a single balance mutation. The pair
// (ReferenceTransactionID, Reason) is unique: a second credit for the same
// transaction and reason indicates a reconciliation bug and is rejected.
type LedgerEntry struct {
	ID                     uuid.UUID    `json:"id"`
	UserID                 uuid.UUID    `json:"user_id"`
	Delta                  int64        `json:"delta"` // Signed, smallest currency unit
	Reason                 LedgerReason `json:"reason"`
	ReferenceTransactionID uuid.UUID    `json:"reference_transaction_id"`
	CreatedAt              time.Time    `json:"created_at"`
}

// Balance is the running balance for a user. It is owned exclusively by the
// ledger repository; all mutations go through credit/debit.
type Balance struct {
	UserID    uuid.UUID `json:"user_id"`
	Balance   int64     `json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}

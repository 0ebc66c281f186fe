package ports

import (
	"context"
	"time"

	"bet-settlement/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TransactionRepository defines persistence operations for transactions.
// Methods accepting pgx.Tx run inside a database transaction; the transition
// method relies on a single conditional UPDATE so that concurrent callbacks
// for the same order code serialize at the storage layer.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, transaction *domain.Transaction) error
	GetByExternalID(ctx context.Context, externalID string) (*domain.Transaction, error)
	// TransitionIfSettleable atomically moves the transaction to target iff its
	// current status is PENDING or PROCESSING. Returns the resulting row and
	// whether the transition was applied. When the transaction is already
	// terminal the existing row is returned unchanged with applied=false.
	// Returns (nil, false, nil) when no transaction matches externalID.
	TransitionIfSettleable(ctx context.Context, tx pgx.Tx, externalID string, target domain.TransactionStatus, note *string) (*domain.Transaction, bool, error)
	// CountApprovedDeposits counts APPROVED deposit transactions for a user.
	// Advisory read for first-deposit eligibility; the quota claim remains the
	// authoritative check.
	CountApprovedDeposits(ctx context.Context, userID uuid.UUID) (int64, error)
	// ExpirePendingBefore moves PENDING transactions created before cutoff to
	// EXPIRED. Returns the number of transactions expired.
	ExpirePendingBefore(ctx context.Context, cutoff time.Time) (int64, error)
	// Reporting queries
	List(ctx context.Context, params TransactionListParams) ([]domain.Transaction, int64, error)
	GetStats(ctx context.Context, periodStart *int64) (*SettlementStats, error)
}

// TransactionListParams holds filter + pagination for listing transactions.
type TransactionListParams struct {
	UserID   *uuid.UUID
	Status   *domain.TransactionStatus
	Kind     *domain.TransactionKind
	From     *int64 // Unix timestamp
	To       *int64 // Unix timestamp
	Page     int
	PageSize int
}

// SettlementStats holds aggregated settlement statistics.
type SettlementStats struct {
	TotalTransactions int64
	Pending           int64
	Approved          int64
	Failed            int64
	Expired           int64
	DepositVolume     int64 // Sum of APPROVED deposit amounts
	WithdrawalVolume  int64 // Sum of APPROVED withdrawal amounts
}

// PromotionRepository defines persistence for promotion rules and codes.
// ClaimRuleUse and MarkCodeUsed are the conditional-update primitives that
// make quota claims and code redemption race-free.
type PromotionRepository interface {
	CreateRule(ctx context.Context, rule *domain.PromotionRule) error
	GetRule(ctx context.Context, id uuid.UUID) (*domain.PromotionRule, error)
	// ListOpenRules returns non-code rules whose window covers now, that are
	// active and under quota, ordered by selection priority (first_deposit
	// before time_based).
	ListOpenRules(ctx context.Context, now time.Time) ([]domain.PromotionRule, error)
	CreateCodes(ctx context.Context, codes []domain.PromotionCode) error
	GetCode(ctx context.Context, code string) (*domain.PromotionCode, error)
	// ClaimRuleUse increments current_uses iff the rule is active, inside its
	// window and under quota. Returns false when the claim lost the race.
	ClaimRuleUse(ctx context.Context, tx pgx.Tx, ruleID uuid.UUID, now time.Time) (bool, error)
	// MarkCodeUsed flips is_used false->true exactly once. Returns false when
	// the code was already consumed.
	MarkCodeUsed(ctx context.Context, tx pgx.Tx, code string, usedBy uuid.UUID, usedAt time.Time) (bool, error)
}

// LedgerRepository owns the running balance. All balance mutations go through
// Credit/Debit; both are single-statement arithmetic updates so concurrent
// mutations to the same user never lose updates.
type LedgerRepository interface {
	// Credit appends a ledger entry and adds entry.Delta to the user balance.
	// Returns the new balance. A duplicate (reference, reason) pair yields
	// apperror.ErrDuplicateLedgerEntry.
	Credit(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) (int64, error)
	// Debit appends a negative entry and subtracts from the balance iff funds
	// suffice, otherwise apperror.ErrInsufficientFunds. entry.Delta carries
	// the positive amount to withhold.
	Debit(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) (int64, error)
	GetBalance(ctx context.Context, userID uuid.UUID) (*domain.Balance, error)
	ListEntries(ctx context.Context, userID uuid.UUID, limit int) ([]domain.LedgerEntry, error)
}

// SecurityEventRepository persists security and anomaly events.
type SecurityEventRepository interface {
	Create(ctx context.Context, event *domain.SecurityEvent) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

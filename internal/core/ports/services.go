package ports

import (
	"context"
	"time"

	"bet-settlement/internal/core/domain"

	"github.com/google/uuid"
)

// SignatureVerifier validates that an inbound callback body originates from
// the payment gateway. Fails closed: any mismatch or malformed input is
// simply "not verified".
type SignatureVerifier interface {
	Sign(secret string, rawBody []byte) string
	Verify(secret string, rawBody []byte, providedSignature string) bool
}

// TokenService validates (and, for tooling, issues) HS256 service tokens for
// the internal API. Sessions and user auth live in the platform backend.
type TokenService interface {
	Generate(subject string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed service token claims.
type TokenClaims struct {
	Subject string
}

// CallbackCache is the Redis fast path for already-settled order codes.
// Best effort: the conditional update at the store stays authoritative.
type CallbackCache interface {
	Get(ctx context.Context, orderCode string) ([]byte, error) // nil, nil on miss
	Set(ctx context.Context, orderCode string, result []byte, ttl time.Duration) error
}

// --- Service Ports (Business Logic) ---

// SettlementService is the reconciliation coordinator: it maps a verified
// gateway callback to exactly one pending transaction, transitions it exactly
// once, credits the balance and applies an eligible promotion.
type SettlementService interface {
	ProcessCallback(ctx context.Context, req CallbackRequest) (*SettlementResult, error)
}

// CallbackRequest holds the parsed, already signature-verified gateway
// callback fields used by reconciliation.
type CallbackRequest struct {
	Code        string // Gateway result code; "00" means success
	Description string
	OrderCode   string
	Amount      int64
	Status      string // "success" or "failed"
	ClientIP    string
}

// Succeeded reports whether the callback indicates a successful payment.
func (r CallbackRequest) Succeeded() bool {
	return r.Code == "00" && r.Status == "success"
}

// SettlementResult is the outcome of processing one callback.
type SettlementResult struct {
	Transaction    *domain.Transaction `json:"transaction"`
	Replay         bool                `json:"replay"`          // Idempotent redelivery of a settled callback
	CreditedAmount int64               `json:"credited_amount"` // 0 unless an approved deposit
	Bonus          *PromotionOutcome   `json:"bonus,omitempty"`
}

// PromotionEvaluator determines eligibility, computes the bonus and claims
// the promotion atomically. Every failure degrades to Applicable=false; a
// promotion never blocks or reverses the underlying deposit credit.
type PromotionEvaluator interface {
	// Evaluate is the read-only eligibility check.
	Evaluate(ctx context.Context, userID uuid.UUID, depositAmount int64, promoCode *string) (*PromotionOutcome, error)
	// Apply claims the quota (and code, when code-based) and credits the bonus
	// in one unit of work, strictly after the deposit is committed.
	Apply(ctx context.Context, txn *domain.Transaction) *PromotionOutcome
}

// PromotionOutcome reports the evaluated (or applied) promotion.
type PromotionOutcome struct {
	Applicable  bool       `json:"applicable"`
	BonusAmount int64      `json:"bonus_amount"`
	PromotionID *uuid.UUID `json:"promotion_id,omitempty"`
}

// PromotionAdminService manages promotion rules and codes.
type PromotionAdminService interface {
	CreateRule(ctx context.Context, req CreateRuleRequest) (*domain.PromotionRule, error)
	MintCodes(ctx context.Context, promotionID uuid.UUID, count int) ([]domain.PromotionCode, error)
}

// CreateRuleRequest holds validated input for creating a promotion rule.
type CreateRuleRequest struct {
	Type            domain.PromotionType
	BonusPercentage *int64
	BonusAmount     *int64
	MinDeposit      int64
	MaxUses         *int64
	StartsAt        time.Time
	EndsAt          time.Time
}

// TransactionService covers transaction intake and the expiry sweep.
type TransactionService interface {
	// Initiate creates a PENDING transaction. Withdrawals debit the balance up
	// front with an insufficient-funds check.
	Initiate(ctx context.Context, req InitiateRequest) (*domain.Transaction, error)
	// ExpireStale moves PENDING transactions older than ttl to EXPIRED.
	ExpireStale(ctx context.Context, ttl time.Duration) (int64, error)
}

// InitiateRequest holds validated input for transaction intake.
type InitiateRequest struct {
	ExternalID string
	UserID     uuid.UUID
	Amount     int64
	Kind       domain.TransactionKind
	PromoCode  *string
}

// ReportingService serves the admin/notification layer read model.
type ReportingService interface {
	ListTransactions(ctx context.Context, params TransactionListParams) ([]domain.Transaction, int64, error)
	GetTransaction(ctx context.Context, externalID string) (*domain.Transaction, error)
	GetStats(ctx context.Context, period string) (*SettlementStats, error)
	GetBalance(ctx context.Context, userID uuid.UUID) (*domain.Balance, error)
	ListLedgerEntries(ctx context.Context, userID uuid.UUID, limit int) ([]domain.LedgerEntry, error)
}

// SecurityEventService records security and anomaly events (fire-and-forget).
type SecurityEventService interface {
	Record(ctx context.Context, kind domain.SecurityEventKind, detail map[string]any, clientIP string)
}

package integration

import (
	"context"
	"sort"
	"sync"
	"time"

	"bet-settlement/internal/core/domain"
	"bet-settlement/internal/core/ports"
	"bet-settlement/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- In-Memory Transaction Repo ---

type inMemoryTransactionRepo struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction // keyed by external ID
}

func newInMemoryTransactionRepo() *inMemoryTransactionRepo {
	return &inMemoryTransactionRepo{transactions: make(map[string]*domain.Transaction)}
}

func (r *inMemoryTransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.transactions[t.ExternalID]; ok {
		return &pgconn.PgError{Code: "23505", ConstraintName: "transactions_external_id_key"}
	}
	cp := *t
	r.transactions[t.ExternalID] = &cp
	return nil
}

func (r *inMemoryTransactionRepo) GetByExternalID(ctx context.Context, externalID string) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.transactions[externalID]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *inMemoryTransactionRepo) TransitionIfSettleable(ctx context.Context, tx pgx.Tx, externalID string, target domain.TransactionStatus, note *string) (*domain.Transaction, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transactions[externalID]
	if !ok {
		return nil, false, nil
	}
	if !t.IsSettleable() {
		cp := *t
		return &cp, false, nil
	}
	now := time.Now().UTC()
	t.Status = target
	t.SettledAt = &now
	if note != nil {
		t.AdminNote = note
	}
	cp := *t
	return &cp, true, nil
}

func (r *inMemoryTransactionRepo) CountApprovedDeposits(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, t := range r.transactions {
		if t.UserID == userID && t.Kind == domain.TransactionKindDeposit && t.Status == domain.TransactionStatusApproved {
			count++
		}
	}
	return count, nil
}

func (r *inMemoryTransactionRepo) ExpirePendingBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var expired int64
	now := time.Now().UTC()
	for _, t := range r.transactions {
		if t.Status == domain.TransactionStatusPending && t.CreatedAt.Before(cutoff) {
			t.Status = domain.TransactionStatusExpired
			t.SettledAt = &now
			expired++
		}
	}
	return expired, nil
}

func (r *inMemoryTransactionRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Transaction
	for _, t := range r.transactions {
		if params.UserID != nil && t.UserID != *params.UserID {
			continue
		}
		if params.Status != nil && t.Status != *params.Status {
			continue
		}
		if params.Kind != nil && t.Kind != *params.Kind {
			continue
		}
		if params.From != nil && t.CreatedAt.Unix() < *params.From {
			continue
		}
		if params.To != nil && t.CreatedAt.Unix() > *params.To {
			continue
		}
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	total := int64(len(result))

	// Simple pagination
	start := (params.Page - 1) * params.PageSize
	if start >= len(result) {
		return []domain.Transaction{}, total, nil
	}
	end := start + params.PageSize
	if end > len(result) {
		end = len(result)
	}
	return result[start:end], total, nil
}

func (r *inMemoryTransactionRepo) GetStats(ctx context.Context, periodStart *int64) (*ports.SettlementStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats := &ports.SettlementStats{}
	for _, t := range r.transactions {
		if periodStart != nil && t.CreatedAt.Unix() < *periodStart {
			continue
		}
		stats.TotalTransactions++
		switch t.Status {
		case domain.TransactionStatusPending:
			stats.Pending++
		case domain.TransactionStatusApproved:
			stats.Approved++
		case domain.TransactionStatusFailed:
			stats.Failed++
		case domain.TransactionStatusExpired:
			stats.Expired++
		}
		if t.Status == domain.TransactionStatusApproved {
			switch t.Kind {
			case domain.TransactionKindDeposit:
				stats.DepositVolume += t.Amount
			case domain.TransactionKindWithdrawal:
				stats.WithdrawalVolume += t.Amount
			}
		}
	}
	return stats, nil
}

// --- In-Memory Promotion Repo ---

type inMemoryPromotionRepo struct {
	mu    sync.RWMutex
	rules map[uuid.UUID]*domain.PromotionRule
	codes map[string]*domain.PromotionCode
}

func newInMemoryPromotionRepo() *inMemoryPromotionRepo {
	return &inMemoryPromotionRepo{
		rules: make(map[uuid.UUID]*domain.PromotionRule),
		codes: make(map[string]*domain.PromotionCode),
	}
}

func (r *inMemoryPromotionRepo) CreateRule(ctx context.Context, rule *domain.PromotionRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rule
	r.rules[rule.ID] = &cp
	return nil
}

func (r *inMemoryPromotionRepo) GetRule(ctx context.Context, id uuid.UUID) (*domain.PromotionRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[id]
	if !ok {
		return nil, nil
	}
	cp := *rule
	return &cp, nil
}

func (r *inMemoryPromotionRepo) ListOpenRules(ctx context.Context, now time.Time) ([]domain.PromotionRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.PromotionRule
	for _, rule := range r.rules {
		if rule.Type == domain.PromotionTypeCodeBased {
			continue
		}
		if !rule.IsOpen(now) {
			continue
		}
		result = append(result, *rule)
	}
	// first_deposit sorts ahead of time_based
	sort.Slice(result, func(i, j int) bool {
		pi, pj := 1, 1
		if result[i].Type == domain.PromotionTypeFirstDeposit {
			pi = 0
		}
		if result[j].Type == domain.PromotionTypeFirstDeposit {
			pj = 0
		}
		if pi != pj {
			return pi < pj
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *inMemoryPromotionRepo) CreateCodes(ctx context.Context, codes []domain.PromotionCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range codes {
		cp := codes[i]
		r.codes[cp.Code] = &cp
	}
	return nil
}

func (r *inMemoryPromotionRepo) GetCode(ctx context.Context, code string) (*domain.PromotionCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.codes[code]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *inMemoryPromotionRepo) ClaimRuleUse(ctx context.Context, tx pgx.Tx, ruleID uuid.UUID, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rule, ok := r.rules[ruleID]
	if !ok || !rule.IsOpen(now) {
		return false, nil
	}
	rule.CurrentUses++
	return true, nil
}

func (r *inMemoryPromotionRepo) MarkCodeUsed(ctx context.Context, tx pgx.Tx, code string, usedBy uuid.UUID, usedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.codes[code]
	if !ok || c.IsUsed {
		return false, nil
	}
	c.IsUsed = true
	c.UsedBy = &usedBy
	c.UsedAt = &usedAt
	return true, nil
}

// --- In-Memory Ledger Repo ---

type ledgerKey struct {
	ref    uuid.UUID
	reason domain.LedgerReason
}

type inMemoryLedgerRepo struct {
	mu       sync.RWMutex
	entries  []domain.LedgerEntry
	balances map[uuid.UUID]int64
	seen     map[ledgerKey]bool
}

func newInMemoryLedgerRepo() *inMemoryLedgerRepo {
	return &inMemoryLedgerRepo{
		balances: make(map[uuid.UUID]int64),
		seen:     make(map[ledgerKey]bool),
	}
}

func (r *inMemoryLedgerRepo) Credit(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := ledgerKey{ref: entry.ReferenceTransactionID, reason: entry.Reason}
	if r.seen[key] {
		return 0, apperror.ErrDuplicateLedgerEntry()
	}
	r.seen[key] = true
	r.entries = append(r.entries, *entry)
	r.balances[entry.UserID] += entry.Delta
	return r.balances[entry.UserID], nil
}

func (r *inMemoryLedgerRepo) Debit(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.balances[entry.UserID] < entry.Delta {
		return 0, apperror.ErrInsufficientFunds()
	}
	key := ledgerKey{ref: entry.ReferenceTransactionID, reason: entry.Reason}
	if r.seen[key] {
		return 0, apperror.ErrDuplicateLedgerEntry()
	}
	r.seen[key] = true
	r.balances[entry.UserID] -= entry.Delta
	debited := *entry
	debited.Delta = -entry.Delta
	r.entries = append(r.entries, debited)
	return r.balances[entry.UserID], nil
}

func (r *inMemoryLedgerRepo) GetBalance(ctx context.Context, userID uuid.UUID) (*domain.Balance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.balances[userID]
	if !ok {
		return nil, nil
	}
	return &domain.Balance{UserID: userID, Balance: b, UpdatedAt: time.Now().UTC()}, nil
}

func (r *inMemoryLedgerRepo) ListEntries(ctx context.Context, userID uuid.UUID, limit int) ([]domain.LedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.LedgerEntry
	for i := len(r.entries) - 1; i >= 0 && len(result) < limit; i-- {
		if r.entries[i].UserID == userID {
			result = append(result, r.entries[i])
		}
	}
	return result, nil
}

// --- In-Memory Security Event Repo ---

type inMemorySecurityEventRepo struct {
	mu     sync.RWMutex
	events []domain.SecurityEvent
}

func newInMemorySecurityEventRepo() *inMemorySecurityEventRepo {
	return &inMemorySecurityEventRepo{}
}

func (r *inMemorySecurityEventRepo) Create(ctx context.Context, event *domain.SecurityEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

func (r *inMemorySecurityEventRepo) count(kind domain.SecurityEventKind) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// --- In-Memory Transactor (no-op tx) ---

type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &noopTx{}, nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }

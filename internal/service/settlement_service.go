package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bet-settlement/internal/core/domain"
	"bet-settlement/internal/core/ports"
	"bet-settlement/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SettlementServiceImpl implements ports.SettlementService. It is stateless;
// per-transaction mutual exclusion lives in the store's conditional update,
// so the service is safe to run in any number of replicas.
type SettlementServiceImpl struct {
	txRepo     ports.TransactionRepository
	ledgerRepo ports.LedgerRepository
	evaluator  ports.PromotionEvaluator
	cache      ports.CallbackCache
	transactor ports.DBTransactor
	secSvc     ports.SecurityEventService
	cacheTTL   time.Duration
	log        zerolog.Logger
}

// NewSettlementService creates a new SettlementServiceImpl.
func NewSettlementService(
	txRepo ports.TransactionRepository,
	ledgerRepo ports.LedgerRepository,
	evaluator ports.PromotionEvaluator,
	cache ports.CallbackCache,
	transactor ports.DBTransactor,
	secSvc ports.SecurityEventService,
	cacheTTL time.Duration,
	log zerolog.Logger,
) *SettlementServiceImpl {
	return &SettlementServiceImpl{
		txRepo:     txRepo,
		ledgerRepo: ledgerRepo,
		evaluator:  evaluator,
		cache:      cache,
		transactor: transactor,
		secSvc:     secSvc,
		cacheTTL:   cacheTTL,
		log:        log,
	}
}

// ProcessCallback reconciles one verified gateway callback: locate the
// transaction, transition it exactly once, credit the balance and apply an
// eligible promotion. The transition and the deposit credit commit in one
// database transaction, so a credit failure leaves the transaction PENDING
// for the gateway's redelivery.
func (s *SettlementServiceImpl) ProcessCallback(ctx context.Context, req ports.CallbackRequest) (*ports.SettlementResult, error) {
	// Layer 1: Redis fast path for already-settled order codes (best effort).
	cached, err := s.cache.Get(ctx, req.OrderCode)
	if err != nil {
		s.log.Warn().Err(err).Str("order_code", req.OrderCode).Msg("callback cache check failed, falling through to DB")
	}
	if cached != nil {
		return s.unmarshalCachedResult(cached)
	}

	// Pre-flight read: reject mismatched callbacks before any mutation.
	// The conditional update below re-checks status, so this read is safe
	// against concurrent deliveries.
	existing, err := s.txRepo.GetByExternalID(ctx, req.OrderCode)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lookup transaction: %w", err))
	}
	if existing == nil {
		return nil, apperror.ErrTransactionNotFound(req.OrderCode)
	}
	if req.Amount != existing.Amount {
		s.secSvc.Record(ctx, domain.SecurityEventAmountMismatch, map[string]any{
			"order_code":      req.OrderCode,
			"callback_amount": req.Amount,
			"stored_amount":   existing.Amount,
		}, req.ClientIP)
		return nil, apperror.ErrAmountMismatch()
	}

	target := domain.TransactionStatusFailed
	if req.Succeeded() {
		target = domain.TransactionStatusApproved
	}
	var note *string
	if req.Description != "" {
		note = &req.Description
	}

	// One recoverable unit of work: status transition + deposit credit.
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	txn, applied, err := s.txRepo.TransitionIfSettleable(ctx, dbTx, req.OrderCode, target, note)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("transition transaction: %w", err))
	}
	if txn == nil {
		return nil, apperror.ErrTransactionNotFound(req.OrderCode)
	}

	if !applied {
		// Already terminal: duplicate delivery. Acknowledge without mutation.
		s.log.Info().
			Str("order_code", req.OrderCode).
			Str("status", string(txn.Status)).
			Msg("duplicate callback for settled transaction, acknowledging")
		return &ports.SettlementResult{Transaction: txn, Replay: true}, nil
	}

	result := &ports.SettlementResult{Transaction: txn}

	creditDeposit := target == domain.TransactionStatusApproved && txn.Kind == domain.TransactionKindDeposit
	if creditDeposit {
		if _, err := s.ledgerRepo.Credit(ctx, dbTx, &domain.LedgerEntry{
			ID:                     uuid.New(),
			UserID:                 txn.UserID,
			Delta:                  txn.Amount,
			Reason:                 domain.LedgerReasonDepositCredit,
			ReferenceTransactionID: txn.InternalID,
			CreatedAt:              time.Now().UTC(),
		}); err != nil {
			// Rollback leaves the transaction PENDING; the gateway retries.
			return nil, apperror.InternalError(fmt.Errorf("credit deposit: %w", err))
		}
		result.CreditedAmount = txn.Amount
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	// Post-commit: best-effort promotion, strictly after the deposit credit
	// is durable. A promotion failure never reverses the credit.
	if creditDeposit {
		result.Bonus = s.evaluator.Apply(ctx, txn)
	}

	// Post-process: cache the settled result for duplicate deliveries.
	if respJSON, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, req.OrderCode, respJSON, s.cacheTTL); err != nil {
			s.log.Warn().Err(err).Str("order_code", req.OrderCode).Msg("failed to cache settlement result")
		}
	}

	s.log.Info().
		Str("order_code", req.OrderCode).
		Str("user_id", txn.UserID.String()).
		Str("status", string(txn.Status)).
		Int64("credited", result.CreditedAmount).
		Bool("bonus_applied", result.Bonus != nil && result.Bonus.Applicable).
		Msg("callback settled")

	return result, nil
}

// unmarshalCachedResult deserializes a cached settlement result and marks it
// as a replay.
func (s *SettlementServiceImpl) unmarshalCachedResult(data []byte) (*ports.SettlementResult, error) {
	result := &ports.SettlementResult{}
	if err := json.Unmarshal(data, result); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("unmarshal cached result: %w", err))
	}
	result.Replay = true
	return result, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bet-settlement/internal/core/domain"
	"bet-settlement/internal/core/ports"
	"bet-settlement/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// TransactionServiceImpl implements ports.TransactionService: intake of
// pending transactions and the stale-transaction expiry sweep.
type TransactionServiceImpl struct {
	txRepo     ports.TransactionRepository
	ledgerRepo ports.LedgerRepository
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewTransactionService creates a new TransactionServiceImpl.
func NewTransactionService(
	txRepo ports.TransactionRepository,
	ledgerRepo ports.LedgerRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *TransactionServiceImpl {
	return &TransactionServiceImpl{
		txRepo:     txRepo,
		ledgerRepo: ledgerRepo,
		transactor: transactor,
		log:        log,
	}
}

// Initiate creates a PENDING transaction for a gateway order code. A
// withdrawal debits the balance in the same database transaction, so the
// funds are withheld before the gateway is ever asked to pay out.
func (s *TransactionServiceImpl) Initiate(ctx context.Context, req ports.InitiateRequest) (*domain.Transaction, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if req.ExternalID == "" {
		return nil, apperror.Validation("external_id is required")
	}

	txn := &domain.Transaction{
		InternalID: uuid.New(),
		ExternalID: req.ExternalID,
		UserID:     req.UserID,
		Amount:     req.Amount,
		Kind:       req.Kind,
		Status:     domain.TransactionStatusPending,
		PromoCode:  req.PromoCode,
		CreatedAt:  time.Now().UTC(),
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperror.ErrDuplicateExternalID()
		}
		return nil, apperror.InternalError(fmt.Errorf("create transaction: %w", err))
	}

	if req.Kind == domain.TransactionKindWithdrawal {
		if _, err := s.ledgerRepo.Debit(ctx, dbTx, &domain.LedgerEntry{
			ID:                     uuid.New(),
			UserID:                 txn.UserID,
			Delta:                  txn.Amount,
			Reason:                 domain.LedgerReasonWithdrawalDebit,
			ReferenceTransactionID: txn.InternalID,
			CreatedAt:              txn.CreatedAt,
		}); err != nil {
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				return nil, err
			}
			return nil, apperror.InternalError(fmt.Errorf("debit withdrawal: %w", err))
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("order_code", txn.ExternalID).
		Str("user_id", txn.UserID.String()).
		Str("kind", string(txn.Kind)).
		Int64("amount", txn.Amount).
		Msg("transaction initiated")

	return txn, nil
}

// ExpireStale moves PENDING transactions older than ttl to EXPIRED.
func (s *TransactionServiceImpl) ExpireStale(ctx context.Context, ttl time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-ttl)
	expired, err := s.txRepo.ExpirePendingBefore(ctx, cutoff)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("expire pending: %w", err))
	}
	if expired > 0 {
		s.log.Info().Int64("count", expired).Time("cutoff", cutoff).Msg("stale transactions expired")
	}
	return expired, nil
}

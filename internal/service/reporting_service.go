package service

import (
	"context"
	"time"

	"bet-settlement/internal/core/domain"
	"bet-settlement/internal/core/ports"
	"bet-settlement/pkg/apperror"

	"github.com/google/uuid"
)

// reportingService implements ports.ReportingService. It feeds the admin and
// notification layers; everything here is read-only.
type reportingService struct {
	txRepo     ports.TransactionRepository
	ledgerRepo ports.LedgerRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(txRepo ports.TransactionRepository, ledgerRepo ports.LedgerRepository) ports.ReportingService {
	return &reportingService{
		txRepo:     txRepo,
		ledgerRepo: ledgerRepo,
	}
}

// ListTransactions returns a paginated list of transactions.
func (s *reportingService) ListTransactions(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	txns, total, err := s.txRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(err)
	}
	return txns, total, nil
}

// GetTransaction returns a single transaction by gateway order code.
func (s *reportingService) GetTransaction(ctx context.Context, externalID string) (*domain.Transaction, error) {
	txn, err := s.txRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if txn == nil {
		return nil, apperror.ErrTransactionNotFound(externalID)
	}
	return txn, nil
}

// GetStats returns aggregated settlement stats for the requested period.
func (s *reportingService) GetStats(ctx context.Context, period string) (*ports.SettlementStats, error) {
	var periodStart *int64

	switch period {
	case "day":
		t := time.Now().AddDate(0, 0, -1).Unix()
		periodStart = &t
	case "week":
		t := time.Now().AddDate(0, 0, -7).Unix()
		periodStart = &t
	case "month":
		t := time.Now().AddDate(0, -1, 0).Unix()
		periodStart = &t
	case "all", "":
		// No time filter
	default:
		return nil, apperror.Validation("invalid period: must be day, week, month, or all")
	}

	stats, err := s.txRepo.GetStats(ctx, periodStart)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	return stats, nil
}

// GetBalance returns the current balance for a user. Users without ledger
// activity report a zero balance.
func (s *reportingService) GetBalance(ctx context.Context, userID uuid.UUID) (*domain.Balance, error) {
	balance, err := s.ledgerRepo.GetBalance(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if balance == nil {
		return &domain.Balance{UserID: userID, Balance: 0}, nil
	}
	return balance, nil
}

// ListLedgerEntries returns the newest ledger entries for a user.
func (s *reportingService) ListLedgerEntries(ctx context.Context, userID uuid.UUID, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	entries, err := s.ledgerRepo.ListEntries(ctx, userID, limit)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return entries, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bet-settlement/internal/core/domain"
	"bet-settlement/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `internal_id, external_id, user_id, amount, kind, status, promo_code, admin_note, created_at, settled_at`

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create inserts a new transaction within a database transaction.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO transactions (internal_id, external_id, user_id, amount, kind, status, promo_code, admin_note, created_at, settled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := tx.Exec(ctx, query,
		t.InternalID, t.ExternalID, t.UserID, t.Amount,
		t.Kind, t.Status, t.PromoCode, t.AdminNote,
		t.CreatedAt, t.SettledAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByExternalID fetches a transaction by its gateway order code.
func (r *TransactionRepo) GetByExternalID(ctx context.Context, externalID string) (*domain.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE external_id = $1`, transactionColumns)

	return r.scanTransaction(r.pool.QueryRow(ctx, query, externalID))
}

// TransitionIfSettleable atomically moves a transaction to a terminal status.
// The status predicate in the UPDATE is what serializes concurrent callback
// deliveries: exactly one delivery wins the row, the rest observe zero rows
// and read back the already-settled record.
func (r *TransactionRepo) TransitionIfSettleable(ctx context.Context, tx pgx.Tx, externalID string, target domain.TransactionStatus, note *string) (*domain.Transaction, bool, error) {
	now := time.Now()
	query := fmt.Sprintf(`UPDATE transactions
		SET status = $1, admin_note = COALESCE($2, admin_note), settled_at = $3
		WHERE external_id = $4 AND status IN ('PENDING', 'PROCESSING')
		RETURNING %s`, transactionColumns)

	t, err := r.scanTransaction(tx.QueryRow(ctx, query, target, note, now, externalID))
	if err != nil {
		return nil, false, fmt.Errorf("transition transaction: %w", err)
	}
	if t != nil {
		return t, true, nil
	}

	// Lost the race or the record was already terminal. Return the row as it
	// stands so the caller can replay the stored outcome.
	current, err := r.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, false, err
	}
	return current, false, nil
}

// CountApprovedDeposits counts approved deposits for a user.
func (r *TransactionRepo) CountApprovedDeposits(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE user_id = $1 AND kind = 'DEPOSIT' AND status = 'APPROVED'`

	var count int64
	err := r.pool.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count approved deposits: %w", err)
	}
	return count, nil
}

// ExpirePendingBefore marks pending transactions created before the cutoff as expired.
func (r *TransactionRepo) ExpirePendingBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	now := time.Now()
	query := `UPDATE transactions SET status = 'EXPIRED', settled_at = $1
		WHERE status = 'PENDING' AND created_at < $2`

	tag, err := r.pool.Exec(ctx, query, now, cutoff)
	if err != nil {
		return 0, fmt.Errorf("expire pending transactions: %w", err)
	}
	return tag.RowsAffected(), nil
}

// List fetches transactions with filtering and pagination.
func (r *TransactionRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argIdx))
		args = append(args, *params.UserID)
		argIdx++
	}
	if params.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *params.Status)
		argIdx++
	}
	if params.Kind != nil {
		conditions = append(conditions, fmt.Sprintf("kind = $%d", argIdx))
		args = append(args, *params.Kind)
		argIdx++
	}
	if params.From != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= to_timestamp($%d)", argIdx))
		args = append(args, *params.From)
		argIdx++
	}
	if params.To != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= to_timestamp($%d)", argIdx))
		args = append(args, *params.To)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Count total
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM transactions %s", where)
	var total int64
	err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	// Fetch page
	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT %s FROM transactions %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		transactionColumns, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		t := domain.Transaction{}
		err := rows.Scan(
			&t.InternalID, &t.ExternalID, &t.UserID, &t.Amount,
			&t.Kind, &t.Status, &t.PromoCode, &t.AdminNote,
			&t.CreatedAt, &t.SettledAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction row: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return txns, total, nil
}

// GetStats retrieves aggregated settlement statistics.
func (r *TransactionRepo) GetStats(ctx context.Context, periodStart *int64) (*ports.SettlementStats, error) {
	var args []any

	condition := "TRUE"
	if periodStart != nil {
		condition = "created_at >= to_timestamp($1)"
		args = append(args, *periodStart)
	}

	query := fmt.Sprintf(`SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE status = 'PENDING') AS pending,
		COUNT(*) FILTER (WHERE status = 'APPROVED') AS approved,
		COUNT(*) FILTER (WHERE status = 'FAILED') AS failed,
		COUNT(*) FILTER (WHERE status = 'EXPIRED') AS expired,
		COALESCE(SUM(amount) FILTER (WHERE kind = 'DEPOSIT' AND status = 'APPROVED'), 0) AS deposit_volume,
		COALESCE(SUM(amount) FILTER (WHERE kind = 'WITHDRAWAL' AND status = 'APPROVED'), 0) AS withdrawal_volume
		FROM transactions WHERE %s`, condition)

	stats := &ports.SettlementStats{}
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&stats.TotalTransactions, &stats.Pending, &stats.Approved, &stats.Failed, &stats.Expired,
		&stats.DepositVolume, &stats.WithdrawalVolume,
	)
	if err != nil {
		return nil, fmt.Errorf("get settlement stats: %w", err)
	}
	return stats, nil
}

// scanTransaction is a helper to scan a single row into a Transaction.
func (r *TransactionRepo) scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	err := row.Scan(
		&t.InternalID, &t.ExternalID, &t.UserID, &t.Amount,
		&t.Kind, &t.Status, &t.PromoCode, &t.AdminNote,
		&t.CreatedAt, &t.SettledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	return t, nil
}

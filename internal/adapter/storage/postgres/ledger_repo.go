package postgres

import (
	"context"
	"errors"
	"fmt"

	"bet-settlement/internal/core/domain"
	"bet-settlement/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// LedgerRepo implements ports.LedgerRepository.
type LedgerRepo struct {
	pool Pool
}

// NewLedgerRepo creates a new LedgerRepo.
func NewLedgerRepo(pool Pool) *LedgerRepo {
	return &LedgerRepo{pool: pool}
}

// Credit appends a ledger entry and adds entry.Delta to the user balance.
// The UNIQUE (reference_transaction_id, reason) constraint on ledger_entries
// is the last line of defense against a double credit slipping past the
// status guard; a violation surfaces as ErrDuplicateLedgerEntry.
func (r *LedgerRepo) Credit(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) (int64, error) {
	insertQuery := `INSERT INTO ledger_entries (id, user_id, delta, reason, reference_transaction_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := tx.Exec(ctx, insertQuery,
		entry.ID, entry.UserID, entry.Delta, entry.Reason,
		entry.ReferenceTransactionID, entry.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return 0, apperror.ErrDuplicateLedgerEntry()
		}
		return 0, fmt.Errorf("insert ledger entry: %w", err)
	}

	upsertQuery := `INSERT INTO balances (user_id, balance, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET balance = balances.balance + EXCLUDED.balance, updated_at = EXCLUDED.updated_at
		RETURNING balance`

	var newBalance int64
	err = tx.QueryRow(ctx, upsertQuery, entry.UserID, entry.Delta, entry.CreatedAt).Scan(&newBalance)
	if err != nil {
		return 0, fmt.Errorf("apply balance credit: %w", err)
	}
	return newBalance, nil
}

// Debit appends a negative entry and subtracts entry.Delta from the balance
// iff funds suffice. The balance predicate is the overdraft guard; a zero-row
// update means insufficient funds and nothing is written.
func (r *LedgerRepo) Debit(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) (int64, error) {
	updateQuery := `UPDATE balances SET balance = balance - $1, updated_at = $2
		WHERE user_id = $3 AND balance >= $1
		RETURNING balance`

	var newBalance int64
	err := tx.QueryRow(ctx, updateQuery, entry.Delta, entry.CreatedAt, entry.UserID).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperror.ErrInsufficientFunds()
		}
		return 0, fmt.Errorf("apply balance debit: %w", err)
	}

	insertQuery := `INSERT INTO ledger_entries (id, user_id, delta, reason, reference_transaction_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = tx.Exec(ctx, insertQuery,
		entry.ID, entry.UserID, -entry.Delta, entry.Reason,
		entry.ReferenceTransactionID, entry.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return 0, apperror.ErrDuplicateLedgerEntry()
		}
		return 0, fmt.Errorf("insert ledger entry: %w", err)
	}
	return newBalance, nil
}

// GetBalance fetches the current balance for a user.
func (r *LedgerRepo) GetBalance(ctx context.Context, userID uuid.UUID) (*domain.Balance, error) {
	query := `SELECT user_id, balance, updated_at FROM balances WHERE user_id = $1`

	b := &domain.Balance{}
	err := r.pool.QueryRow(ctx, query, userID).Scan(&b.UserID, &b.Balance, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan balance: %w", err)
	}
	return b, nil
}

// ListEntries fetches the most recent ledger entries for a user.
func (r *LedgerRepo) ListEntries(ctx context.Context, userID uuid.UUID, limit int) ([]domain.LedgerEntry, error) {
	query := `SELECT id, user_id, delta, reason, reference_transaction_id, created_at
		FROM ledger_entries WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		e := domain.LedgerEntry{}
		err := rows.Scan(&e.ID, &e.UserID, &e.Delta, &e.Reason, &e.ReferenceTransactionID, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger entry rows: %w", err)
	}
	return entries, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bet-settlement/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const promotionRuleColumns = `id, promo_type, bonus_percentage, bonus_amount, min_deposit, max_uses, current_uses, starts_at, ends_at, is_active, created_at`

// PromotionRepo implements ports.PromotionRepository.
type PromotionRepo struct {
	pool Pool
}

// NewPromotionRepo creates a new PromotionRepo.
func NewPromotionRepo(pool Pool) *PromotionRepo {
	return &PromotionRepo{pool: pool}
}

// CreateRule inserts a new promotion rule.
func (r *PromotionRepo) CreateRule(ctx context.Context, rule *domain.PromotionRule) error {
	query := `INSERT INTO promotion_rules (id, promo_type, bonus_percentage, bonus_amount, min_deposit, max_uses, current_uses, starts_at, ends_at, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		rule.ID, rule.Type, rule.BonusPercentage, rule.BonusAmount,
		rule.MinDeposit, rule.MaxUses, rule.CurrentUses,
		rule.StartsAt, rule.EndsAt, rule.IsActive, rule.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert promotion rule: %w", err)
	}
	return nil
}

// GetRule fetches a promotion rule by ID.
func (r *PromotionRepo) GetRule(ctx context.Context, id uuid.UUID) (*domain.PromotionRule, error) {
	query := fmt.Sprintf(`SELECT %s FROM promotion_rules WHERE id = $1`, promotionRuleColumns)

	return r.scanRule(r.pool.QueryRow(ctx, query, id))
}

// ListOpenRules returns active non-code rules whose window covers now and that
// still have quota. first_deposit rules sort ahead of time_based ones so the
// more specific rule wins selection.
func (r *PromotionRepo) ListOpenRules(ctx context.Context, now time.Time) ([]domain.PromotionRule, error) {
	query := fmt.Sprintf(`SELECT %s FROM promotion_rules
		WHERE promo_type != 'code_based'
		AND is_active = TRUE
		AND starts_at <= $1 AND ends_at > $1
		AND (max_uses IS NULL OR current_uses < max_uses)
		ORDER BY CASE promo_type WHEN 'first_deposit' THEN 0 ELSE 1 END, created_at`, promotionRuleColumns)

	rows, err := r.pool.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("list open promotion rules: %w", err)
	}
	defer rows.Close()

	var rules []domain.PromotionRule
	for rows.Next() {
		rule := domain.PromotionRule{}
		err := rows.Scan(
			&rule.ID, &rule.Type, &rule.BonusPercentage, &rule.BonusAmount,
			&rule.MinDeposit, &rule.MaxUses, &rule.CurrentUses,
			&rule.StartsAt, &rule.EndsAt, &rule.IsActive, &rule.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan promotion rule row: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate promotion rule rows: %w", err)
	}
	return rules, nil
}

// CreateCodes bulk-inserts promotion codes.
func (r *PromotionRepo) CreateCodes(ctx context.Context, codes []domain.PromotionCode) error {
	query := `INSERT INTO promotion_codes (code, promotion_id, is_used, used_by, used_at)
		VALUES ($1, $2, $3, $4, $5)`

	for i := range codes {
		c := &codes[i]
		_, err := r.pool.Exec(ctx, query, c.Code, c.PromotionID, c.IsUsed, c.UsedBy, c.UsedAt)
		if err != nil {
			return fmt.Errorf("insert promotion code: %w", err)
		}
	}
	return nil
}

// GetCode fetches a promotion code.
func (r *PromotionRepo) GetCode(ctx context.Context, code string) (*domain.PromotionCode, error) {
	query := `SELECT code, promotion_id, is_used, used_by, used_at FROM promotion_codes WHERE code = $1`

	c := &domain.PromotionCode{}
	err := r.pool.QueryRow(ctx, query, code).Scan(&c.Code, &c.PromotionID, &c.IsUsed, &c.UsedBy, &c.UsedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan promotion code: %w", err)
	}
	return c, nil
}

// ClaimRuleUse increments current_uses under the quota predicate. The claim is
// authoritative: two concurrent redemptions of a rule with one remaining use
// cannot both see RowsAffected=1.
func (r *PromotionRepo) ClaimRuleUse(ctx context.Context, tx pgx.Tx, ruleID uuid.UUID, now time.Time) (bool, error) {
	query := `UPDATE promotion_rules SET current_uses = current_uses + 1
		WHERE id = $1
		AND is_active = TRUE
		AND starts_at <= $2 AND ends_at > $2
		AND (max_uses IS NULL OR current_uses < max_uses)`

	tag, err := tx.Exec(ctx, query, ruleID, now)
	if err != nil {
		return false, fmt.Errorf("claim promotion rule use: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkCodeUsed consumes a promotion code exactly once.
func (r *PromotionRepo) MarkCodeUsed(ctx context.Context, tx pgx.Tx, code string, usedBy uuid.UUID, usedAt time.Time) (bool, error) {
	query := `UPDATE promotion_codes SET is_used = TRUE, used_by = $1, used_at = $2
		WHERE code = $3 AND is_used = FALSE`

	tag, err := tx.Exec(ctx, query, usedBy, usedAt, code)
	if err != nil {
		return false, fmt.Errorf("mark promotion code used: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// scanRule is a helper to scan a single row into a PromotionRule.
func (r *PromotionRepo) scanRule(row pgx.Row) (*domain.PromotionRule, error) {
	rule := &domain.PromotionRule{}
	err := row.Scan(
		&rule.ID, &rule.Type, &rule.BonusPercentage, &rule.BonusAmount,
		&rule.MinDeposit, &rule.MaxUses, &rule.CurrentUses,
		&rule.StartsAt, &rule.EndsAt, &rule.IsActive, &rule.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan promotion rule: %w", err)
	}
	return rule, nil
}

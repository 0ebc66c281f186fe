package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"bet-settlement/internal/core/domain"
	"bet-settlement/internal/core/ports"
	"bet-settlement/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PromotionEvaluatorImpl implements ports.PromotionEvaluator. Eligibility is
// evaluated read-only; claiming happens through conditional updates so two
// concurrent deposits cannot both take the last use of a capped rule.
type PromotionEvaluatorImpl struct {
	promoRepo  ports.PromotionRepository
	txRepo     ports.TransactionRepository
	ledgerRepo ports.LedgerRepository
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewPromotionEvaluator creates a new PromotionEvaluatorImpl.
func NewPromotionEvaluator(
	promoRepo ports.PromotionRepository,
	txRepo ports.TransactionRepository,
	ledgerRepo ports.LedgerRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *PromotionEvaluatorImpl {
	return &PromotionEvaluatorImpl{
		promoRepo:  promoRepo,
		txRepo:     txRepo,
		ledgerRepo: ledgerRepo,
		transactor: transactor,
		log:        log,
	}
}

var notApplicable = &ports.PromotionOutcome{Applicable: false, BonusAmount: 0}

// Evaluate determines eligibility and computes the bonus without claiming
// anything. With a code it resolves the code's rule; otherwise it selects the
// highest-priority open rule (first_deposit before time_based).
func (s *PromotionEvaluatorImpl) Evaluate(ctx context.Context, userID uuid.UUID, depositAmount int64, promoCode *string) (*ports.PromotionOutcome, error) {
	now := time.Now().UTC()

	if promoCode != nil && *promoCode != "" {
		return s.evaluateCode(ctx, depositAmount, *promoCode, now)
	}

	rules, err := s.promoRepo.ListOpenRules(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("list open rules: %w", err)
	}

	for i := range rules {
		rule := &rules[i]
		if depositAmount < rule.MinDeposit {
			continue
		}
		if rule.Type == domain.PromotionTypeFirstDeposit {
			prior, err := s.txRepo.CountApprovedDeposits(ctx, userID)
			if err != nil {
				return nil, fmt.Errorf("count approved deposits: %w", err)
			}
			// The deposit under evaluation is already APPROVED, so "first
			// deposit" means no other approved deposit exists.
			if prior > 1 {
				continue
			}
		}
		bonus := rule.ComputeBonus(depositAmount)
		if bonus <= 0 {
			continue
		}
		id := rule.ID
		return &ports.PromotionOutcome{Applicable: true, BonusAmount: bonus, PromotionID: &id}, nil
	}

	return notApplicable, nil
}

func (s *PromotionEvaluatorImpl) evaluateCode(ctx context.Context, depositAmount int64, code string, now time.Time) (*ports.PromotionOutcome, error) {
	promoCode, err := s.promoRepo.GetCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("get code: %w", err)
	}
	if promoCode == nil || promoCode.IsUsed {
		return notApplicable, nil
	}

	rule, err := s.promoRepo.GetRule(ctx, promoCode.PromotionID)
	if err != nil {
		return nil, fmt.Errorf("get rule: %w", err)
	}
	if rule == nil || !rule.IsOpen(now) || depositAmount < rule.MinDeposit {
		return notApplicable, nil
	}

	bonus := rule.ComputeBonus(depositAmount)
	if bonus <= 0 {
		return notApplicable, nil
	}
	id := rule.ID
	return &ports.PromotionOutcome{Applicable: true, BonusAmount: bonus, PromotionID: &id}, nil
}

// Apply claims the promotion for an approved deposit and credits the bonus,
// all in one database transaction. Every failure degrades to "not
// applicable": a promotion must never block or reverse the deposit credit.
func (s *PromotionEvaluatorImpl) Apply(ctx context.Context, txn *domain.Transaction) *ports.PromotionOutcome {
	outcome, err := s.Evaluate(ctx, txn.UserID, txn.Amount, txn.PromoCode)
	if err != nil {
		s.log.Warn().Err(err).Str("order_code", txn.ExternalID).Msg("promotion evaluation failed, skipping bonus")
		return notApplicable
	}
	if !outcome.Applicable {
		return notApplicable
	}

	now := time.Now().UTC()

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("order_code", txn.ExternalID).Msg("promotion tx begin failed, skipping bonus")
		return notApplicable
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Quota claim: the conditional increment is the authoritative gate.
	claimed, err := s.promoRepo.ClaimRuleUse(ctx, dbTx, *outcome.PromotionID, now)
	if err != nil || !claimed {
		if err != nil {
			s.log.Warn().Err(err).Str("order_code", txn.ExternalID).Msg("promotion quota claim failed, skipping bonus")
		}
		return notApplicable
	}

	if txn.PromoCode != nil && *txn.PromoCode != "" {
		marked, err := s.promoRepo.MarkCodeUsed(ctx, dbTx, *txn.PromoCode, txn.UserID, now)
		if err != nil || !marked {
			if err != nil {
				s.log.Warn().Err(err).Str("order_code", txn.ExternalID).Msg("promotion code claim failed, skipping bonus")
			}
			return notApplicable
		}
	}

	if _, err := s.ledgerRepo.Credit(ctx, dbTx, &domain.LedgerEntry{
		ID:                     uuid.New(),
		UserID:                 txn.UserID,
		Delta:                  outcome.BonusAmount,
		Reason:                 domain.LedgerReasonPromotionBonus,
		ReferenceTransactionID: txn.InternalID,
		CreatedAt:              now,
	}); err != nil {
		s.log.Warn().Err(err).Str("order_code", txn.ExternalID).Msg("bonus credit failed, skipping bonus")
		return notApplicable
	}

	if err := dbTx.Commit(ctx); err != nil {
		s.log.Warn().Err(err).Str("order_code", txn.ExternalID).Msg("promotion commit failed, skipping bonus")
		return notApplicable
	}

	s.log.Info().
		Str("order_code", txn.ExternalID).
		Str("promotion_id", outcome.PromotionID.String()).
		Int64("bonus", outcome.BonusAmount).
		Msg("promotion bonus applied")

	return outcome
}

// PromotionAdminServiceImpl implements ports.PromotionAdminService.
type PromotionAdminServiceImpl struct {
	promoRepo ports.PromotionRepository
	log       zerolog.Logger
}

// NewPromotionAdminService creates a new PromotionAdminServiceImpl.
func NewPromotionAdminService(promoRepo ports.PromotionRepository, log zerolog.Logger) *PromotionAdminServiceImpl {
	return &PromotionAdminServiceImpl{promoRepo: promoRepo, log: log}
}

// CreateRule validates and persists a promotion rule.
func (s *PromotionAdminServiceImpl) CreateRule(ctx context.Context, req ports.CreateRuleRequest) (*domain.PromotionRule, error) {
	if !req.EndsAt.After(req.StartsAt) {
		return nil, apperror.Validation("ends_at must be after starts_at")
	}
	if req.BonusPercentage == nil && req.BonusAmount == nil {
		return nil, apperror.Validation("either bonus_percentage or bonus_amount is required")
	}

	rule := &domain.PromotionRule{
		ID:              uuid.New(),
		Type:            req.Type,
		BonusPercentage: req.BonusPercentage,
		BonusAmount:     req.BonusAmount,
		MinDeposit:      req.MinDeposit,
		MaxUses:         req.MaxUses,
		StartsAt:        req.StartsAt.UTC(),
		EndsAt:          req.EndsAt.UTC(),
		IsActive:        true,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.promoRepo.CreateRule(ctx, rule); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create rule: %w", err))
	}

	s.log.Info().
		Str("promotion_id", rule.ID.String()).
		Str("type", string(rule.Type)).
		Msg("promotion rule created")

	return rule, nil
}

// MintCodes generates count single-use codes for a code_based rule.
func (s *PromotionAdminServiceImpl) MintCodes(ctx context.Context, promotionID uuid.UUID, count int) ([]domain.PromotionCode, error) {
	if count <= 0 || count > 1000 {
		return nil, apperror.Validation("count must be between 1 and 1000")
	}

	rule, err := s.promoRepo.GetRule(ctx, promotionID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get rule: %w", err))
	}
	if rule == nil {
		return nil, apperror.ErrPromotionNotFound()
	}
	if rule.Type != domain.PromotionTypeCodeBased {
		return nil, apperror.ErrPromotionNotCodeBased()
	}

	codes := make([]domain.PromotionCode, 0, count)
	for i := 0; i < count; i++ {
		codes = append(codes, domain.PromotionCode{
			Code:        generatePromoCode(),
			PromotionID: promotionID,
		})
	}

	if err := s.promoRepo.CreateCodes(ctx, codes); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create codes: %w", err))
	}

	s.log.Info().
		Str("promotion_id", promotionID.String()).
		Int("count", count).
		Msg("promotion codes minted")

	return codes, nil
}

// generatePromoCode returns an uppercase 12-hex-char voucher code.
func generatePromoCode() string {
	buf := make([]byte, 6)
	_, _ = rand.Read(buf)
	return strings.ToUpper(hex.EncodeToString(buf))
}

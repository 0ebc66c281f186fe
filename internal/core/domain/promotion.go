package domain

import (
	"time"

	"github.com/google/uuid"
)

// PromotionType represents the trigger class of a promotion rule.
// Selection priority for implicit eligibility is first_deposit over
// time_based; code_based rules are only reachable through a code.
type PromotionType string

const (
	PromotionTypeFirstDeposit PromotionType = "first_deposit"
	PromotionTypeTimeBased    PromotionType = "time_based"
	PromotionTypeCodeBased    PromotionType = "code_based"
)

// PromotionRule defines eligibility and bonus computation for deposits.
type PromotionRule struct {
	ID              uuid.UUID     `json:"id"`
	Type            PromotionType `json:"type"`
	BonusPercentage *int64        `json:"bonus_percentage,omitempty"` // Takes precedence over BonusAmount
	BonusAmount     *int64        `json:"bonus_amount,omitempty"`     // Flat bonus, smallest currency unit
	MinDeposit      int64         `json:"min_deposit"`
	MaxUses         *int64        `json:"max_uses,omitempty"` // nil = unlimited
	CurrentUses     int64         `json:"current_uses"`
	StartsAt        time.Time     `json:"starts_at"`
	EndsAt          time.Time     `json:"ends_at"`
	IsActive        bool          `json:"is_active"`
	CreatedAt       time.Time     `json:"created_at"`
}

// IsOpen reports whether the rule can still be claimed at the given time.
// The quota check here is advisory; the authoritative check is the
// conditional increment at the storage layer.
func (r *PromotionRule) IsOpen(now time.Time) bool {
	if !r.IsActive {
		return false
	}
	if now.Before(r.StartsAt) || now.After(r.EndsAt) {
		return false
	}
	if r.MaxUses != nil && r.CurrentUses >= *r.MaxUses {
		return false
	}
	return true
}

// ComputeBonus returns the bonus for a deposit amount under this rule.
// Percentage wins when both are present; the result is floored.
func (r *PromotionRule) ComputeBonus(depositAmount int64) int64 {
	if r.BonusPercentage != nil {
		return depositAmount * *r.BonusPercentage / 100
	}
	if r.BonusAmount != nil {
		return *r.BonusAmount
	}
	return 0
}

// PromotionCode is a single-use voucher bound to a code_based rule.
// A code transitions is_used false->true exactly once.
type PromotionCode struct {
	Code        string     `json:"code"`
	PromotionID uuid.UUID  `json:"promotion_id"`
	IsUsed      bool       `json:"is_used"`
	UsedBy      *uuid.UUID `json:"used_by,omitempty"`
	UsedAt      *time.Time `json:"used_at,omitempty"`
}

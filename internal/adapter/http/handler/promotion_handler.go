package handler

import (
	"time"

	"bet-settlement/internal/adapter/http/dto"
	"bet-settlement/internal/core/domain"
	"bet-settlement/internal/core/ports"
	"bet-settlement/pkg/apperror"
	"bet-settlement/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PromotionHandler handles promotion rule and code administration.
type PromotionHandler struct {
	promoSvc ports.PromotionAdminService
}

// NewPromotionHandler creates a new PromotionHandler.
func NewPromotionHandler(promoSvc ports.PromotionAdminService) *PromotionHandler {
	return &PromotionHandler{promoSvc: promoSvc}
}

// CreateRule handles POST /api/v1/promotions.
func (h *PromotionHandler) CreateRule(c *gin.Context) {
	var req dto.CreatePromotionRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	rule, err := h.promoSvc.CreateRule(c.Request.Context(), ports.CreateRuleRequest{
		Type:            domain.PromotionType(req.Type),
		BonusPercentage: req.BonusPercentage,
		BonusAmount:     req.BonusAmount,
		MinDeposit:      req.MinDeposit,
		MaxUses:         req.MaxUses,
		StartsAt:        time.Unix(req.StartsAt, 0).UTC(),
		EndsAt:          time.Unix(req.EndsAt, 0).UTC(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toPromotionRuleResponse(rule))
}

// MintCodes handles POST /api/v1/promotions/:id/codes.
func (h *PromotionHandler) MintCodes(c *gin.Context) {
	promotionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid promotion id"))
		return
	}

	var req dto.MintCodesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	codes, err := h.promoSvc.MintCodes(c.Request.Context(), promotionID, req.Count)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]string, 0, len(codes))
	for _, code := range codes {
		out = append(out, code.Code)
	}

	response.Created(c, dto.MintCodesResponse{
		PromotionID: promotionID.String(),
		Codes:       out,
	})
}

// toPromotionRuleResponse converts domain.PromotionRule to DTO.
func toPromotionRuleResponse(rule *domain.PromotionRule) dto.PromotionRuleResponse {
	return dto.PromotionRuleResponse{
		ID:              rule.ID.String(),
		Type:            string(rule.Type),
		BonusPercentage: rule.BonusPercentage,
		BonusAmount:     rule.BonusAmount,
		MinDeposit:      rule.MinDeposit,
		MaxUses:         rule.MaxUses,
		CurrentUses:     rule.CurrentUses,
		StartsAt:        rule.StartsAt.Format("2006-01-02T15:04:05Z07:00"),
		EndsAt:          rule.EndsAt.Format("2006-01-02T15:04:05Z07:00"),
		IsActive:        rule.IsActive,
	}
}

package handler

import (
	"bytes"
	"context"
	"io"
	"time"

	"bet-settlement/internal/adapter/http/dto"
	"bet-settlement/internal/core/domain"
	"bet-settlement/internal/core/ports"
	"bet-settlement/pkg/apperror"
	"bet-settlement/pkg/response"

	"github.com/gin-gonic/gin"
)

// WebhookHandler terminates the gateway trust boundary: it verifies the raw
// body signature before any parsing and hands the verified callback to the
// settlement coordinator.
type WebhookHandler struct {
	settlementSvc ports.SettlementService
	sigSvc        ports.SignatureVerifier
	secSvc        ports.SecurityEventService
	secret        string
	header        string
	timeout       time.Duration
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(
	settlementSvc ports.SettlementService,
	sigSvc ports.SignatureVerifier,
	secSvc ports.SecurityEventService,
	secret, header string,
	timeout time.Duration,
) *WebhookHandler {
	return &WebhookHandler{
		settlementSvc: settlementSvc,
		sigSvc:        sigSvc,
		secSvc:        secSvc,
		secret:        secret,
		header:        header,
		timeout:       timeout,
	}
}

// HandleCallback handles POST /webhooks/payment.
func (h *WebhookHandler) HandleCallback(c *gin.Context) {
	signature := c.GetHeader(h.header)
	if signature == "" {
		response.WebhookError(c, apperror.ErrMissingSignature())
		return
	}

	bodyBytes, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.WebhookError(c, apperror.Validation("cannot read request body"))
		return
	}

	// Verify against the raw bytes before any JSON parsing touches them.
	if !h.sigSvc.Verify(h.secret, bodyBytes, signature) {
		h.secSvc.Record(c.Request.Context(), domain.SecurityEventInvalidSignature, map[string]any{
			"body_size": len(bodyBytes),
		}, c.ClientIP())
		response.WebhookError(c, apperror.ErrInvalidSignature())
		return
	}

	c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	var req dto.GatewayCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WebhookError(c, apperror.Validation(err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	_, err = h.settlementSvc.ProcessCallback(ctx, ports.CallbackRequest{
		Code:        req.Code,
		Description: req.Data.Description,
		OrderCode:   req.Data.OrderCode,
		Amount:      req.Data.Amount,
		Status:      req.Data.Status,
		ClientIP:    c.ClientIP(),
	})
	if err != nil {
		response.WebhookError(c, err)
		return
	}

	response.WebhookOK(c)
}

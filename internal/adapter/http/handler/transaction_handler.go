package handler

import (
	"math"
	"strconv"

	"bet-settlement/internal/adapter/http/dto"
	"bet-settlement/internal/core/domain"
	"bet-settlement/internal/core/ports"
	"bet-settlement/pkg/apperror"
	"bet-settlement/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionHandler handles transaction intake and lookup endpoints.
type TransactionHandler struct {
	txnSvc       ports.TransactionService
	reportingSvc ports.ReportingService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(txnSvc ports.TransactionService, reportingSvc ports.ReportingService) *TransactionHandler {
	return &TransactionHandler{txnSvc: txnSvc, reportingSvc: reportingSvc}
}

// Initiate handles POST /api/v1/transactions.
func (h *TransactionHandler) Initiate(c *gin.Context) {
	var req dto.InitiateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid user_id"))
		return
	}

	txn, err := h.txnSvc.Initiate(c.Request.Context(), ports.InitiateRequest{
		ExternalID: req.ExternalID,
		UserID:     userID,
		Amount:     req.Amount,
		Kind:       domain.TransactionKind(req.Kind),
		PromoCode:  req.PromoCode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toTransactionResponse(txn))
}

// Get handles GET /api/v1/transactions/:externalID.
func (h *TransactionHandler) Get(c *gin.Context) {
	externalID := c.Param("externalID")

	txn, err := h.reportingSvc.GetTransaction(c.Request.Context(), externalID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toTransactionResponse(txn))
}

// List handles GET /api/v1/transactions.
func (h *TransactionHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	params := ports.TransactionListParams{
		Page:     page,
		PageSize: pageSize,
	}

	if u := c.Query("user_id"); u != "" {
		userID, err := uuid.Parse(u)
		if err != nil {
			response.Error(c, apperror.Validation("invalid user_id"))
			return
		}
		params.UserID = &userID
	}
	if s := c.Query("status"); s != "" {
		status := domain.TransactionStatus(s)
		params.Status = &status
	}
	if k := c.Query("kind"); k != "" {
		kind := domain.TransactionKind(k)
		params.Kind = &kind
	}
	if f := c.Query("from"); f != "" {
		if v, err := strconv.ParseInt(f, 10, 64); err == nil {
			params.From = &v
		}
	}
	if t := c.Query("to"); t != "" {
		if v, err := strconv.ParseInt(t, 10, 64); err == nil {
			params.To = &v
		}
	}

	txns, total, err := h.reportingSvc.ListTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		items = append(items, toTransactionResponse(&txns[i]))
	}

	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))

	response.OK(c, dto.TransactionListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

// toTransactionResponse converts domain.Transaction to DTO.
func toTransactionResponse(txn *domain.Transaction) dto.TransactionResponse {
	resp := dto.TransactionResponse{
		InternalID: txn.InternalID.String(),
		ExternalID: txn.ExternalID,
		UserID:     txn.UserID.String(),
		Amount:     txn.Amount,
		Kind:       string(txn.Kind),
		Status:     string(txn.Status),
		PromoCode:  txn.PromoCode,
		AdminNote:  txn.AdminNote,
		CreatedAt:  txn.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if txn.SettledAt != nil {
		s := txn.SettledAt.Format("2006-01-02T15:04:05Z07:00")
		resp.SettledAt = &s
	}
	return resp
}

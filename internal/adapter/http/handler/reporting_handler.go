package handler

import (
	"strconv"

	"bet-settlement/internal/adapter/http/dto"
	"bet-settlement/internal/core/ports"
	"bet-settlement/pkg/apperror"
	"bet-settlement/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportingHandler serves settlement stats, balances and ledger history for
// the admin/notification layer.
type ReportingHandler struct {
	reportingSvc ports.ReportingService
}

// NewReportingHandler creates a new ReportingHandler.
func NewReportingHandler(reportingSvc ports.ReportingService) *ReportingHandler {
	return &ReportingHandler{reportingSvc: reportingSvc}
}

// GetStats handles GET /api/v1/stats.
func (h *ReportingHandler) GetStats(c *gin.Context) {
	period := c.DefaultQuery("period", "all")
	stats, err := h.reportingSvc.GetStats(c.Request.Context(), period)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.SettlementStatsResponse{
		TotalTransactions: stats.TotalTransactions,
		Pending:           stats.Pending,
		Approved:          stats.Approved,
		Failed:            stats.Failed,
		Expired:           stats.Expired,
		DepositVolume:     stats.DepositVolume,
		WithdrawalVolume:  stats.WithdrawalVolume,
	})
}

// GetBalance handles GET /api/v1/users/:userID/balance.
func (h *ReportingHandler) GetBalance(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid user id"))
		return
	}

	balance, err := h.reportingSvc.GetBalance(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{
		UserID:    balance.UserID.String(),
		Balance:   balance.Balance,
		UpdatedAt: balance.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// ListLedgerEntries handles GET /api/v1/users/:userID/ledger.
func (h *ReportingHandler) ListLedgerEntries(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid user id"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.reportingSvc.ListLedgerEntries(c.Request.Context(), userID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.LedgerEntryResponse{
			ID:                     e.ID.String(),
			Delta:                  e.Delta,
			Reason:                 string(e.Reason),
			ReferenceTransactionID: e.ReferenceTransactionID.String(),
			CreatedAt:              e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	response.OK(c, items)
}

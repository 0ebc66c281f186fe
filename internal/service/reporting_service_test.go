package service

import (
	"context"
	"testing"
	"time"

	"bet-settlement/internal/core/domain"
	"bet-settlement/internal/core/ports"
	"bet-settlement/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type reportingTestDeps struct {
	svc        ports.ReportingService
	txRepo     *mocks.MockTransactionRepository
	ledgerRepo *mocks.MockLedgerRepository
	ctrl       *gomock.Controller
}

func setupReportingService(t *testing.T) *reportingTestDeps {
	ctrl := gomock.NewController(t)
	d := &reportingTestDeps{
		txRepo:     mocks.NewMockTransactionRepository(ctrl),
		ledgerRepo: mocks.NewMockLedgerRepository(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewReportingService(d.txRepo, d.ledgerRepo)
	return d
}

func TestReportingService_GetTransaction(t *testing.T) {
	d := setupReportingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	txn := &domain.Transaction{
		InternalID: uuid.New(),
		ExternalID: "TX-1001",
		Status:     domain.TransactionStatusApproved,
	}

	d.txRepo.EXPECT().GetByExternalID(ctx, "TX-1001").Return(txn, nil)

	got, err := d.svc.GetTransaction(ctx, "TX-1001")
	require.NoError(t, err)
	assert.Equal(t, txn, got)
}

func TestReportingService_GetTransaction_NotFound(t *testing.T) {
	d := setupReportingService(t)
	defer d.ctrl.Finish()

	d.txRepo.EXPECT().GetByExternalID(gomock.Any(), "GHOST").Return(nil, nil)

	_, err := d.svc.GetTransaction(context.Background(), "GHOST")
	assertAppError(t, err, "RCN_001")
}

func TestReportingService_GetStats_Periods(t *testing.T) {
	tests := []struct {
		period  string
		wantAgo time.Duration
	}{
		{"day", 24 * time.Hour},
		{"week", 7 * 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			d := setupReportingService(t)
			defer d.ctrl.Finish()

			d.txRepo.EXPECT().
				GetStats(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, periodStart *int64) (*ports.SettlementStats, error) {
					require.NotNil(t, periodStart)
					want := time.Now().Add(-tt.wantAgo).Unix()
					assert.InDelta(t, want, *periodStart, 5)
					return &ports.SettlementStats{}, nil
				})

			_, err := d.svc.GetStats(context.Background(), tt.period)
			require.NoError(t, err)
		})
	}
}

func TestReportingService_GetStats_All(t *testing.T) {
	d := setupReportingService(t)
	defer d.ctrl.Finish()

	d.txRepo.EXPECT().
		GetStats(gomock.Any(), (*int64)(nil)).
		Return(&ports.SettlementStats{TotalTransactions: 10}, nil)

	stats, err := d.svc.GetStats(context.Background(), "all")
	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.TotalTransactions)
}

func TestReportingService_GetStats_InvalidPeriod(t *testing.T) {
	d := setupReportingService(t)
	defer d.ctrl.Finish()

	_, err := d.svc.GetStats(context.Background(), "year")
	assertAppError(t, err, "VAL_001")
}

func TestReportingService_GetBalance_DefaultsToZero(t *testing.T) {
	d := setupReportingService(t)
	defer d.ctrl.Finish()

	userID := uuid.New()
	d.ledgerRepo.EXPECT().GetBalance(gomock.Any(), userID).Return(nil, nil)

	balance, err := d.svc.GetBalance(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, userID, balance.UserID)
	assert.Equal(t, int64(0), balance.Balance)
}

func TestReportingService_ListLedgerEntries_ClampsLimit(t *testing.T) {
	d := setupReportingService(t)
	defer d.ctrl.Finish()

	userID := uuid.New()
	d.ledgerRepo.EXPECT().ListEntries(gomock.Any(), userID, 50).Return(nil, nil).Times(2)
	d.ledgerRepo.EXPECT().ListEntries(gomock.Any(), userID, 100).Return(nil, nil)

	_, err := d.svc.ListLedgerEntries(context.Background(), userID, 0)
	require.NoError(t, err)
	_, err = d.svc.ListLedgerEntries(context.Background(), userID, 9999)
	require.NoError(t, err)
	_, err = d.svc.ListLedgerEntries(context.Background(), userID, 100)
	require.NoError(t, err)
}

func TestReportingService_ListTransactions(t *testing.T) {
	d := setupReportingService(t)
	defer d.ctrl.Finish()

	params := ports.TransactionListParams{Page: 1, PageSize: 20}
	d.txRepo.EXPECT().List(gomock.Any(), params).Return([]domain.Transaction{{ExternalID: "TX-1"}}, int64(1), nil)

	txns, total, err := d.svc.ListTransactions(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, txns, 1)
}

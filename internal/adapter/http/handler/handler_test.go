package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bet-settlement/internal/core/domain"
	"bet-settlement/internal/core/ports"
	"bet-settlement/internal/core/ports/mocks"
	"bet-settlement/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Webhook Handler Tests ---

type webhookTestDeps struct {
	handler       *WebhookHandler
	settlementSvc *mocks.MockSettlementService
	sigSvc        *mocks.MockSignatureVerifier
	secSvc        *mocks.MockSecurityEventService
	ctrl          *gomock.Controller
}

func setupWebhookHandler(t *testing.T) *webhookTestDeps {
	ctrl := gomock.NewController(t)
	d := &webhookTestDeps{
		settlementSvc: mocks.NewMockSettlementService(ctrl),
		sigSvc:        mocks.NewMockSignatureVerifier(ctrl),
		secSvc:        mocks.NewMockSecurityEventService(ctrl),
		ctrl:          ctrl,
	}
	d.handler = NewWebhookHandler(d.settlementSvc, d.sigSvc, d.secSvc, "secret", "X-Signature", 5*time.Second)
	return d
}

func callbackBody(t *testing.T, orderCode string, amount int64) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"code": "00",
		"desc": "ok",
		"data": map[string]any{
			"orderCode": orderCode,
			"amount":    amount,
			"status":    "success",
		},
	})
	require.NoError(t, err)
	return body
}

func webhookRequest(body []byte, signature string) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/webhooks/payment", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	if signature != "" {
		c.Request.Header.Set("X-Signature", signature)
	}
	return w, c
}

func TestHandleCallback_Success(t *testing.T) {
	d := setupWebhookHandler(t)
	defer d.ctrl.Finish()

	body := callbackBody(t, "TX1", 100000)

	d.sigSvc.EXPECT().Verify("secret", body, "valid-sig").Return(true)
	d.settlementSvc.EXPECT().
		ProcessCallback(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, req ports.CallbackRequest) (*ports.SettlementResult, error) {
			assert.Equal(t, "00", req.Code)
			assert.Equal(t, "TX1", req.OrderCode)
			assert.Equal(t, int64(100000), req.Amount)
			assert.Equal(t, "success", req.Status)
			return &ports.SettlementResult{Transaction: &domain.Transaction{ExternalID: "TX1"}}, nil
		})

	w, c := webhookRequest(body, "valid-sig")
	d.handler.HandleCallback(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var ack map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ack))
	assert.Equal(t, true, ack["success"])
}

func TestHandleCallback_MissingSignature(t *testing.T) {
	d := setupWebhookHandler(t)
	defer d.ctrl.Finish()

	w, c := webhookRequest(callbackBody(t, "TX1", 100000), "")
	d.handler.HandleCallback(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleCallback_InvalidSignature(t *testing.T) {
	d := setupWebhookHandler(t)
	defer d.ctrl.Finish()

	body := callbackBody(t, "TX1", 100000)
	d.sigSvc.EXPECT().Verify("secret", body, "bad-sig").Return(false)
	d.secSvc.EXPECT().Record(gomock.Any(), domain.SecurityEventInvalidSignature, gomock.Any(), gomock.Any())

	w, c := webhookRequest(body, "bad-sig")
	d.handler.HandleCallback(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var ack map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ack))
	assert.Equal(t, false, ack["success"])
}

func TestHandleCallback_MalformedBody(t *testing.T) {
	d := setupWebhookHandler(t)
	defer d.ctrl.Finish()

	body := []byte(`{"code":"00","data":{"orderCode":""}}`)
	d.sigSvc.EXPECT().Verify("secret", body, "valid-sig").Return(true)

	w, c := webhookRequest(body, "valid-sig")
	d.handler.HandleCallback(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCallback_ServiceErrorSignalsRetry(t *testing.T) {
	d := setupWebhookHandler(t)
	defer d.ctrl.Finish()

	body := callbackBody(t, "GHOST", 100000)
	d.sigSvc.EXPECT().Verify("secret", body, "valid-sig").Return(true)
	d.settlementSvc.EXPECT().
		ProcessCallback(gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrTransactionNotFound("GHOST"))

	w, c := webhookRequest(body, "valid-sig")
	d.handler.HandleCallback(c)

	// 5xx => the gateway redelivers.
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// --- Transaction Handler Tests ---

func TestInitiate_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txnSvc := mocks.NewMockTransactionService(ctrl)
	h := NewTransactionHandler(txnSvc, nil)

	userID := uuid.New()
	txnSvc.EXPECT().
		Initiate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, req ports.InitiateRequest) (*domain.Transaction, error) {
			assert.Equal(t, "TX-1001", req.ExternalID)
			assert.Equal(t, userID, req.UserID)
			assert.Equal(t, domain.TransactionKindDeposit, req.Kind)
			return &domain.Transaction{
				InternalID: uuid.New(),
				ExternalID: req.ExternalID,
				UserID:     req.UserID,
				Amount:     req.Amount,
				Kind:       req.Kind,
				Status:     domain.TransactionStatusPending,
				CreatedAt:  time.Now().UTC(),
			}, nil
		})

	body, _ := json.Marshal(map[string]any{
		"external_id": "TX-1001",
		"user_id":     userID.String(),
		"amount":      100000,
		"kind":        "DEPOSIT",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Initiate(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "TX-1001", data["external_id"])
	assert.Equal(t, "PENDING", data["status"])
}

func TestInitiate_RejectsUnsafeExternalID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txnSvc := mocks.NewMockTransactionService(ctrl)
	h := NewTransactionHandler(txnSvc, nil)

	body, _ := json.Marshal(map[string]any{
		"external_id": "TX 1001; DROP TABLE",
		"user_id":     uuid.New().String(),
		"amount":      100000,
		"kind":        "DEPOSIT",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Initiate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInitiate_InvalidKind(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txnSvc := mocks.NewMockTransactionService(ctrl)
	h := NewTransactionHandler(txnSvc, nil)

	body, _ := json.Marshal(map[string]any{
		"external_id": "TX-1001",
		"user_id":     uuid.New().String(),
		"amount":      100000,
		"kind":        "TRANSFER",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Initiate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Reporting Handler Tests ---

func TestGetBalance_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reportingSvc := mocks.NewMockReportingService(ctrl)
	h := NewReportingHandler(reportingSvc)

	userID := uuid.New()
	reportingSvc.EXPECT().
		GetBalance(gomock.Any(), userID).
		Return(&domain.Balance{UserID: userID, Balance: 150000, UpdatedAt: time.Now().UTC()}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/users/"+userID.String()+"/balance", nil)
	c.Params = gin.Params{{Key: "userID", Value: userID.String()}}

	h.GetBalance(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(150000), data["balance"])
}

func TestGetBalance_InvalidUserID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewReportingHandler(mocks.NewMockReportingService(ctrl))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/users/not-a-uuid/balance", nil)
	c.Params = gin.Params{{Key: "userID", Value: "not-a-uuid"}}

	h.GetBalance(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetStats_InvalidPeriod(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reportingSvc := mocks.NewMockReportingService(ctrl)
	h := NewReportingHandler(reportingSvc)

	reportingSvc.EXPECT().
		GetStats(gomock.Any(), "year").
		Return(nil, apperror.Validation("invalid period: must be day, week, month, or all"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/stats?period=year", nil)

	h.GetStats(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Promotion Handler Tests ---

func TestMintCodes_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	promoSvc := mocks.NewMockPromotionAdminService(ctrl)
	h := NewPromotionHandler(promoSvc)

	promotionID := uuid.New()
	promoSvc.EXPECT().
		MintCodes(gomock.Any(), promotionID, 3).
		Return([]domain.PromotionCode{
			{Code: "AAAA11112222", PromotionID: promotionID},
			{Code: "BBBB33334444", PromotionID: promotionID},
			{Code: "CCCC55556666", PromotionID: promotionID},
		}, nil)

	body, _ := json.Marshal(map[string]any{"count": 3})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/promotions/"+promotionID.String()+"/codes", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: promotionID.String()}}

	h.MintCodes(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Len(t, data["codes"], 3)
}

func TestMintCodes_NotCodeBased(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	promoSvc := mocks.NewMockPromotionAdminService(ctrl)
	h := NewPromotionHandler(promoSvc)

	promotionID := uuid.New()
	promoSvc.EXPECT().
		MintCodes(gomock.Any(), promotionID, 3).
		Return(nil, apperror.ErrPromotionNotCodeBased())

	body, _ := json.Marshal(map[string]any{"count": 3})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: promotionID.String()}}

	h.MintCodes(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

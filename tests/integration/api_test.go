package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpHandler "bet-settlement/internal/adapter/http/handler"
	redisStorage "bet-settlement/internal/adapter/storage/redis"
	"bet-settlement/internal/core/domain"
	"bet-settlement/internal/core/ports"
	"bet-settlement/internal/service"
	"bet-settlement/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testWebhookSecret   = "test-webhook-secret-32-bytes!!!!"
	testSignatureHeader = "X-Signature"
)

// testApp builds the full application stack on in-memory storage: miniredis
// behind the real Redis stores, map-backed postgres repos, and the real HTTP
// layer, middleware, handlers, and services end-to-end.

type testApp struct {
	server       *httptest.Server
	redis        *miniredis.Miniredis
	txRepo       *inMemoryTransactionRepo
	promoRepo    *inMemoryPromotionRepo
	ledgerRepo   *inMemoryLedgerRepo
	securityRepo *inMemorySecurityEventRepo
	sigSvc       ports.SignatureVerifier
	token        string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	callbackCache := redisStorage.NewCallbackCache(rdb)

	// In-memory repos
	txRepo := newInMemoryTransactionRepo()
	promoRepo := newInMemoryPromotionRepo()
	ledgerRepo := newInMemoryLedgerRepo()
	securityRepo := newInMemorySecurityEventRepo()
	transactor := newInMemoryTransactor()

	// Real services
	log := logger.New("debug", false)
	sigSvc := service.NewHMACSignatureVerifier()
	tokenSvc := service.NewJWTTokenService("test-jwt-secret-key-32bytes!!", 24*time.Hour, "test-issuer")
	securitySvc := service.NewSecurityEventService(securityRepo, log)

	evaluator := service.NewPromotionEvaluator(promoRepo, txRepo, ledgerRepo, transactor, log)
	settlementSvc := service.NewSettlementService(
		txRepo, ledgerRepo, evaluator, callbackCache, transactor, securitySvc, 24*time.Hour, log,
	)
	transactionSvc := service.NewTransactionService(txRepo, ledgerRepo, transactor, log)
	reportingSvc := service.NewReportingService(txRepo, ledgerRepo)
	promotionSvc := service.NewPromotionAdminService(promoRepo, log)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		SettlementSvc:   settlementSvc,
		TransactionSvc:  transactionSvc,
		ReportingSvc:    reportingSvc,
		PromotionSvc:    promotionSvc,
		SecuritySvc:     securitySvc,
		SigSvc:          sigSvc,
		TokenSvc:        tokenSvc,
		WebhookSecret:   testWebhookSecret,
		SignatureHeader: testSignatureHeader,
		CallbackTimeout: 10 * time.Second,
		Logger:          log,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	token, _, err := tokenSvc.Generate("platform-backend")
	require.NoError(t, err)

	return &testApp{
		server:       server,
		redis:        mr,
		txRepo:       txRepo,
		promoRepo:    promoRepo,
		ledgerRepo:   ledgerRepo,
		securityRepo: securityRepo,
		sigSvc:       sigSvc,
		token:        token,
	}
}

// postJSON sends an authenticated internal-API request.
func (a *testApp) postJSON(t *testing.T, path string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, a.server.URL+path, bytes.NewReader(buf))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func (a *testApp) getJSON(t *testing.T, path string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, a.server.URL+path, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+a.token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

// deliverCallback signs and posts a gateway callback for orderCode.
func (a *testApp) deliverCallback(t *testing.T, orderCode string, amount int64, success bool) *http.Response {
	t.Helper()
	status, code := "success", "00"
	if !success {
		status, code = "failed", "97"
	}
	body, err := json.Marshal(map[string]any{
		"code": code,
		"desc": "settlement result",
		"data": map[string]any{
			"orderCode":   orderCode,
			"amount":      amount,
			"description": "gateway settlement",
			"status":      status,
		},
	})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, a.server.URL+"/webhooks/payment", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(testSignatureHeader, a.sigSvc.Sign(testWebhookSecret, body))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

// initiate creates a PENDING transaction through the internal API and
// returns the external ID it was created with.
func (a *testApp) initiate(t *testing.T, externalID string, userID uuid.UUID, amount int64, kind string, promoCode *string) {
	t.Helper()
	body := map[string]any{
		"external_id": externalID,
		"user_id":     userID.String(),
		"amount":      amount,
		"kind":        kind,
	}
	if promoCode != nil {
		body["promo_code"] = *promoCode
	}
	resp := a.postJSON(t, "/api/v1/transactions", body)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func (a *testApp) balance(t *testing.T, userID uuid.UUID) int64 {
	t.Helper()
	resp := a.getJSON(t, "/api/v1/users/"+userID.String()+"/balance")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var envelope struct {
		Data struct {
			Balance int64 `json:"balance"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Data.Balance
}

// --- Integration Tests ---

func TestIntegration_HealthCheck(t *testing.T) {
	app := newTestApp(t)

	resp, err := http.Get(app.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestIntegration_DepositSettlement(t *testing.T) {
	app := newTestApp(t)
	userID := uuid.New()

	app.initiate(t, "TX1", userID, 100000, "DEPOSIT", nil)

	resp := app.deliverCallback(t, "TX1", 100000, true)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	txn, err := app.txRepo.GetByExternalID(t.Context(), "TX1")
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusApproved, txn.Status)
	require.NotNil(t, txn.SettledAt)

	assert.Equal(t, int64(100000), app.balance(t, userID))
}

func TestIntegration_CallbackReplayCreditsOnce(t *testing.T) {
	app := newTestApp(t)
	userID := uuid.New()

	app.initiate(t, "TX1", userID, 100000, "DEPOSIT", nil)

	for i := 0; i < 3; i++ {
		resp := app.deliverCallback(t, "TX1", 100000, true)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, "delivery %d", i+1)
	}

	assert.Equal(t, int64(100000), app.balance(t, userID))
}

func TestIntegration_UnknownOrderCode(t *testing.T) {
	app := newTestApp(t)

	resp := app.deliverCallback(t, "GHOST-999", 100000, true)
	defer resp.Body.Close()

	// 5xx so the gateway retries: the transaction row may simply not have
	// committed yet.
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var ack map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ack))
	assert.Equal(t, false, ack["success"])
}

func TestIntegration_InvalidSignatureRejected(t *testing.T) {
	app := newTestApp(t)
	userID := uuid.New()
	app.initiate(t, "TX1", userID, 100000, "DEPOSIT", nil)

	body := []byte(`{"code":"00","desc":"x","data":{"orderCode":"TX1","amount":100000,"status":"success"}}`)
	req, err := http.NewRequest(http.MethodPost, app.server.URL+"/webhooks/payment", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(testSignatureHeader, "deadbeef")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	txn, err := app.txRepo.GetByExternalID(t.Context(), "TX1")
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusPending, txn.Status)

	// The recorder is fire-and-forget; give it a beat.
	assert.Eventually(t, func() bool {
		return app.securityRepo.count(domain.SecurityEventInvalidSignature) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestIntegration_MissingSignatureRejected(t *testing.T) {
	app := newTestApp(t)

	body := []byte(`{"code":"00","data":{"orderCode":"TX1","amount":1,"status":"success"}}`)
	resp, err := http.Post(app.server.URL+"/webhooks/payment", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIntegration_AmountMismatchRejected(t *testing.T) {
	app := newTestApp(t)
	userID := uuid.New()
	app.initiate(t, "TX1", userID, 100000, "DEPOSIT", nil)

	resp := app.deliverCallback(t, "TX1", 999999, true)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	txn, err := app.txRepo.GetByExternalID(t.Context(), "TX1")
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusPending, txn.Status)
	assert.Equal(t, int64(0), app.balance(t, userID))
}

func TestIntegration_FailedCallbackMarksFailed(t *testing.T) {
	app := newTestApp(t)
	userID := uuid.New()
	app.initiate(t, "TX1", userID, 100000, "DEPOSIT", nil)

	resp := app.deliverCallback(t, "TX1", 100000, false)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	txn, err := app.txRepo.GetByExternalID(t.Context(), "TX1")
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusFailed, txn.Status)
	assert.Equal(t, int64(0), app.balance(t, userID))
}

func TestIntegration_PromotionCodeFlow(t *testing.T) {
	app := newTestApp(t)
	userID := uuid.New()

	// Create a code_based 10% rule through the admin API.
	now := time.Now().UTC()
	resp := app.postJSON(t, "/api/v1/promotions", map[string]any{
		"type":             "code_based",
		"bonus_percentage": 10,
		"min_deposit":      50000,
		"starts_at":        now.Add(-time.Hour).Unix(),
		"ends_at":          now.Add(24 * time.Hour).Unix(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var ruleEnvelope struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ruleEnvelope))
	resp.Body.Close()

	// Mint one code.
	resp = app.postJSON(t, fmt.Sprintf("/api/v1/promotions/%s/codes", ruleEnvelope.Data.ID), map[string]any{"count": 1})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var codesEnvelope struct {
		Data struct {
			Codes []string `json:"codes"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&codesEnvelope))
	resp.Body.Close()
	require.Len(t, codesEnvelope.Data.Codes, 1)
	code := codesEnvelope.Data.Codes[0]

	// Deposit with the code attached: 200000 + 10% bonus.
	app.initiate(t, "TX-PROMO", userID, 200000, "DEPOSIT", &code)
	cb := app.deliverCallback(t, "TX-PROMO", 200000, true)
	cb.Body.Close()
	require.Equal(t, http.StatusOK, cb.StatusCode)

	assert.Equal(t, int64(220000), app.balance(t, userID))

	stored, err := app.promoRepo.GetCode(t.Context(), code)
	require.NoError(t, err)
	assert.True(t, stored.IsUsed)
	assert.Equal(t, userID, *stored.UsedBy)

	// Replay must not re-apply the bonus either.
	cb = app.deliverCallback(t, "TX-PROMO", 200000, true)
	cb.Body.Close()
	assert.Equal(t, int64(220000), app.balance(t, userID))
}

func TestIntegration_WithdrawalFlow(t *testing.T) {
	app := newTestApp(t)
	userID := uuid.New()

	// No funds yet: withdrawal intake is rejected outright.
	resp := app.postJSON(t, "/api/v1/transactions", map[string]any{
		"external_id": "WD1",
		"user_id":     userID.String(),
		"amount":      50000,
		"kind":        "WITHDRAWAL",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)

	// Fund the account, then withdraw.
	app.initiate(t, "TX1", userID, 100000, "DEPOSIT", nil)
	cb := app.deliverCallback(t, "TX1", 100000, true)
	cb.Body.Close()
	require.Equal(t, http.StatusOK, cb.StatusCode)

	app.initiate(t, "WD2", userID, 30000, "WITHDRAWAL", nil)
	assert.Equal(t, int64(70000), app.balance(t, userID))

	// Gateway confirms the payout.
	cb = app.deliverCallback(t, "WD2", 30000, true)
	cb.Body.Close()
	require.Equal(t, http.StatusOK, cb.StatusCode)

	txn, err := app.txRepo.GetByExternalID(t.Context(), "WD2")
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusApproved, txn.Status)
	// Balance was already withheld at intake; settlement adds nothing.
	assert.Equal(t, int64(70000), app.balance(t, userID))
}

func TestIntegration_StatsAndListing(t *testing.T) {
	app := newTestApp(t)
	userID := uuid.New()

	app.initiate(t, "TX1", userID, 100000, "DEPOSIT", nil)
	app.initiate(t, "TX2", userID, 40000, "DEPOSIT", nil)
	cb := app.deliverCallback(t, "TX1", 100000, true)
	cb.Body.Close()
	cb = app.deliverCallback(t, "TX2", 40000, false)
	cb.Body.Close()

	resp := app.getJSON(t, "/api/v1/stats?period=all")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var statsEnvelope struct {
		Data struct {
			TotalTransactions int64 `json:"total_transactions"`
			Approved          int64 `json:"approved"`
			Failed            int64 `json:"failed"`
			DepositVolume     int64 `json:"deposit_volume"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&statsEnvelope))
	assert.Equal(t, int64(2), statsEnvelope.Data.TotalTransactions)
	assert.Equal(t, int64(1), statsEnvelope.Data.Approved)
	assert.Equal(t, int64(1), statsEnvelope.Data.Failed)
	assert.Equal(t, int64(100000), statsEnvelope.Data.DepositVolume)

	list := app.getJSON(t, "/api/v1/transactions?user_id="+userID.String())
	defer list.Body.Close()
	require.Equal(t, http.StatusOK, list.StatusCode)
	var listEnvelope struct {
		Data struct {
			Total int64 `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(list.Body).Decode(&listEnvelope))
	assert.Equal(t, int64(2), listEnvelope.Data.Total)
}

func TestIntegration_InternalAPIRequiresJWT(t *testing.T) {
	app := newTestApp(t)

	resp, err := http.Get(app.server.URL + "/api/v1/stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

package handler

import (
	"time"

	"bet-settlement/internal/adapter/http/middleware"
	redisStore "bet-settlement/internal/adapter/storage/redis"
	"bet-settlement/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	SettlementSvc   ports.SettlementService
	TransactionSvc  ports.TransactionService
	ReportingSvc    ports.ReportingService
	PromotionSvc    ports.PromotionAdminService
	SecuritySvc     ports.SecurityEventService
	SigSvc          ports.SignatureVerifier
	TokenSvc        ports.TokenService
	RateLimitStore  *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers  []ports.HealthChecker
	WebhookSecret   string
	SignatureHeader string
	CallbackTimeout time.Duration
	Logger          zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// --- Gateway callback (signature-authenticated, no JWT) ---
	webhookHandler := NewWebhookHandler(
		deps.SettlementSvc, deps.SigSvc, deps.SecuritySvc,
		deps.WebhookSecret, deps.SignatureHeader, deps.CallbackTimeout,
	)
	r.POST("/webhooks/payment", rl("webhook"), webhookHandler.HandleCallback)

	// --- Internal API (service-JWT-authenticated) ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	v1 := r.Group("/api/v1", jwtAuth)

	txnHandler := NewTransactionHandler(deps.TransactionSvc, deps.ReportingSvc)
	transactions := v1.Group("/transactions")
	{
		transactions.POST("", rl("transactions"), txnHandler.Initiate)
		transactions.GET("", rl("reporting"), txnHandler.List)
		transactions.GET("/:externalID", rl("reporting"), txnHandler.Get)
	}

	reportingHandler := NewReportingHandler(deps.ReportingSvc)
	v1.GET("/stats", rl("reporting"), reportingHandler.GetStats)
	users := v1.Group("/users")
	{
		users.GET("/:userID/balance", rl("reporting"), reportingHandler.GetBalance)
		users.GET("/:userID/ledger", rl("reporting"), reportingHandler.ListLedgerEntries)
	}

	promotionHandler := NewPromotionHandler(deps.PromotionSvc)
	promotions := v1.Group("/promotions")
	{
		promotions.POST("", rl("promotions"), promotionHandler.CreateRule)
		promotions.POST("/:id/codes", rl("promotions"), promotionHandler.MintCodes)
	}

	return r
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bet-settlement/config"
	httpHandler "bet-settlement/internal/adapter/http/handler"
	pgStorage "bet-settlement/internal/adapter/storage/postgres"
	redisStorage "bet-settlement/internal/adapter/storage/redis"
	"bet-settlement/internal/core/ports"
	"bet-settlement/internal/service"
	"bet-settlement/pkg/logger"

	"github.com/rs/zerolog"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Bet Settlement Engine")

	if cfg.Gateway.WebhookSecret == "" {
		log.Fatal().Msg("gateway.webhook_secret is required (BST_GATEWAY_WEBHOOK_SECRET)")
	}

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	txRepo := pgStorage.NewTransactionRepo(pool)
	promoRepo := pgStorage.NewPromotionRepo(pool)
	ledgerRepo := pgStorage.NewLedgerRepo(pool)
	securityRepo := pgStorage.NewSecurityEventRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	callbackCache := redisStorage.NewCallbackCache(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize core services
	sigSvc := service.NewHMACSignatureVerifier()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	securitySvc := service.NewSecurityEventService(securityRepo, log)

	// Initialize business services
	evaluator := service.NewPromotionEvaluator(promoRepo, txRepo, ledgerRepo, transactor, log)
	settlementSvc := service.NewSettlementService(
		txRepo,
		ledgerRepo,
		evaluator,
		callbackCache,
		transactor,
		securitySvc,
		cfg.Settlement.CallbackCacheTTL,
		log,
	)
	transactionSvc := service.NewTransactionService(txRepo, ledgerRepo, transactor, log)
	reportingSvc := service.NewReportingService(txRepo, ledgerRepo)
	promotionSvc := service.NewPromotionAdminService(promoRepo, log)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		SettlementSvc:   settlementSvc,
		TransactionSvc:  transactionSvc,
		ReportingSvc:    reportingSvc,
		PromotionSvc:    promotionSvc,
		SecuritySvc:     securitySvc,
		SigSvc:          sigSvc,
		TokenSvc:        tokenSvc,
		RateLimitStore:  rateLimitStore,
		HealthCheckers:  []ports.HealthChecker{pgHealth, redisHealth},
		WebhookSecret:   cfg.Gateway.WebhookSecret,
		SignatureHeader: cfg.Gateway.SignatureHeader,
		CallbackTimeout: cfg.Gateway.CallbackTimeout,
		Logger:          log,
	})

	// Stale-transaction expiry sweep
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	if cfg.Settlement.ExpirySweepInterval > 0 {
		go runExpirySweep(sweepCtx, transactionSvc, cfg.Settlement, logger.WithComponent(log, "expiry_sweep"))
	}

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")
	stopSweep()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// runExpirySweep periodically expires PENDING transactions older than the
// configured TTL. Safe to run on every replica: the sweep is a single
// conditional UPDATE, so concurrent sweeps never double-expire a row.
func runExpirySweep(ctx context.Context, svc ports.TransactionService, cfg config.SettlementConfig, log zerolog.Logger) {
	ticker := time.NewTicker(cfg.ExpirySweepInterval)
	defer ticker.Stop()

	log.Info().
		Dur("interval", cfg.ExpirySweepInterval).
		Dur("pending_ttl", cfg.PendingTTL).
		Msg("expiry sweep started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("expiry sweep stopped")
			return
		case <-ticker.C:
			if _, err := svc.ExpireStale(ctx, cfg.PendingTTL); err != nil {
				log.Error().Err(err).Msg("expiry sweep failed")
			}
		}
	}
}

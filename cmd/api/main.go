package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fiilar/config"
	httpHandler "fiilar/internal/adapter/http/handler"
	pgStorage "fiilar/internal/adapter/storage/postgres"
	redisStorage "fiilar/internal/adapter/storage/redis"
	"fiilar/internal/core/ports"
	"fiilar/internal/events"
	"fiilar/internal/service"
	"fiilar/pkg/logger"
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
		Msg("Starting Fiilar API")

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
	userRepo := pgStorage.NewUserRepo(pool)
	walletRepo := pgStorage.NewWalletRepo(pool)
	walletTxRepo := pgStorage.NewWalletTransactionRepo(pool)
	conversationRepo := pgStorage.NewConversationRepo(pool)
	messageRepo := pgStorage.NewMessageRepo(pool)
	notificationRepo := pgStorage.NewNotificationRepo(pool)
	reviewRepo := pgStorage.NewReviewRepo(pool)
	bookingRepo := pgStorage.NewBookingRepo(pool)
	listingRepo := pgStorage.NewListingRepo(pool)
	auditRepo := pgStorage.NewAuditRepository(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	draftStore := redisStorage.NewDraftStore(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize core services
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	safetyFilter := service.NewSafetyFilter()
	eventBus := events.NewBus(log)

	// Initialize business services
	authSvc := service.NewAuthService(userRepo, walletRepo, hashSvc, tokenSvc)
	walletSvc := service.NewWalletService(walletRepo, walletTxRepo, transactor, eventBus, log)
	notificationSvc := service.NewNotificationService(notificationRepo, eventBus, log)
	messagingSvc := service.NewMessagingService(
		conversationRepo,
		messageRepo,
		safetyFilter,
		notificationSvc,
		transactor,
		eventBus,
		log,
	)
	reviewSvc := service.NewReviewService(reviewRepo, bookingRepo, userRepo, log)
	bookingSvc := service.NewBookingService(
		bookingRepo,
		listingRepo,
		userRepo,
		walletSvc,
		notificationSvc,
		draftStore,
		transactor,
		cfg.Drafts.TTL,
		log,
	)
	listingSvc := service.NewListingService(listingRepo, userRepo, log)
	reportingSvc := service.NewReportingService(bookingRepo, listingRepo, reviewRepo)
	auditSvc := service.NewAuditService(auditRepo, log)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Load OpenAPI spec for Swagger UI
	if specBytes, err := os.ReadFile("docs/api/openapi.yaml"); err == nil {
		httpHandler.SetSwaggerSpec(specBytes)
		log.Info().Msg("OpenAPI spec loaded for Swagger UI at /swagger")
	} else {
		log.Warn().Err(err).Msg("OpenAPI spec not found, Swagger UI will be unavailable")
	}

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:         authSvc,
		WalletSvc:       walletSvc,
		MessagingSvc:    messagingSvc,
		ReviewSvc:       reviewSvc,
		NotificationSvc: notificationSvc,
		BookingSvc:      bookingSvc,
		ListingSvc:      listingSvc,
		ReportingSvc:    reportingSvc,
		TokenSvc:        tokenSvc,
		RateLimitStore:  rateLimitStore,
		HealthCheckers:  []ports.HealthChecker{pgHealth, redisHealth},
		AuditSvc:        auditSvc,
		Logger:          log,
	})

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

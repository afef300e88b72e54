package handler

import (
	"fiilar/internal/adapter/http/middleware"
	redisStore "fiilar/internal/adapter/storage/redis"
	"fiilar/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc         ports.AuthService
	WalletSvc       ports.WalletService
	MessagingSvc    ports.MessagingService
	ReviewSvc       ports.ReviewService
	NotificationSvc ports.NotificationService
	BookingSvc      ports.BookingService
	ListingSvc      ports.ListingService
	ReportingSvc    ports.ReportingService
	TokenSvc        ports.TokenService
	RateLimitStore  *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers  []ports.HealthChecker
	AuditSvc        ports.AuditService // nil = audit logging disabled
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

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	// Health check (pings PostgreSQL and Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Swagger documentation
	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

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

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", rl("auth_register"), authHandler.Register)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
	}

	// --- JWT-authenticated routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)

	walletHandler := NewWalletHandler(deps.WalletSvc)
	wallet := v1.Group("/wallet", jwtAuth)
	{
		wallet.GET("/balance", rl("read"), walletHandler.Balance)
		wallet.GET("/transactions", rl("read"), walletHandler.Transactions)
		wallet.POST("/deposit", rl("wallet"), walletHandler.Deposit)
		wallet.POST("/pay", rl("wallet"), walletHandler.Pay)
		wallet.POST("/refund", rl("wallet"), walletHandler.Refund)
		wallet.POST("/withdraw", rl("wallet"), walletHandler.Withdraw)
	}

	messagingHandler := NewMessagingHandler(deps.MessagingSvc)
	conversations := v1.Group("/conversations", jwtAuth)
	{
		conversations.POST("", rl("messages"), messagingHandler.StartConversation)
		conversations.GET("", rl("read"), messagingHandler.ListConversations)
		conversations.POST("/:id/messages", rl("messages"), messagingHandler.SendMessage)
		conversations.GET("/:id/messages", rl("read"), messagingHandler.ListMessages)
		conversations.POST("/:id/read", rl("messages"), messagingHandler.MarkRead)
	}

	reviewHandler := NewReviewHandler(deps.ReviewSvc)
	reviews := v1.Group("/reviews", jwtAuth)
	{
		reviews.POST("", rl("reviews"), reviewHandler.Create)
	}

	notificationHandler := NewNotificationHandler(deps.NotificationSvc)
	notifications := v1.Group("/notifications", jwtAuth)
	{
		notifications.GET("", rl("read"), notificationHandler.List)
		notifications.GET("/unread-count", rl("read"), notificationHandler.UnreadCount)
		notifications.POST("/:id/read", rl("read"), notificationHandler.MarkRead)
		notifications.POST("/read-all", rl("read"), notificationHandler.MarkAllRead)
		notifications.DELETE("", rl("read"), notificationHandler.Clear)
	}

	bookingHandler := NewBookingHandler(deps.BookingSvc)
	bookings := v1.Group("/bookings", jwtAuth)
	{
		bookings.POST("", rl("bookings"), bookingHandler.Create)
		bookings.GET("", rl("read"), bookingHandler.List)
		bookings.POST("/:id/complete", rl("bookings"), bookingHandler.Complete)
		bookings.POST("/:id/cancel", rl("bookings"), bookingHandler.Cancel)
	}

	drafts := v1.Group("/drafts", jwtAuth)
	{
		drafts.PUT("/:listingID", rl("bookings"), bookingHandler.SaveDraft)
		drafts.GET("/:listingID", rl("read"), bookingHandler.GetDraft)
		drafts.DELETE("/:listingID", rl("bookings"), bookingHandler.DeleteDraft)
	}

	listingHandler := NewListingHandler(deps.ListingSvc)
	listings := v1.Group("/listings", jwtAuth)
	{
		listings.POST("", rl("listings"), listingHandler.Create)
		listings.GET("", rl("read"), listingHandler.ListMine)
		listings.GET("/:id", rl("read"), listingHandler.Get)
		listings.GET("/:id/reviews", rl("read"), reviewHandler.ListByListing)
		listings.GET("/:id/rating", rl("read"), reviewHandler.Rating)
	}

	dashboardHandler := NewDashboardHandler(deps.ReportingSvc)
	dashboard := v1.Group("/dashboard", jwtAuth)
	{
		dashboard.GET("/stats", rl("read"), dashboardHandler.GetStats)
	}

	return r
}

package handler

import (
	"taverna-payment-service/internal/adapter/http/middleware"
	redisStore "taverna-payment-service/internal/adapter/storage/redis"
	"taverna-payment-service/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	IngestSvc      ports.WebhookIngestService
	AdminSvc       ports.PaymentAdminService
	SettingsSvc    ports.SettingsService
	TokenSvc       ports.TokenService
	CSRFStore      ports.CSRFStore
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
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

	webhookHandler := NewWebhookHandler(deps.IngestSvc, deps.AdminSvc, deps.Logger)

	// --- Public gateway callback routes (signature-verified, no session) ---
	r.POST("/webhooks/:gateway", rl("webhooks"), webhookHandler.Receive)
	// Legacy IPN path kept so existing PayPal configurations keep delivering.
	r.POST("/payment/ipn/paypal", rl("webhooks"), webhookHandler.ReceivePayPalIPN)

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	v1.POST("/auth/login", rl("auth_login"), authHandler.Login)

	// --- JWT + CSRF authenticated admin routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	csrfGuard := middleware.CSRFGuard(deps.CSRFStore, deps.Logger)
	paymentHandler := NewPaymentHandler(deps.AdminSvc)
	settingsHandler := NewSettingsHandler(deps.SettingsSvc)
	dashboardHandler := NewDashboardHandler(deps.AdminSvc)

	admin := v1.Group("/admin", jwtAuth, csrfGuard, rl("admin"))

	transactions := admin.Group("/transactions")
	{
		transactions.GET("", paymentHandler.List)
		transactions.GET("/:id", paymentHandler.Get)
		transactions.POST("/:id/check", paymentHandler.CheckStatus)
		transactions.POST("/:id/refund", paymentHandler.Refund)
		transactions.POST("/:id/cancel", paymentHandler.Cancel)
		transactions.POST("/:id/force-status", paymentHandler.ForceStatus)
	}

	orders := admin.Group("/orders")
	{
		orders.POST("/:id/check", paymentHandler.CheckOrder)
		orders.PUT("/:id/payment-status", paymentHandler.UpdateOrderStatus)
	}

	webhooks := admin.Group("/webhooks")
	{
		webhooks.GET("", webhookHandler.List)
		webhooks.GET("/:id", webhookHandler.Get)
		webhooks.POST("/:id/reprocess", webhookHandler.Reprocess)
	}

	admin.GET("/attempts/:id", paymentHandler.GetAttempt)

	gateways := admin.Group("/gateways")
	{
		gateways.GET("", settingsHandler.List)
		gateways.PUT("/:name", settingsHandler.Save)
		gateways.PUT("/:name/toggle", settingsHandler.Toggle)
		gateways.POST("/:name/test", settingsHandler.Test)
	}

	admin.GET("/dashboard/stats", dashboardHandler.GetStats)

	return r
}

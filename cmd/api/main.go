package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taverna-payment-service/config"
	httpHandler "taverna-payment-service/internal/adapter/http/handler"
	pgStorage "taverna-payment-service/internal/adapter/storage/postgres"
	redisStorage "taverna-payment-service/internal/adapter/storage/redis"
	"taverna-payment-service/internal/core/ports"
	"taverna-payment-service/internal/gateway"
	"taverna-payment-service/internal/service"
	"taverna-payment-service/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	log.Info().Msg("starting taverna payment service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// PostgreSQL
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()

	// Redis
	redisClient, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()

	// Repositories
	txRepo := pgStorage.NewTransactionRepo(pool)
	historyRepo := pgStorage.NewHistoryRepo(pool)
	webhookRepo := pgStorage.NewWebhookRepo(pool)
	refundRepo := pgStorage.NewRefundRepo(pool)
	orderRepo := pgStorage.NewOrderRepo(pool)
	attemptRepo := pgStorage.NewAttemptRepo(pool)
	operatorRepo := pgStorage.NewOperatorRepo(pool)
	settingsRepo := pgStorage.NewSettingsRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Redis-backed stores
	dedupCache := redisStorage.NewDedupCache(redisClient)
	csrfStore := redisStorage.NewCSRFStore(redisClient)
	rateLimitStore := redisStorage.NewRateLimitStore(redisClient)

	// Gateway adapters. A gateway without credentials is not registered;
	// webhook deliveries for it are rejected with an unknown-gateway error.
	gatewayClient := &http.Client{Timeout: 15 * time.Second}
	var adapters []ports.GatewayAdapter
	if cfg.Gateways.MercadoPago.Enabled() {
		adapters = append(adapters, gateway.NewMercadoPago(gateway.MercadoPagoConfig{
			AccessToken:     cfg.Gateways.MercadoPago.AccessToken,
			PublicKey:       cfg.Gateways.MercadoPago.PublicKey,
			WebhookSecret:   cfg.Gateways.MercadoPago.WebhookSecret,
			Sandbox:         cfg.Gateways.MercadoPago.Sandbox,
			NotificationURL: cfg.Gateways.MercadoPago.NotificationURL,
		}, gatewayClient, log))
	}
	if cfg.Gateways.PayPal.Enabled() {
		adapters = append(adapters, gateway.NewPayPal(gateway.PayPalConfig{
			ClientID:      cfg.Gateways.PayPal.ClientID,
			ClientSecret:  cfg.Gateways.PayPal.ClientSecret,
			WebhookSecret: cfg.Gateways.PayPal.WebhookSecret,
			Sandbox:       cfg.Gateways.PayPal.Sandbox,
			ReturnURL:     cfg.Gateways.PayPal.ReturnURL,
			CancelURL:     cfg.Gateways.PayPal.CancelURL,
		}, gatewayClient, log))
	}
	if len(adapters) == 0 {
		log.Warn().Msg("no payment gateways configured, webhook ingestion is inert")
	}
	registry := gateway.NewRegistry(adapters...)

	// Core services
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	// Business services
	reconcileSvc := service.NewReconcileService(registry, txRepo, historyRepo, orderRepo, transactor, log)
	ingestSvc := service.NewWebhookIngestService(registry, webhookRepo, settingsRepo, dedupCache, reconcileSvc, orderRepo, log)
	adminSvc := service.NewPaymentAdminService(registry, txRepo, historyRepo, webhookRepo, refundRepo, orderRepo, attemptRepo, transactor, reconcileSvc, log)
	settingsSvc := service.NewSettingsService(registry, settingsRepo, log)
	authSvc := service.NewAuthService(operatorRepo, hashSvc, tokenSvc, csrfStore)

	// Health checkers (deep: postgres + redis)
	healthCheckers := []ports.HealthChecker{
		pgStorage.NewHealthCheck(pool),
		redisStorage.NewHealthCheck(redisClient),
	}

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		IngestSvc:      ingestSvc,
		AdminSvc:       adminSvc,
		SettingsSvc:    settingsSvc,
		TokenSvc:       tokenSvc,
		CSRFStore:      csrfStore,
		RateLimitStore: rateLimitStore,
		HealthCheckers: healthCheckers,
		Logger:         log,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}

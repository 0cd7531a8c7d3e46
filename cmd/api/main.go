// MTN MoMo Payments Microservice
//
// This is the main entry point for the MTN Mobile Money payment service.
// It wires up all dependencies and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fitstack/momo-payments/config"
	"github.com/fitstack/momo-payments/internal/adapters/backend"
	"github.com/fitstack/momo-payments/internal/adapters/momo"
	"github.com/fitstack/momo-payments/internal/core/ports"
	"github.com/fitstack/momo-payments/internal/core/service"
	"github.com/fitstack/momo-payments/internal/handlers"
	"github.com/fitstack/momo-payments/internal/observability"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Logger error: %v", err)
	}
	defer logger.Sync()

	gatewayCfg, err := cfg.GatewayConfig()
	if err != nil {
		logger.Fatal("invalid gateway configuration", zap.Error(err))
	}
	warnMissingConfig(cfg, logger)

	logger.Info("starting MoMo payments service",
		zap.String("port", cfg.Server.Port),
		zap.String("target_environment", string(gatewayCfg.TargetEnvironment)),
		zap.Bool("require_https_callbacks", cfg.Security.RequireHTTPSCallbacks))

	// Wire up dependencies (manual dependency injection)
	//
	// Adapters
	gateway := momo.NewGateway(gatewayCfg,
		momo.WithTimeout(cfg.MoMo.HTTPTimeout),
		momo.WithLogger(logger.Named("momo")))

	var notifier ports.PaymentNotifier = backend.NopNotifier{}
	if cfg.Backend.NotifyURL != "" {
		notifier = backend.NewClient(cfg.Backend.NotifyURL, cfg.Backend.APIKey, nil)
	}

	// Service Layer
	paymentService := service.NewPaymentService(gateway, notifier, logger.Named("service"), cfg.MoMo.CallbackURL)

	// API Layer
	paymentHandler := handlers.NewPaymentHandler(paymentService, gatewayCfg.TargetEnvironment, logger)
	callbackHandler := handlers.NewCallbackHandler(paymentService, cfg.Security.RequireHTTPSCallbacks, logger.Named("callbacks"))
	router := handlers.SetupRouter(paymentHandler, callbackHandler, handlers.RouterConfig{
		GinMode:       cfg.Server.GinMode,
		ServiceAPIKey: cfg.Security.ServiceAPIKey,
		Logger:        logger.Named("http"),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
}

// warnMissingConfig logs settings that are optional for startup but needed for real traffic.
func warnMissingConfig(cfg *config.Config, logger *zap.Logger) {
	if cfg.MoMo.APIUserID == "" || cfg.MoMo.APIKey == "" || cfg.MoMo.SubscriptionKey == "" {
		logger.Warn("MoMo credentials incomplete; requests must supply their own")
	}
	if cfg.Security.ServiceAPIKey == "" {
		logger.Warn("SERVICE_API_KEY not set; /api/v1 is unauthenticated")
	}
	if cfg.Backend.NotifyURL == "" {
		logger.Warn("BACKEND_NOTIFY_URL not set; callbacks will not be forwarded")
	}
}

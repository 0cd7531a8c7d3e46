// Package handlers contains the HTTP handlers and routing.
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RouterConfig holds the settings the router needs besides the handlers.
type RouterConfig struct {
	GinMode       string
	ServiceAPIKey string
	Logger        *zap.Logger
}

// SetupRouter configures the Gin router with all routes.
func SetupRouter(handler *PaymentHandler, callbacks *CallbackHandler, cfg RouterConfig) *gin.Engine {
	gin.SetMode(cfg.GinMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CORSMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(RequestLoggerMiddleware(cfg.Logger))

	// Health check and metrics (public)
	router.GET("/health", handler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes (requires Bearer auth)
	v1 := router.Group("/api/v1")
	v1.Use(ServiceAuthMiddleware(cfg.ServiceAPIKey))
	{
		payments := v1.Group("/payments")
		{
			payments.POST("", handler.CreatePayment)
			payments.GET("/:reference", handler.GetPaymentStatus)
		}

		accounts := v1.Group("/accounts/:type/:id")
		{
			accounts.GET("/balance", handler.GetBalance)
			accounts.GET("/active", handler.GetAccountActive)
		}
	}

	// MTN callback endpoint (public). Any method so that non-POST requests get a 405.
	router.Any("/callbacks/momo", callbacks.HandleMoMo)

	return router
}

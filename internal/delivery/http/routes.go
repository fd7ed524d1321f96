package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ecomart/backend/config"
	"github.com/ecomart/backend/internal/logger"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, log *zap.Logger) *gin.Engine {
	log = logger.OrNop(log)

	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware(log))
	router.Use(LoggerMiddleware(log))
	router.Use(MetricsMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Operational endpoints are not rate limited
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))
	{
		products := v1.Group("/products")
		{
			products.GET("", handler.ListProducts)
			products.GET("/:id", handler.GetProduct)
			products.GET("/:id/alternatives", handler.GetAlternatives)
			products.GET("/:id/materials", handler.GetMaterials)
		}

		search := v1.Group("/search")
		{
			search.GET("", handler.Search)
			search.GET("/suggestions", handler.Suggestions)
		}

		biometric := v1.Group("/auth/biometric")
		{
			biometric.GET("", handler.BiometricStatus)
			biometric.POST("/submit", handler.SubmitBiometric)
			biometric.POST("/reset", handler.ResetBiometric)
		}

		v1.POST("/cart/checkout", handler.Checkout)
		v1.GET("/receipts/:tokenId", handler.GetReceipt)
		v1.GET("/sustainability", handler.Sustainability)
	}

	return router
}

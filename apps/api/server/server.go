package server

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/opus-finance/opus-api/apps/api/handlers"
	awsclient "github.com/opus-finance/opus-api/libs/go/client/aws"
	"github.com/opus-finance/opus-api/libs/go/config"
	"github.com/opus-finance/opus-api/libs/go/helpers"
	"github.com/opus-finance/opus-api/libs/go/logger"
	"github.com/opus-finance/opus-api/libs/go/middleware"
	"github.com/opus-finance/opus-api/libs/go/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Per-client request budgets. Debug endpoints hit the chain many times per
// request and get a tighter one.
const (
	defaultRequestsPerSecond = 20
	defaultBurst             = 40
	debugRequestsPerSecond   = 2
	debugBurst               = 5
)

// Handler Definitions
var (
	healthHandler     *handlers.HealthHandler
	tokenHandler      *handlers.TokenHandler
	contentHandler    *handlers.ContentHandler
	statisticsHandler *handlers.StatisticsHandler
	sessionHandler    *handlers.SessionHandler
	lockHandler       *handlers.LockHandler
	debugHandler      *handlers.DebugHandler

	container      *services.Container
	handlerFactory *handlers.HandlerFactory
	defaultLimiter *middleware.RateLimiter
	debugLimiter   *middleware.RateLimiter
)

// InitializeHandlers loads configuration, starts the logger and builds every
// service. Configuration errors are fatal.
func InitializeHandlers() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err) // Use basic log before logger init
	}

	// --- Initialize Logger (AFTER config validation) ---
	logger.InitLoggerWithConfig(logger.LoggerConfig{
		Level:       cfg.LogLevel,
		Stage:       cfg.Stage,
		EnableJSON:  cfg.IsProduction(),
		EnableColor: !cfg.IsProduction(),
	})
	logger.Info("Initializing handlers for stage",
		zap.String("stage", cfg.Stage),
		zap.Int64("chain_id", cfg.Chain.ChainID),
		zap.String("staking_contract", cfg.Contracts.StakingAddress),
	)

	ctx := context.Background()
	opts := services.ContainerOptions{}

	// --- Initialize AWS Secrets Manager Client ---
	if helpers.IsDeployedStage(cfg.Stage) && cfg.Chain.RPCAPIKeyARN != "" {
		secretsClient, err := awsclient.NewSecretsManagerClient(ctx)
		if err != nil {
			logger.Fatal("Failed to initialize AWS Secrets Manager client", zap.Error(err))
		}
		opts.Secrets = secretsClient
	}

	c, err := services.NewContainer(ctx, cfg, opts)
	if err != nil {
		logger.Fatal("Failed to build services", zap.Error(err))
	}
	if err := InitializeHandlersWithContainer(c); err != nil {
		logger.Fatal("Failed to create handlers", zap.Error(err))
	}
}

// InitializeHandlersWithContainer creates the handlers over an existing
// container.
func InitializeHandlersWithContainer(c *services.Container) error {
	factory, err := handlers.CreateDefaultFactory(c, logger.Log)
	if err != nil {
		return err
	}
	container = c
	handlerFactory = factory

	healthHandler = handlerFactory.NewHealthHandler()
	tokenHandler = handlerFactory.NewTokenHandler()
	contentHandler = handlerFactory.NewContentHandler()
	statisticsHandler = handlerFactory.NewStatisticsHandler()
	sessionHandler = handlerFactory.NewSessionHandler()
	lockHandler = handlerFactory.NewLockHandler()
	debugHandler = handlerFactory.NewDebugHandler()
	return nil
}

// Port is the configured listen port.
func Port() string {
	if container == nil || container.Config.Port == "" {
		return "8000"
	}
	return container.Config.Port
}

// Shutdown stops the rate limiters and releases the RPC pool and cache.
func Shutdown() {
	if defaultLimiter != nil {
		defaultLimiter.Close()
	}
	if debugLimiter != nil {
		debugLimiter.Close()
	}
	if container != nil {
		container.Close()
	}
	_ = logger.Sync()
}

func InitializeRoutes(router *gin.Engine) {
	// Configure and apply CORS middleware
	router.Use(configureCORS())

	// Add correlation ID middleware for request tracing
	router.Use(middleware.CorrelationIDMiddleware())

	// Apply rate limiting middleware globally
	defaultLimiter = middleware.NewRateLimiter(defaultRequestsPerSecond, defaultBurst)
	router.Use(defaultLimiter.Middleware())

	// Add enhanced logging in development mode
	isDevelopment := os.Getenv("GIN_MODE") != "release"
	router.Use(middleware.EnhancedLoggingMiddleware(isDevelopment))

	// Add basic request logging for production
	if !isDevelopment {
		router.Use(middleware.RequestLoggingMiddleware())
	}

	router.Use(middleware.MetricsMiddleware(container.Metrics))

	router.GET("/metrics", gin.WrapH(container.Metrics.Handler()))

	// Add Swagger endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health for raw lambda url check
	router.GET("/:stage/health", healthHandler.Health)
	router.GET("/health", healthHandler.Health)

	v1 := router.Group("/api/v1")
	{
		content := v1.Group("/content")
		{
			content.GET("", contentHandler.ListPages)
			content.GET("/:page", contentHandler.GetPage)
		}

		token := v1.Group("/token")
		{
			token.GET("", tokenHandler.GetToken)
			token.GET("/qr", tokenHandler.GetTokenQR)
		}

		v1.GET("/stats", statisticsHandler.GetStatistics)

		sessions := v1.Group("/sessions")
		{
			sessions.POST("", sessionHandler.CreateSession)
			sessions.GET("/:session_id", sessionHandler.GetSession)
			sessions.POST("/:session_id/refresh", sessionHandler.RefreshSession)
			sessions.POST("/:session_id/watch-asset", sessionHandler.WatchAsset)
			sessions.DELETE("/:session_id", sessionHandler.DeleteSession)
		}

		accounts := v1.Group("/accounts/:address")
		{
			accounts.GET("/locks", lockHandler.GetLocks)
			accounts.GET("/locks/events", lockHandler.GetEventLocks)
		}

		debugLimiter = middleware.NewRateLimiter(debugRequestsPerSecond, debugBurst)
		debug := v1.Group("/debug")
		debug.Use(debugLimiter.Middleware())
		{
			debug.GET("/capabilities", debugHandler.GetCapabilities)
			debug.POST("/scan", debugHandler.ScanLocks)
		}
	}
}

// configureCORS returns a configured CORS middleware
func configureCORS() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()

	// Get allowed origins from environment variable
	corsConfig.AllowOrigins = envList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})

	corsConfig.AllowMethods = envList("CORS_ALLOWED_METHODS", []string{"GET", "POST", "DELETE", "OPTIONS"})

	corsConfig.AllowHeaders = envList("CORS_ALLOWED_HEADERS",
		[]string{"Origin", "Content-Type", "Accept", middleware.CorrelationIDHeader})

	// Default exposed headers including rate limit headers
	corsConfig.ExposeHeaders = envList("CORS_EXPOSED_HEADERS", []string{
		"X-RateLimit-Limit",
		"X-RateLimit-Remaining",
		"X-RateLimit-Reset",
		"Retry-After",
		middleware.CorrelationIDHeader,
	})

	// Set credentials allowed
	corsConfig.AllowCredentials = os.Getenv("CORS_ALLOW_CREDENTIALS") == "true"

	return cors.New(corsConfig)
}

// envList splits a comma separated environment variable, falling back to
// def when it is unset.
func envList(key string, def []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	parts := strings.Split(raw, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ordertrack/backend/internal/application/tracking"
	"github.com/ordertrack/backend/internal/domain/order"
	"github.com/ordertrack/backend/internal/infrastructure/assistant"
	"github.com/ordertrack/backend/internal/infrastructure/config"
	"github.com/ordertrack/backend/internal/infrastructure/ecommerce"
	"github.com/ordertrack/backend/internal/infrastructure/logger"
	"github.com/ordertrack/backend/internal/infrastructure/store"
	"github.com/ordertrack/backend/internal/interfaces/http/handler"
	"github.com/ordertrack/backend/internal/interfaces/http/middleware"
	"github.com/ordertrack/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting order tracking service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize order store
	repo, err := store.NewFactory(cfg.Store, cfg.Redis, store.WithLogger(log)).Create()
	if err != nil {
		log.Fatal("Failed to initialize order store", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(); err != nil {
			log.Error("Error closing order store", zap.Error(err))
		}
	}()

	// Initialize platform tracking simulator
	tracker := ecommerce.NewSimulatedTracker()

	// Initialize assistant client
	assistantClient, err := assistant.NewClient(&assistant.Config{
		APIKey:      cfg.Assistant.APIKey,
		BaseURL:     cfg.Assistant.BaseURL,
		Model:       cfg.Assistant.Model,
		Temperature: cfg.Assistant.Temperature,
		Timeout:     cfg.Assistant.Timeout,
	}, assistant.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to initialize assistant client", zap.Error(err))
	}
	if cfg.Assistant.APIKey == "" {
		log.Warn("No assistant API key configured; assistant calls will fail upstream")
	}

	// Initialize application services
	orderService := tracking.NewOrderService(repo, tracker, assistantClient, log)
	assistantService := tracking.NewAssistantService(repo, assistantClient, log)

	// Initialize HTTP handlers
	orderHandler := handler.NewOrderHandler(orderService, log)
	assistantHandler := handler.NewAssistantHandler(assistantService, log)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. CORS - Handle cross-origin requests
	// 5. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
		MaxAge:       12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside the API group)
	engine.GET("/health", healthHandler(repo))

	// Setup API routes
	r := router.NewRouter(engine)
	r.Register(orderHandler)
	r.Register(assistantHandler)
	r.Register(systemHandler)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := repo.Ping(c.Request.Context()); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"time":   time.Now().Format(time.RFC3339),
				"store":  "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"store":  "ok",
		})
	}
}

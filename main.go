package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sauhard98/sirion/config"
	"github.com/sauhard98/sirion/handler"
	"github.com/sauhard98/sirion/middleware"
	"github.com/sauhard98/sirion/pkg/logger"
	"github.com/sauhard98/sirion/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully")

	// Open the persistence layer and restore previously stored contracts
	kv, err := service.OpenSQLiteKV(cfg.Store.DBPath)
	if err != nil {
		slog.Error("failed to open contract database", "path", cfg.Store.DBPath, "error", err)
		os.Exit(1)
	}
	defer kv.Close()

	store := service.NewContractStore(kv)
	store.Load()
	slog.Info("contract store loaded", "contracts", store.Count())

	// Initialize the completion service
	gemini, err := service.NewGeminiService(context.Background(), &cfg.Gemini)
	if err != nil {
		slog.Error("failed to initialize Gemini service", "error", err)
		os.Exit(1)
	}

	// Optional document archive
	var archive *service.ArchiveService
	if cfg.Archive.Enabled {
		archive, err = service.NewArchiveService(&cfg.Archive)
		if err != nil {
			slog.Error("failed to initialize archive service", "error", err)
			os.Exit(1)
		}
		if err := archive.EnsureBucket(context.Background()); err != nil {
			slog.Error("failed to ensure archive bucket", "error", err)
			os.Exit(1)
		}
	}

	processor := service.NewProcessor(gemini, store, archive, 150*time.Millisecond)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(cfg)
	contractHandler := handler.NewContractHandler(store, processor, gemini, archive)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New() // Use New() instead of Default() to avoid default middleware

	// Add custom middleware
	router.Use(middleware.RequestID())                 // Request ID for tracing
	router.Use(middleware.Recovery())                  // Panic recovery
	router.Use(middleware.RequestLogger())             // Access logging
	router.Use(corsMiddleware())                       // CORS
	router.Use(middleware.RateLimit(100, time.Minute)) // Rate limiting: 100 requests per minute

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Public routes
	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(&cfg.Auth))
	{
		protected.GET("/auth/me", authHandler.GetCurrentUser)
		protected.POST("/contracts/upload", contractHandler.Upload)
		protected.POST("/analyze", contractHandler.Analyze)
		protected.GET("/contracts", contractHandler.List)
		protected.GET("/contracts/processing", contractHandler.GetProcessing)
		protected.GET("/contracts/active", contractHandler.GetActive)
		protected.GET("/contracts/:id", contractHandler.Get)
		protected.PUT("/contracts/:id/activate", contractHandler.Activate)
		protected.DELETE("/contracts/active", contractHandler.ClearActive)
		protected.DELETE("/contracts/:id", contractHandler.Delete)
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// corsMiddleware handles CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

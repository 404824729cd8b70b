package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/northpole96/habit/internal/api/handlers"
	"github.com/northpole96/habit/internal/api/middleware"
	"github.com/northpole96/habit/internal/api/routes"
	"github.com/northpole96/habit/internal/domain/habits"
	"github.com/northpole96/habit/internal/infrastructure/persistence/sqlite/connection"
	"github.com/northpole96/habit/internal/infrastructure/persistence/sqlite/migrations"
	"github.com/northpole96/habit/internal/infrastructure/scheduler"
	"github.com/northpole96/habit/pkg/config"
	"github.com/northpole96/habit/pkg/logger"
)

// RequestLoggerMiddleware logs all incoming HTTP requests
func RequestLoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("Request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("") // Empty string will make it search in default locations
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	zlog := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	defer zlog.Sync()

	// Open the local database and run migrations
	db, err := connection.NewDatabase(cfg)
	if err != nil {
		zlog.Fatal("Failed to open database", zap.Error(err))
	}
	zlog.Info("Database opened", zap.String("path", db.Path()))

	if err := migrations.AutoMigrate(db, zlog.Logger); err != nil {
		zlog.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Wire the habits domain
	habitsRepo := habits.NewRepository(db)
	habitsService := habits.NewService(habitsRepo, zlog.Logger)
	habitsHandler := handlers.NewHabitsHandler(habitsService)

	// Nightly activity log pruning
	sweeper := scheduler.NewScheduler(habitsRepo, cfg.Database.ActivityRetentionDays, zlog)
	sweeper.Start()
	defer sweeper.Stop()

	// Set up the router
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware(zlog))
	router.Use(middleware.NewMetricsMiddleware().CollectMetrics())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check routes
	routes.SetupHealthRoutes(router, db)

	// Habits routes
	habitsRoutes := routes.NewHabitsRoutes(habitsHandler)
	habitsRoutes.RegisterRoutes(router)
	zlog.Info("Registered habits routes at /api/habits")

	// Start server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		zlog.Info(fmt.Sprintf("Server starting on port %d", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	zlog.Info("Shutting down server...")
	if err := server.Shutdown(ctx); err != nil {
		zlog.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zlog.Info("Server exited properly")
}

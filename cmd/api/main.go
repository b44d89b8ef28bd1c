package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"

	"github.com/sjperalta/debtbook-api/internal/config"
	"github.com/sjperalta/debtbook-api/internal/database"
	"github.com/sjperalta/debtbook-api/internal/handlers"
	"github.com/sjperalta/debtbook-api/internal/jobs"
	"github.com/sjperalta/debtbook-api/internal/middleware"
	"github.com/sjperalta/debtbook-api/internal/repository"
	"github.com/sjperalta/debtbook-api/internal/services"
	"github.com/sjperalta/debtbook-api/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize repositories
	repos, err := openRepositories(cfg)
	if err != nil {
		logger.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}

	if cfg.SeedData {
		if err := database.Seed(context.Background(), repos, database.DefaultSeed()); err != nil {
			logger.Error("Failed to seed data", "error", err)
			os.Exit(1)
		}
	}

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos, worker, cfg)
	if cfg.PDFFontPath != "" {
		ttf, err := os.ReadFile(cfg.PDFFontPath)
		if err != nil {
			logger.Error("Failed to read PDF font", "path", cfg.PDFFontPath, "error", err)
			os.Exit(1)
		}
		svcs.Export.SetPDFFont(ttf)
	}

	// Schedule recurring jobs
	scheduleJobs(worker, svcs)

	// Initialize handlers
	h := handlers.NewHandlers(svcs)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port, "current_user", cfg.CurrentUserID)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	worker.Shutdown()
	logger.Info("Background worker stopped")

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

// openRepositories uses PostgreSQL when DATABASE_URL is set and an in-memory
// store otherwise.
func openRepositories(cfg *config.Config) (*repository.Repositories, error) {
	if !cfg.UsesDatabase() {
		logger.Info("DATABASE_URL not set, using in-memory store")
		return repository.NewMemoryRepositories(repository.NewMemoryStore()), nil
	}

	db, err := database.Connect(cfg.DatabaseURL, cfg.Environment)
	if err != nil {
		return nil, err
	}
	logger.Info("Connected to database")

	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return repository.NewRepositories(db), nil
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", h.Health.Index)

		// Writes and views are attributed to the configured worker
		api := v1.Group("")
		api.Use(middleware.CurrentUser(cfg.CurrentUserID))
		h.Register(api)
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services) {
	// Promise-to-pay reminders once a day, first run at startup
	worker.ScheduleEveryImmediate(services.ReminderJobName, 24*time.Hour, svcs.Reminder.Job())

	logger.Info("Scheduled recurring jobs")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"promoter-service/internal/config"
	"promoter-service/internal/events"
	"promoter-service/internal/handlers"
	"promoter-service/internal/jobs"
	"promoter-service/internal/middleware"
	"promoter-service/internal/repository"
	"promoter-service/internal/services"
)

// @title Promoter Tracker API
// @version 1.0.0
// @description Brand promoter sales, verification, complaints and KPI tracking
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.example.com/support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8097
// @BasePath /api/v1

// @securityDefinitions.basic BasicAuth

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.InfoLevel)

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}
	loc, _ := cfg.ReportLocation()

	// Initialize storage
	store, ready, closeStore, err := openStore(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to open %s storage: %v", cfg.StorageBackend, err)
	}
	defer closeStore()
	logger.WithField("backend", cfg.StorageBackend).Info("Storage initialized")

	repo := repository.NewRepository(store)
	publisher := events.NewPublisher(logger)

	// Initialize services
	promoterService := services.NewPromoterService(repo, cfg.AdminResetSecret)
	salesService := services.NewSalesService(repo, publisher)
	complaintService := services.NewComplaintService(repo, publisher)
	feedbackService := services.NewFeedbackService(repo, publisher)
	floorService := services.NewFloorService(repo)
	settingsService := services.NewSettingsService(repo)
	backupService := services.NewBackupService(repo, publisher)
	dashboard := services.NewDashboardView(loc)

	// Start dashboard refresh job
	refreshJob := jobs.NewRefreshJob(repo, dashboard, logger, cfg.RefreshInterval)
	jobCtx, jobCancel := context.WithCancel(context.Background())
	go refreshJob.Start(jobCtx)

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())

	err = handlers.RegisterRoutes(router, &handlers.Router{
		Promoters:    handlers.NewPromoterHandler(promoterService, salesService, feedbackService),
		Verifier:     handlers.NewVerifierHandler(salesService),
		Complaints:   handlers.NewComplaintHandler(complaintService),
		Lead:         handlers.NewLeadHandler(repo, promoterService, floorService, salesService, settingsService, dashboard, publisher),
		Reports:      handlers.NewReportHandler(repo, backupService, loc),
		PromoterAuth: promoterService,
		LeadAccounts: gin.Accounts{cfg.LeadUsername: cfg.LeadPassword},
		CSAccounts:   gin.Accounts{cfg.CSUsername: cfg.CSPassword},
		AuthRate:     cfg.AuthRateLimit,
		Ready:        ready,
	})
	if err != nil {
		logger.Fatalf("Failed to register routes: %v", err)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Infof("Promoter service starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shut down")
	}

	// Stop refresh job
	jobCancel()
	refreshJob.Stop()

	logger.Info("Server shutdown complete")
}

// openStore builds the configured collection store. ready backs /ready and
// closeStore releases the backend's connections.
func openStore(cfg *config.Config, logger *logrus.Logger) (repository.CollectionStore, func(ctx context.Context) error, func(), error) {
	noop := func() {}

	switch cfg.StorageBackend {
	case config.BackendMemory:
		return repository.NewMemoryStore(cfg.StorageQuotaBytes), nil, noop, nil

	case config.BackendFile:
		store, err := repository.NewFileStore(cfg.DataDir, cfg.StorageQuotaBytes)
		if err != nil {
			return nil, nil, nil, err
		}
		return store, nil, noop, nil

	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, nil, nil, err
		}
		store, err := repository.OpenSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		return store, nil, func() { _ = store.Close() }, nil

	case config.BackendPostgres:
		db, err := config.InitDB(cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		store := repository.NewGormStore(db)
		logger.Info("Running database migrations...")
		if err := store.AutoMigrate(); err != nil {
			return nil, nil, nil, err
		}
		logger.Info("Database migrations completed")

		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, nil, err
		}
		return store, sqlDB.PingContext, func() { _ = sqlDB.Close() }, nil

	case config.BackendRedis:
		opts, err := config.RedisOptions(cfg)
		if err != nil {
			logger.Warnf("Failed to parse Redis URL: %v (using %s)", err, opts.Addr)
		}
		client := redis.NewClient(opts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, nil, err
		}
		logger.Info("Redis connected successfully")

		ready := func(ctx context.Context) error { return client.Ping(ctx).Err() }
		return repository.NewRedisStore(client, "promoter:"), ready, func() { _ = client.Close() }, nil
	}

	return nil, nil, nil, errors.New("unknown storage backend")
}

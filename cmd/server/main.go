package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dhouhaelaouni/tunimed/internal/config"
	"github.com/dhouhaelaouni/tunimed/internal/dao"
	"github.com/dhouhaelaouni/tunimed/internal/database"
	"github.com/dhouhaelaouni/tunimed/internal/router"
	"github.com/dhouhaelaouni/tunimed/internal/scheduler"
	"github.com/dhouhaelaouni/tunimed/internal/service"
)

// Version information (set by build script)
var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// Set Gin to release mode by default (can be overridden by GIN_MODE env var)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	logger.WithFields(logrus.Fields{
		"version":    version,
		"build_date": buildDate,
	}).Info("Starting TuniMed Redistribution API Server...")

	configPath := os.Getenv("CONFIG_PATH")

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// Set log level from config
	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		logger.SetLevel(level)
	}

	logger.WithFields(logrus.Fields{
		"config_path": configPath,
		"log_level":   logger.GetLevel().String(),
	}).Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.Initialize(&cfg.Database.TuniMed, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}

	// Verify database connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.HealthCheck(ctx); err != nil {
		logger.WithError(err).Fatal("Database health check failed")
	}

	logger.Info("Database connection established successfully")

	// Initialize DAOs
	medicineDAO := dao.NewMedicineDAO(db)
	propositionDAO := dao.NewPropositionDAO(db)
	auditLogDAO := dao.NewAuditLogDAO(db)
	userDAO := dao.NewUserDAO(db)

	logger.Info("DAOs initialized successfully")

	// Initialize services
	auditService := service.NewAuditService(auditLogDAO, userDAO, logger)

	medicineService := service.NewMedicineService(
		medicineDAO,
		propositionDAO,
		userDAO,
		auditService,
		db,
		logger,
	)

	propositionService := service.NewPropositionService(
		propositionDAO,
		medicineDAO,
		userDAO,
		auditService,
		db,
		logger,
	)

	sweeperService := service.NewSweeperService(propositionDAO, db, logger)

	logger.Info("Services initialized successfully")

	// Start the expiration sweeper
	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()

	if cfg.Scheduler.Enabled {
		sweepScheduler := scheduler.New(sweeperService.SweepExpiredPropositions, cfg.Scheduler.Interval, logger)
		go sweepScheduler.Run(sweeperCtx)
	} else {
		logger.Warn("Expiration sweeper is disabled")
	}

	// Setup router
	ginRouter := router.SetupRouter(medicineService, propositionService, auditService, db, logger)

	// Configure HTTP server
	serverAddr := cfg.Server.GetServerAddress()
	server := &http.Server{
		Addr:           serverAddr,
		Handler:        ginRouter,
		ReadTimeout:    timeoutOrDefault(cfg.Server.ReadTimeout, 15*time.Second),
		WriteTimeout:   timeoutOrDefault(cfg.Server.WriteTimeout, 15*time.Second),
		IdleTimeout:    timeoutOrDefault(cfg.Server.IdleTimeout, 60*time.Second),
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Start server in a goroutine
	go func() {
		logger.WithFields(logrus.Fields{
			"hostname": cfg.Server.Hostname,
			"port":     cfg.Server.Port,
			"addr":     serverAddr,
		}).Info("Starting HTTP server...")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	logger.WithField("address", serverAddr).Info("Server is running")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	stopSweeper()

	// Graceful shutdown with timeout
	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	if err := db.Close(); err != nil {
		logger.WithError(err).Error("Failed to close database")
	}

	logger.Info("Server exited gracefully")
}

func timeoutOrDefault(configured, fallback time.Duration) time.Duration {
	if configured > 0 {
		return configured
	}
	return fallback
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tradingUseCase "github.com/finbharat/finbharat/internal/domain/usecase/trading"
	userUseCase "github.com/finbharat/finbharat/internal/domain/usecase/user"

	"github.com/finbharat/finbharat/internal/domain/entity"
	"github.com/finbharat/finbharat/internal/infrastructure/adapter/api/handler"
	"github.com/finbharat/finbharat/internal/infrastructure/adapter/api/routes"
	"github.com/finbharat/finbharat/internal/infrastructure/adapter/auth"
	"github.com/finbharat/finbharat/internal/infrastructure/adapter/database"
	"github.com/finbharat/finbharat/internal/infrastructure/adapter/database/migration"
	"github.com/finbharat/finbharat/internal/infrastructure/adapter/logger"
	"github.com/finbharat/finbharat/internal/infrastructure/adapter/marketdata"
	"github.com/finbharat/finbharat/internal/infrastructure/adapter/repository"
	timeProvider "github.com/finbharat/finbharat/internal/infrastructure/adapter/time"
	"github.com/finbharat/finbharat/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

// Version is set at build time with -ldflags
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)

	// Setup database configuration
	dbConfig := &database.Config{
		Host:            cfg.Database.Host,
		Port:            database.ParsePort(cfg.Database.Port),
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      cfg.Database.RetryDelay,
	}

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database
	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	// Run migrations
	migrationMgr := migration.NewManager(dbManager.DB(), appLogger, tp)
	if err := migrationMgr.MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Unit of work (transaction boundary for trades)
	uow := database.NewUnitOfWork(dbManager.DB(), appLogger, tp)

	// Starting cash for new accounts
	initialCash, err := entity.ParseAmount(cfg.Trading.InitialCash)
	if err != nil {
		appLogger.Error("Invalid initial cash amount", map[string]any{
			"value": cfg.Trading.InitialCash,
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(dbManager.DB(), tp, appLogger)

	// Initialize use cases
	userService := userUseCase.NewUserUseCase(
		userRepo,
		tp,
		appLogger,
		initialCash,
		cfg.Auth.BcryptCost,
	)

	quoteClient := marketdata.NewYahooClient(marketdata.Config{
		BaseURL:        cfg.Market.BaseURL,
		RequestTimeout: cfg.Market.RequestTimeout,
		MaxAttempts:    cfg.Market.MaxAttempts,
		BackoffUnit:    cfg.Market.BackoffUnit,
	}, tp, appLogger)

	tradingService := tradingUseCase.NewService(uow, quoteClient, tp, appLogger)

	// Session manager for login cookies
	sessions, err := auth.NewSessionManager(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL, tp)
	if err != nil {
		appLogger.Error("Failed to create session manager", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Initialize API handlers
	secureCookies := cfg.Environment == config.Production
	authHandler := handler.NewAuthHandler(userService, sessions, appLogger, secureCookies)
	tradingHandler := handler.NewTradingHandler(tradingService, appLogger)
	quoteHandler := handler.NewQuoteHandler(quoteClient, appLogger)
	systemHandler := handler.NewSystemHandler(dbManager, appLogger, Version)

	// Initialize Gin router
	router := gin.New()

	// Setup middlewares
	routes.SetupMiddlewares(router, appLogger)

	// Setup routes
	routes.SetupRoutes(router, tradingHandler, quoteHandler, authHandler, systemHandler, sessions, appLogger)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port":    cfg.Server.Port,
			"env":     cfg.Environment,
			"version": Version,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	// Create a deadline to wait for
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Drain the per-user trade queues before closing the server
	tradingService.Shutdown()

	// Shutdown the server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	_ = appLogger.Flush()
	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	if cfg.Database.Host == "" {
		missingConfigs = append(missingConfigs, "database.host (or FB_DB_HOST environment variable)")
	}
	if cfg.Database.Username == "" {
		missingConfigs = append(missingConfigs, "database.username (or FB_DB_USERNAME environment variable)")
	}
	if cfg.Database.Database == "" {
		missingConfigs = append(missingConfigs, "database.database (or FB_DB_NAME environment variable)")
	}

	if cfg.Auth.SessionSecret == "" {
		missingConfigs = append(missingConfigs, "auth.sessionSecret (or FB_SESSION_SECRET environment variable)")
	}

	if cfg.Trading.InitialCash == "" {
		missingConfigs = append(missingConfigs, "trading.initialCash")
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missingConfigs, ", "))
	}

	return nil
}

package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prasetyarda/walletwise/internal/pkg/config"
	"github.com/prasetyarda/walletwise/internal/pkg/database"
	"github.com/prasetyarda/walletwise/internal/pkg/health"
	"github.com/prasetyarda/walletwise/internal/pkg/logger"
	"github.com/prasetyarda/walletwise/internal/pkg/middleware"
	"github.com/prasetyarda/walletwise/internal/pkg/ratelimit"
	"github.com/prasetyarda/walletwise/internal/pkg/server"
	"github.com/prasetyarda/walletwise/services/transactions/handler"
	"github.com/prasetyarda/walletwise/services/transactions/repository"
	"github.com/prasetyarda/walletwise/services/transactions/usecase"
)

func main() {
	appName := "ledger-service"
	configPath := "config/ledger.env"
	configs := config.InitConfig(configPath)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	// Set global logger for application-wide access
	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
	)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	defer postgresClient.Close()

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	defer redisClient.Close()

	// Bootstrap the transactions schema; the service must not start
	// serving without the table.
	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := repository.InitSchema(initCtx, postgresClient.GetDB()); err != nil {
		cancel()
		zapLogger.Fatal("Failed to initialize database schema", logger.Err(err))
	}
	cancel()

	// Initialize the rate limiter gate
	gate := ratelimit.NewGate(redisClient, ratelimit.Config{
		Limit:  configs.RateLimit.Limit,
		Window: time.Duration(configs.RateLimit.WindowSeconds) * time.Second,
	})

	// Initialize repository, usecase and handlers
	transactionRepo := repository.NewTransactionRepository(postgresClient.GetDB())
	transactionUC := usecase.NewTransactionUC(transactionRepo)
	transactionHandler := handler.NewTransactionHandler(transactionUC)

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Add middlewares (panic recovery should be first)
	e.Use(middleware.PanicRecoveryMiddleware(zapLogger))
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	// Health endpoints bypass the gate deliberately
	health.RegisterHealthEndpoints(e)

	// Every transaction route passes the gate first
	gateMiddleware := middleware.NewRateLimiterMiddleware(gate, configs.RateLimit)
	transactionHandler.RegisterRoutes(e, gateMiddleware)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port,
		time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	if err := srv.Start(); err != nil {
		zapLogger.Error("Server exited with error", logger.Err(err))
	}

	zapLogger.Info("Server exiting gracefully")
}

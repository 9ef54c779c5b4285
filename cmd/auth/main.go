package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/piresc/swastha/internal/pkg/config"
	"github.com/piresc/swastha/internal/pkg/health"
	"github.com/piresc/swastha/internal/pkg/logger"
	"github.com/piresc/swastha/internal/pkg/middleware"
	nrpkg "github.com/piresc/swastha/internal/pkg/newrelic"
	"github.com/piresc/swastha/internal/pkg/server"
	authhandler "github.com/piresc/swastha/services/auth/handler"
	authhttp "github.com/piresc/swastha/services/auth/handler/http"
	authusecase "github.com/piresc/swastha/services/auth/usecase"
	workerhandler "github.com/piresc/swastha/services/workers/handler"
	workerhttp "github.com/piresc/swastha/services/workers/handler/http"
	workerusecase "github.com/piresc/swastha/services/workers/usecase"
)

func main() {
	appName := "auth-service"
	configPath := config.GetEnv("CONFIG_PATH", "config/auth.env")
	configs, err := config.InitConfig(configPath)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)
	if nrApp != nil {
		if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Printf("Warning: New Relic connection timeout: %v", err)
		}
	}

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		zap.String("app", appName),
		zap.String("version", configs.App.Version),
		zap.String("environment", configs.App.Environment),
		zap.String("otp_store", configs.Storage.OTPStore),
		zap.String("user_store", configs.Storage.UserStore),
		zap.String("otp_mode", configs.OTP.Mode),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown := server.NewShutdownManager(zapLogger)
	healthService := health.NewHealthService()

	// Backing stores
	deps, err := initDependencies(ctx, configs, zapLogger, shutdown, healthService)
	if err != nil {
		zapLogger.Fatal("Failed to initialize dependencies", zap.Error(err))
	}

	// Initialize UseCases
	authUC := authusecase.NewAuthUC(
		deps.otpRepo,
		deps.userRepo,
		deps.sender,
		deps.publisher,
		deps.phoneLimiter,
		configs,
	)
	workerUC := workerusecase.NewWorkerUC(deps.workerRepo)

	// Initialize handlers
	authHandler := authhandler.NewHandler(authhttp.NewAuthHandler(authUC), deps.ipLimiter, configs)
	workerHandler := workerhandler.NewHandler(workerhttp.NewWorkerHandler(workerUC), configs)

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = time.Duration(configs.Server.ReadTimeout) * time.Second
	e.Server.WriteTimeout = time.Duration(configs.Server.WriteTimeout) * time.Second

	// Add middlewares
	e.Use(middleware.RequestIDMiddleware())
	e.Use(middleware.NewRelicMiddleware(nrApp))
	e.Use(logger.ZapEchoMiddleware(zapLogger))
	e.Use(middleware.PanicRecoveryMiddleware(zapLogger))

	// Register health endpoints
	health.RegisterHealthEndpoints(e, appName, configs.App.Version, healthService)

	// Register service routes
	authHandler.RegisterRoutes(e)
	workerHandler.RegisterRoutes(e)

	// Registered last so it runs first on shutdown
	shutdown.Register("background", func(context.Context) error {
		cancel()
		return nil
	})

	addr := fmt.Sprintf("%s:%d", configs.Server.Host, configs.Server.Port)
	srv := server.NewGracefulServer(e, zapLogger, addr,
		time.Duration(configs.Server.ShutdownTimeout)*time.Second, shutdown)

	if err := srv.Start(); err != nil {
		zapLogger.Error("Server stopped with error",
			zap.String("app", appName),
			zap.Error(err),
		)
	}

	if nrApp != nil {
		nrApp.Shutdown(10 * time.Second)
	}
	_ = zapLogger.Close()
}

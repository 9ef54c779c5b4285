package main

import (
	"context"
	"fmt"
	"time"

	"github.com/piresc/swastha/internal/pkg/circuitbreaker"
	"github.com/piresc/swastha/internal/pkg/constants"
	"github.com/piresc/swastha/internal/pkg/database"
	"github.com/piresc/swastha/internal/pkg/health"
	"github.com/piresc/swastha/internal/pkg/logger"
	"github.com/piresc/swastha/internal/pkg/models"
	nsqpkg "github.com/piresc/swastha/internal/pkg/nsq"
	"github.com/piresc/swastha/internal/pkg/ratelimit"
	"github.com/piresc/swastha/internal/pkg/retry"
	"github.com/piresc/swastha/internal/pkg/server"
	"github.com/piresc/swastha/services/auth"
	"github.com/piresc/swastha/services/auth/gateway"
	authrepo "github.com/piresc/swastha/services/auth/repository"
	"github.com/piresc/swastha/services/workers"
	workerrepo "github.com/piresc/swastha/services/workers/repository"
)

// dependencies are the stores and gateways selected by configuration
type dependencies struct {
	otpRepo      auth.OTPRepo
	userRepo     auth.UserRepo
	workerRepo   workers.WorkerRepo
	sender       auth.OTPSender
	publisher    auth.EventPublisher
	phoneLimiter ratelimit.Limiter
	ipLimiter    ratelimit.Limiter
}

// initDependencies connects the configured backends. Every opened resource
// is registered with shutdown and, when it can fail at runtime, with healthService.
func initDependencies(
	ctx context.Context,
	configs *models.Config,
	zapLogger *logger.ZapLogger,
	shutdown *server.ShutdownManager,
	healthService *health.HealthService,
) (*dependencies, error) {
	deps := &dependencies{}

	if err := initOTPStore(ctx, configs, deps, shutdown, healthService); err != nil {
		return nil, err
	}
	if err := initUserStore(ctx, configs, deps, shutdown, healthService); err != nil {
		return nil, err
	}

	switch configs.OTP.Mode {
	case models.OTPModeTwilio:
		sender, err := gateway.NewTwilioSender(configs.Twilio, configs.OTP.TTL())
		if err != nil {
			return nil, err
		}
		deps.sender = sender.WithBreaker(
			circuitbreaker.New(circuitbreaker.DefaultConfig("twilio"), zapLogger))
	default:
		zapLogger.Warn("OTP codes are written to the log, do not use in production")
		deps.sender = gateway.NewConsoleSender(zapLogger)
	}

	if configs.NSQ.Address == "" {
		zapLogger.Info("NSQ address not set, user events are not published")
		deps.publisher = gateway.NoopPublisher{}
		return deps, nil
	}

	producer, err := nsqpkg.NewProducer(configs.NSQ.Address)
	if err != nil {
		return nil, err
	}
	shutdown.Register("nsq", func(context.Context) error {
		producer.Stop()
		return nil
	})
	healthService.AddChecker("nsq", health.CheckerFunc(func(context.Context) error {
		return producer.Ping()
	}))
	deps.publisher = gateway.NewNSQPublisher(producer, retry.New(retry.DefaultConfig(), zapLogger))

	return deps, nil
}

func initOTPStore(
	ctx context.Context,
	configs *models.Config,
	deps *dependencies,
	shutdown *server.ShutdownManager,
	healthService *health.HealthService,
) error {
	if configs.Storage.OTPStore == models.StoreRedis {
		redisClient, err := database.NewRedisClient(configs.Redis)
		if err != nil {
			return err
		}
		shutdown.Register("redis", func(context.Context) error {
			return redisClient.Close()
		})
		healthService.AddChecker("redis", health.CheckerFunc(redisClient.Ping))

		deps.otpRepo = authrepo.NewOTPRedisRepo(redisClient, configs.OTP.BcryptCost, configs.OTP.MaxAttempts)
		deps.phoneLimiter = ratelimit.NewRedisLimiter(redisClient.GetClient(),
			constants.RateScopePhone, configs.OTP.RateLimit, configs.OTP.Window())
		deps.ipLimiter = ratelimit.NewRedisLimiter(redisClient.GetClient(),
			constants.RateScopeIP, configs.OTP.IPRateLimit, configs.OTP.Window())
		return nil
	}

	interval := time.Duration(configs.OTP.JanitorInterval) * time.Second
	otpRepo := authrepo.NewOTPMemoryRepo(configs.OTP.MaxAttempts)
	phoneLimiter := ratelimit.NewMemoryLimiter(configs.OTP.RateLimit, configs.OTP.Window())
	ipLimiter := ratelimit.NewMemoryLimiter(configs.OTP.IPRateLimit, configs.OTP.Window())

	go otpRepo.RunJanitor(ctx, interval)
	go sweepLimiters(ctx, interval, phoneLimiter, ipLimiter)

	deps.otpRepo = otpRepo
	deps.phoneLimiter = phoneLimiter
	deps.ipLimiter = ipLimiter
	return nil
}

func initUserStore(
	ctx context.Context,
	configs *models.Config,
	deps *dependencies,
	shutdown *server.ShutdownManager,
	healthService *health.HealthService,
) error {
	if configs.Storage.UserStore != models.StorePostgres {
		deps.userRepo = authrepo.NewUserMemoryRepo()
		deps.workerRepo = workerrepo.NewWorkerMemoryRepo()
		return nil
	}

	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		return err
	}
	shutdown.Register("postgres", func(context.Context) error {
		return postgresClient.Close()
	})

	schemaCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := postgresClient.EnsureSchema(schemaCtx); err != nil {
		return fmt.Errorf("postgres schema: %w", err)
	}
	healthService.AddChecker("postgres", health.CheckerFunc(postgresClient.Ping))

	deps.userRepo = authrepo.NewUserPostgresRepo(postgresClient)
	deps.workerRepo = workerrepo.NewWorkerPostgresRepo(postgresClient)
	return nil
}

// sweepLimiters drops expired rate windows until ctx is done
func sweepLimiters(ctx context.Context, interval time.Duration, limiters ...*ratelimit.MemoryLimiter) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, l := range limiters {
				l.Sweep()
			}
		}
	}
}

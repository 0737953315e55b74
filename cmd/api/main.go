package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/token-auth-service/internal/api/http"
	"github.com/spec-kit/token-auth-service/internal/api/http/handlers"
	"github.com/spec-kit/token-auth-service/internal/auth"
	"github.com/spec-kit/token-auth-service/internal/config"
	"github.com/spec-kit/token-auth-service/internal/events"
	"github.com/spec-kit/token-auth-service/internal/observability"
	"github.com/spec-kit/token-auth-service/internal/persistence"
	"github.com/spec-kit/token-auth-service/internal/repository"
	"github.com/spec-kit/token-auth-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	signingKey, err := auth.NewSigningKey(cfg.Auth.JWTSecret)
	if err != nil {
		logger.Fatal("invalid AUTH_JWT_SECRET", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), persistence.DefaultMigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics("token_auth")
	dispatcher := events.NewInMemoryDispatcher()
	events.RegisterAuditLogger(dispatcher, logger)

	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	userRepo := repository.NewCachedUserRepository(
		repository.NewUserRepository(pg.PoolHandle()),
		redis.Handle(),
		cfg.Redis.UserCacheTTL(),
		logger,
	)

	if !pg.Configured() {
		logger.Warn("no user store configured; POST /login answers 503")
	}
	if cfg.Seed.Enabled && pg.Configured() {
		seeder := service.NewSeedService(userRepo, hasher, cfg.Seed, logger, dispatcher)
		if _, err := seeder.Run(ctx); err != nil {
			logger.Fatal("failed to seed default users", zap.Error(err))
		}
	}

	issuer := auth.NewTokenIssuer(signingKey, cfg.Auth.TokenTTL())
	validator := auth.NewTokenValidator(signingKey, auth.WithLeeway(cfg.Auth.TokenLeeway()))

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo: userRepo,
		Hasher:   hasher,
		Issuer:   issuer,
		Logger:   logger,
		Metrics:  metrics,
		Events:   dispatcher,
	})
	gate := auth.NewGate(validator, auth.GateDependencies{
		Logger:  logger,
		Metrics: metrics,
		Events:  dispatcher,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler(logger),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	dependencies := map[string]handlers.Pinger{"postgres": pg, "redis": nil}
	if redis.Handle() != nil {
		dependencies["redis"] = redis
	}

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dependencies),
		Login:   handlers.NewLoginHandler(authService),
		Account: handlers.NewAccountHandler(),
		Gate:    gate,
		Metrics: metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hrdash/internal/access"
	"hrdash/internal/activity"
	"hrdash/internal/config"
	"hrdash/internal/httpapi"
	"hrdash/internal/hub"
	"hrdash/internal/identity"
	"hrdash/internal/logging"
	"hrdash/internal/role"
	"hrdash/internal/store"
	"hrdash/internal/store/memory"
	"hrdash/internal/store/postgres"
	"hrdash/internal/telemetry"
	"hrdash/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "hr-service"

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, serviceName)

	shutdownTelemetry := telemetry.Setup(serviceName, logger)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTelemetry(ctx)
	}()

	var st store.Store
	switch cfg.StoreDriver {
	case "memory":
		logger.Warn().Msg("using in-memory store; data is lost on exit")
		st = memory.NewStore()
	case "postgres":
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("db connect")
		}
		defer pool.Close()
		if cfg.Migrate {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			err := migrations.Apply(ctx, pool)
			cancel()
			if err != nil {
				logger.Fatal().Err(err).Msg("apply migrations")
			}
			logger.Info().Msg("migrations applied")
		}
		st = postgres.NewStore(pool)
	default:
		logger.Fatal().Str("driver", cfg.StoreDriver).Msg("unknown STORE_DRIVER")
	}

	var recorder *activity.Recorder
	if cfg.ActivityAMQPURL != "" {
		publisher, err := activity.NewRabbitPublisher(cfg.ActivityAMQPURL, cfg.ActivityExchange)
		if err != nil {
			logger.Fatal().Err(err).Msg("activity broker")
		}
		defer publisher.Close()
		recorder = activity.NewRecorder(st, publisher, logger)
		logger.Info().Str("exchange", cfg.ActivityExchange).Msg("activity fan-out enabled")
	} else {
		recorder = activity.NewRecorder(st, nil, logger)
	}

	tokens, err := identity.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		logger.Fatal().Err(err).Msg("token manager")
	}

	events := hub.New(logger)
	roles := role.NewCache(role.NewResolver(st, logger))
	gateway := access.NewGateway(st, access.Options{
		Recorder: recorder,
		Notifier: events,
		Roles:    roles,
		Logger:   logger,
	})
	limiter := httpapi.NewRateLimiter(httpapi.RateLimitConfig{
		IPPerMinute:   cfg.RateLimitPerMinute,
		IPBurst:       cfg.RateLimitBurst,
		UserPerMinute: cfg.UserRateLimitPerMinute,
		UserBurst:     cfg.UserRateLimitBurst,
		TrustProxy:    cfg.TrustProxy,
	})
	handler := httpapi.NewHandler(httpapi.Options{
		Gateway:  gateway,
		Identity: identity.NewProvider(st, tokens, 0, cfg.SessionLifetime),
		Roles:    roles,
		Hub:      events,
		Limiter:  limiter,
		Logger:   logger,
	})

	otelHandler := otelhttp.NewHandler(httpapi.LoggingMiddleware(logger, limiter.Middleware(handler.Routes())), serviceName)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      otelHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Str("store", cfg.StoreDriver).Msg("hr-service listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/infrastructure/clients/redis"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/infrastructure/observability"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/session"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/pkg/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	observability.InitLogger(cfg.App.Name, cfg.App.Env)
	logger := observability.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize metrics")
		return 1
	}

	tokens, closeTokens, err := openTokenStore(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open session storage: %v\n", err)
		return 1
	}
	defer closeTokens()

	a := newApp(cfg, tokens, metrics, os.Stdout, os.Stderr)
	return a.run(ctx, os.Args[1:])
}

// openTokenStore selects where the bearer token lives between runs
func openTokenStore(ctx context.Context, cfg *config.Config) (session.TokenStore, func(), error) {
	logger := observability.GetLogger()

	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		client, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug().Str("addr", cfg.Redis.RedisAddr()).Msg("session stored in Redis")
		return session.NewRedisTokenStore(client), func() { _ = client.Close() }, nil
	case config.SessionBackendMemory:
		return session.NewMemoryTokenStore(), func() {}, nil
	default:
		logger.Debug().Str("path", cfg.Session.File).Msg("session stored on disk")
		return session.NewFileTokenStore(cfg.Session.File), func() {}, nil
	}
}

package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/infrastructure/observability"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/pkg/config"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/pkg/retry"
)

const pingTimeout = 3 * time.Second

// Client represents a Redis client
type Client struct {
	client    *redis.Client
	keyPrefix string
}

// NewClient creates a new Redis client and checks the connection with
// exponential backoff
func NewClient(ctx context.Context, cfg *config.RedisConfig) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	retryConfig := retry.DefaultConfig()
	retryConfig.MaxAttempts = cfg.ConnectAttempts
	logger := observability.GetLogger()
	err := retry.Do(ctx, retryConfig, "redis",
		func(ctx context.Context) error {
			pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
			defer cancel()
			return client.Ping(pingCtx).Err()
		},
		func(attempt int, err error, nextDelay time.Duration) {
			logger.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", nextDelay).Str("addr", cfg.RedisAddr()).Msg("Redis connection attempt failed")
		},
	)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.RedisAddr(), err)
	}

	logger.Debug().Str("addr", cfg.RedisAddr()).Msg("Connected to Redis")
	return &Client{client: client, keyPrefix: cfg.KeyPrefix}, nil
}

// Client returns the underlying Redis client
func (c *Client) Client() *redis.Client {
	return c.client
}

// Key prefixes name with the configured namespace
func (c *Client) Key(name string) string {
	return c.keyPrefix + name
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.client.Close()
}

// Ping verifies the connection to Redis
func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

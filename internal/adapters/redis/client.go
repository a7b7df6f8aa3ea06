package redis

import (
	"context"
	"fmt"
	"time"

	redis "github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/selivandex/crypto-news/internal/adapters/config"
	"github.com/selivandex/crypto-news/pkg/logger"
)

// Client wraps a standard Redis client used as the cache backend.
type Client struct {
	cache *redis.Client
}

// New creates new Redis client
func New(cfg *config.RedisConfig) (*Client, error) {
	cacheClient := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := cacheClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("redis cache client initialized",
		zap.String("address", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		zap.Int("db", cfg.DB),
	)

	return &Client{cache: cacheClient}, nil
}

// Close closes redis connections
func (c *Client) Close() error {
	if c.cache != nil {
		logger.Info("closing redis cache client")
		if err := c.cache.Close(); err != nil {
			return fmt.Errorf("failed to close redis cache: %w", err)
		}
	}
	return nil
}

// Health checks redis health
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := c.cache.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}

// Get retrieves a value by key. Returns redis.Nil error on missing keys.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.cache.Get(ctx, key).Result()
}

// Set stores a value with the given expiration as a backend sweep hint.
// Logical expiry is enforced by the reader, not by this TTL.
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.cache.Set(ctx, key, value, expiration).Err()
}

// IsMiss reports whether err signals a missing key rather than a transport failure.
func IsMiss(err error) bool {
	return err == redis.Nil
}

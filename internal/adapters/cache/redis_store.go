package cache

import (
	"context"
	"time"

	redisAdapter "github.com/selivandex/crypto-news/internal/adapters/redis"
)

// RedisStore adapts the redis client to the cache Store interface.
type RedisStore struct {
	client *redisAdapter.Client
}

// NewRedisStore creates new redis-backed store
func NewRedisStore(client *redisAdapter.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key)
	if err != nil {
		if redisAdapter.IsMiss(err) {
			return "", ErrNotFound
		}
		return "", err
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return s.client.Set(ctx, key, value, expiration)
}

package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore backs the key-value abstraction with Redis.  TTLs are
// delegated to Redis expiry, so stale entries (an abandoned pending
// payment, an unconsumed payment result) clean themselves up without a
// sweeper.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore wraps an existing client.  The client must be non-nil;
// callers that failed to connect should fall back to NewMemoryStore.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	if rdb == nil {
		panic("nil redis client passed to NewRedisStore")
	}
	return &RedisStore{rdb: rdb}
}

// Get returns the value for key, or ErrNotFound when absent.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

// Set stores value under key.  A non-positive ttl stores without
// expiry.
func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return s.rdb.Set(ctx, key, value, 0).Err()
	}
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

// Remove deletes key.  Removing an absent key is not an error.
func (s *RedisStore) Remove(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheAdapter - JSON-кэш с TTL поверх Redis
type CacheAdapter struct {
	client *redis.Client
}

func NewCacheAdapter(client *redis.Client) (*CacheAdapter, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	return &CacheAdapter{client: client}, nil
}

// Get десериализует значение по ключу в dest.
// Промах кэша - это (false, nil), а не ошибка.
func (a *CacheAdapter) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := a.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read cache key %q: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached value for key %q: %w", key, err)
	}
	return true, nil
}

func (a *CacheAdapter) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for cache key %q: %w", key, err)
	}
	if err := a.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %q: %w", key, err)
	}
	return nil
}

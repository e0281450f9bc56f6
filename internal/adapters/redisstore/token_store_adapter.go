package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedTokenPrefix = "revoked_tokens:"

// TokenStoreAdapter хранит jti отозванных токенов в Redis.
// TTL записи равен остатку жизни токена, дальше запись не нужна.
type TokenStoreAdapter struct {
	client *redis.Client
}

func NewTokenStoreAdapter(client *redis.Client) (*TokenStoreAdapter, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	return &TokenStoreAdapter{client: client}, nil
}

func (a *TokenStoreAdapter) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := a.client.Set(ctx, revokedTokenPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (a *TokenStoreAdapter) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := a.client.Get(ctx, revokedTokenPrefix+tokenID).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return true, nil
}

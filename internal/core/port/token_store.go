package port

import (
	"context"
	"time"
)

// TokenStorePort - хранилище отозванных токенов.
// Запись живет до истечения исходного срока токена.
type TokenStorePort interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

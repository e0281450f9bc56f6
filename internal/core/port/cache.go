package port

import (
	"context"
	"time"
)

// CachePort - кэш сериализованных ответов с TTL.
// Get возвращает false без ошибки при промахе.
type CachePort interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

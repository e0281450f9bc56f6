package usecase

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

// listCacheTTL - короткий TTL кэша списков: выдача может чуть отставать
// от записи, инвалидации по событиям нет
const listCacheTTL = 60 * time.Second

type FindPropertiesUseCase struct {
	storage port.PropertyStoragePort
	cache   port.CachePort
}

func NewFindPropertiesUseCase(storage port.PropertyStoragePort, cache port.CachePort) *FindPropertiesUseCase {
	return &FindPropertiesUseCase{storage: storage, cache: cache}
}

func (uc *FindPropertiesUseCase) Execute(ctx context.Context, filters domain.PropertyFilters, limit, offset int) (*domain.PaginatedProperties, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "FindProperties",
		"limit":    limit,
		"offset":   offset,
	})

	ucLogger.Info("Use case started", nil)

	cacheKey := listCacheKey(filters, limit, offset)
	if uc.cache != nil {
		var cached domain.PaginatedProperties
		hit, err := uc.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			// кэш не критичен - идем в базу
			ucLogger.Warn("Cache lookup failed", port.Fields{"error": err.Error()})
		} else if hit {
			ucLogger.Info("Use case finished from cache", port.Fields{"total_found": cached.TotalCount})
			return &cached, nil
		}
	}

	result, err := uc.storage.FindWithFilters(ctx, filters, limit, offset)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, cacheKey, result, listCacheTTL); err != nil {
			ucLogger.Warn("Failed to cache result", port.Fields{"error": err.Error()})
		}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_found":   result.TotalCount,
		"items_on_page": len(result.Items),
	})

	return result, nil
}

// listCacheKey строит стабильный ключ из сериализованных фильтров и пагинации
func listCacheKey(filters domain.PropertyFilters, limit, offset int) string {
	payload, _ := json.Marshal(struct {
		Filters domain.PropertyFilters
		Limit   int
		Offset  int
	}{filters, limit, offset})

	sum := md5.Sum(payload)
	return fmt.Sprintf("properties:list:%s", hex.EncodeToString(sum[:]))
}

package usecase

import (
	"context"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/google/uuid"
)

// GetOwnerStatsUseCase считает агрегаты по объявлениям владельца:
// всего объектов, активных, просмотров, заявок
type GetOwnerStatsUseCase struct {
	storage port.PropertyStoragePort
}

func NewGetOwnerStatsUseCase(storage port.PropertyStoragePort) *GetOwnerStatsUseCase {
	return &GetOwnerStatsUseCase{storage: storage}
}

func (uc *GetOwnerStatsUseCase) Execute(ctx context.Context, ownerID uuid.UUID) (*domain.OwnerStats, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetOwnerStats",
		"owner_id": ownerID.String(),
	})

	stats, err := uc.storage.OwnerStats(ctx, ownerID)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Owner stats computed", port.Fields{
		"total_properties": stats.TotalProperties,
		"active_listings":  stats.ActiveListings,
	})
	return stats, nil
}

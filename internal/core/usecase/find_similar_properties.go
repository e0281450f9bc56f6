package usecase

import (
	"context"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/google/uuid"
)

type FindSimilarPropertiesUseCase struct {
	storage port.PropertyStoragePort
}

func NewFindSimilarPropertiesUseCase(storage port.PropertyStoragePort) *FindSimilarPropertiesUseCase {
	return &FindSimilarPropertiesUseCase{storage: storage}
}

// Execute подбирает похожие объявления: та же категория и, если у якорного
// объекта есть координаты, тот же location_hash
func (uc *FindSimilarPropertiesUseCase) Execute(ctx context.Context, id uuid.UUID, limit int) ([]domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "FindSimilarProperties",
		"property_id": id.String(),
		"limit":       limit,
	})

	anchor, err := uc.storage.GetByID(ctx, id)
	if err != nil {
		ucLogger.Error("Failed to load anchor property", err, nil)
		return nil, err
	}

	similar, err := uc.storage.FindSimilar(ctx, anchor, limit)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Similar properties found", port.Fields{"count": len(similar)})
	return similar, nil
}

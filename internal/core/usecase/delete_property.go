package usecase

import (
	"context"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"

	"github.com/google/uuid"
)

type DeletePropertyUseCase struct {
	storage port.PropertyStoragePort
}

func NewDeletePropertyUseCase(storage port.PropertyStoragePort) *DeletePropertyUseCase {
	return &DeletePropertyUseCase{storage: storage}
}

// Execute удаляет объявление; просмотры и заявки уходят каскадом на уровне БД
func (uc *DeletePropertyUseCase) Execute(ctx context.Context, id uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "DeleteProperty",
		"property_id": id.String(),
	})

	if err := uc.storage.Delete(ctx, id); err != nil {
		ucLogger.Error("Storage returned an error during delete", err, nil)
		return err
	}

	ucLogger.Info("Property deleted", nil)
	return nil
}

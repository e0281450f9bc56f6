package usecase

import (
	"context"
	"fmt"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/google/uuid"
)

// TrackPropertyViewUseCase фиксирует просмотр объявления.
// Дедупликация по (property, ip) целиком лежит на атомарной вставке
// в хранилище; повторный просмотр - такой же успешный исход.
type TrackPropertyViewUseCase struct {
	storage port.PropertyStoragePort
}

func NewTrackPropertyViewUseCase(storage port.PropertyStoragePort) *TrackPropertyViewUseCase {
	return &TrackPropertyViewUseCase{storage: storage}
}

func (uc *TrackPropertyViewUseCase) Execute(ctx context.Context, propertyID uuid.UUID, ipAddress, userAgent string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "TrackPropertyView",
		"property_id": propertyID.String(),
		"ip":          ipAddress,
	})

	// Проверяем существование объекта: для неизвестного id нужен NotFound,
	// а не тихая вставка в никуда
	if _, err := uc.storage.GetByID(ctx, propertyID); err != nil {
		ucLogger.Error("Failed to load property", err, nil)
		return err
	}

	view := &domain.PropertyView{
		ID:         uuid.New(),
		PropertyID: propertyID,
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
	}

	created, err := uc.storage.TrackView(ctx, view)
	if err != nil {
		ucLogger.Error("Storage returned an error during view tracking", err, nil)
		return fmt.Errorf("failed to track view: %w", err)
	}

	ucLogger.Info("View tracked", port.Fields{"created": created})
	return nil
}

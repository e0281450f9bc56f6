package usecase

import (
	"context"
	"fmt"
	"time"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/google/uuid"
)

// DefaultPromotionDays - длина featured-окна, если клиент не передал days
const DefaultPromotionDays = 7

// PromotePropertyUseCase включает featured-режим для объявления.
// Повторный вызов сбрасывает окно от "сейчас", а не продлевает старое.
// Отрицательные days не валидируются и дают окно в прошлом - это
// зафиксированный граничный случай, а не баг.
type PromotePropertyUseCase struct {
	storage   port.PropertyStoragePort
	publisher port.EventPublisherPort
	now       func() time.Time
}

func NewPromotePropertyUseCase(storage port.PropertyStoragePort, publisher port.EventPublisherPort) *PromotePropertyUseCase {
	return &PromotePropertyUseCase{
		storage:   storage,
		publisher: publisher,
		now:       time.Now,
	}
}

func (uc *PromotePropertyUseCase) Execute(ctx context.Context, id uuid.UUID, days int) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "PromoteProperty",
		"property_id": id.String(),
		"days":        days,
	})

	ucLogger.Info("Use case started", nil)

	if days == 0 {
		days = DefaultPromotionDays
	}

	property, err := uc.storage.GetByID(ctx, id)
	if err != nil {
		ucLogger.Error("Failed to load property", err, nil)
		return nil, err
	}

	featuredUntil := uc.now().Add(time.Duration(days) * 24 * time.Hour)
	if err := uc.storage.Promote(ctx, id, featuredUntil); err != nil {
		ucLogger.Error("Storage returned an error during promote", err, nil)
		return nil, fmt.Errorf("failed to promote property: %w", err)
	}

	property.IsFeatured = true
	property.FeaturedUntil = &featuredUntil

	if uc.publisher != nil {
		event := map[string]interface{}{
			"property_id":    property.ID.String(),
			"featured_until": featuredUntil,
		}
		if err := uc.publisher.Publish(ctx, port.RoutingKeyListingPromoted, event); err != nil {
			ucLogger.Warn("Failed to publish listing.promoted event", port.Fields{"error": err.Error()})
		}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"featured_until": featuredUntil})
	return property, nil
}

package usecase

import (
	"context"
	"fmt"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/google/uuid"
)

// InquirePropertyUseCase создает заявку покупателя по объявлению.
// Статус принудительно pending, что бы ни прислал клиент.
type InquirePropertyUseCase struct {
	storage   port.PropertyStoragePort
	publisher port.EventPublisherPort
}

func NewInquirePropertyUseCase(storage port.PropertyStoragePort, publisher port.EventPublisherPort) *InquirePropertyUseCase {
	return &InquirePropertyUseCase{storage: storage, publisher: publisher}
}

func (uc *InquirePropertyUseCase) Execute(ctx context.Context, propertyID uuid.UUID, draft domain.InquiryDraft) (*domain.PropertyInquiry, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "InquireProperty",
		"property_id": propertyID.String(),
	})

	ucLogger.Info("Use case started", nil)

	if _, err := uc.storage.GetByID(ctx, propertyID); err != nil {
		ucLogger.Error("Failed to load property", err, nil)
		return nil, err
	}

	inquiry := &domain.PropertyInquiry{
		ID:         uuid.New(),
		PropertyID: propertyID,
		Name:       draft.Name,
		Email:      draft.Email,
		Phone:      draft.Phone,
		Message:    draft.Message,
		Status:     domain.InquiryStatusPending,
	}

	if err := uc.storage.CreateInquiry(ctx, inquiry); err != nil {
		ucLogger.Error("Storage returned an error during inquiry create", err, nil)
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}

	if uc.publisher != nil {
		event := map[string]interface{}{
			"inquiry_id":  inquiry.ID.String(),
			"property_id": propertyID.String(),
			"email":       inquiry.Email,
		}
		if err := uc.publisher.Publish(ctx, port.RoutingKeyInquiryCreated, event); err != nil {
			ucLogger.Warn("Failed to publish inquiry.created event", port.Fields{"error": err.Error()})
		}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"inquiry_id": inquiry.ID.String()})
	return inquiry, nil
}

package usecase

import (
	"context"
	"fmt"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/google/uuid"
)

// propertiesNamespace - под этим префиксом лежат загруженные картинки объявлений
const propertiesNamespace = "properties"

// CreatePropertyUseCase создает объявление: для аутентифицированного
// пользователя лениво заводит профиль агента, сохраняет загруженные
// картинки в blob-хранилище и публикует событие listing.created.
type CreatePropertyUseCase struct {
	storage   port.PropertyStoragePort
	agents    port.AgentStoragePort
	files     port.FileStoragePort
	publisher port.EventPublisherPort
}

func NewCreatePropertyUseCase(
	storage port.PropertyStoragePort,
	agents port.AgentStoragePort,
	files port.FileStoragePort,
	publisher port.EventPublisherPort,
) *CreatePropertyUseCase {
	return &CreatePropertyUseCase{
		storage:   storage,
		agents:    agents,
		files:     files,
		publisher: publisher,
	}
}

func (uc *CreatePropertyUseCase) Execute(ctx context.Context, identity *domain.Identity, draft domain.PropertyDraft, uploads []port.UploadedFile) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":      "CreateProperty",
		"title":         draft.Title,
		"category":      draft.Category,
		"uploads":       len(uploads),
		"authenticated": identity != nil,
	})

	ucLogger.Info("Use case started", nil)

	// Аутентифицированному создателю лениво заводим профиль агента.
	// Создание без аутентификации разрешено - агент остается пустым.
	var agentID *uuid.UUID
	var ownerID *uuid.UUID
	if identity != nil {
		agent, err := uc.agents.GetOrCreateByUserID(ctx, identity.UserID)
		if err != nil {
			ucLogger.Error("Failed to resolve agent profile", err, nil)
			return nil, fmt.Errorf("failed to resolve agent profile: %w", err)
		}
		agentID = &agent.ID
		ownerID = &identity.UserID
	} else if draft.AgentID != nil {
		agentID = draft.AgentID
	}

	// Загруженные файлы перекрывают images из тела запроса,
	// если загружен хотя бы один файл
	images := draft.Images
	if len(uploads) > 0 {
		uploaded := make([]string, 0, len(uploads))
		for _, file := range uploads {
			url, err := uc.files.SaveFile(ctx, propertiesNamespace, file.Filename, file.Content)
			if err != nil {
				ucLogger.Error("Failed to store uploaded image", err, port.Fields{"filename": file.Filename})
				return nil, fmt.Errorf("failed to store uploaded image %q: %w", file.Filename, err)
			}
			uploaded = append(uploaded, url)
		}
		images = uploaded
	}
	if images == nil {
		images = []string{}
	}

	isAvailable := true
	if draft.IsAvailable != nil {
		isAvailable = *draft.IsAvailable
	}

	property := &domain.Property{
		ID:             uuid.New(),
		Title:          draft.Title,
		Description:    draft.Description,
		Price:          draft.Price,
		PriceType:      draft.PriceType,
		Location:       draft.Location,
		Latitude:       draft.Latitude,
		Longitude:      draft.Longitude,
		Bedrooms:       draft.Bedrooms,
		Bathrooms:      draft.Bathrooms,
		Area:           draft.Area,
		Category:       draft.Category,
		AgentID:        agentID,
		OwnerID:        ownerID,
		IsAvailable:    isAvailable,
		Amenities:      draft.Amenities.Resolve(nil),
		Images:         images,
		VideoURL:       draft.VideoURL,
		VirtualTourURL: draft.VirtualTourURL,
		YearBuilt:      draft.YearBuilt,
		ParkingSpaces:  draft.ParkingSpaces,
		Furnished:      draft.Furnished,
		PetFriendly:    draft.PetFriendly,
	}

	if err := uc.storage.Create(ctx, property); err != nil {
		ucLogger.Error("Storage returned an error during create", err, nil)
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	// Событие публикуем best-effort: неудача не откатывает создание
	if uc.publisher != nil {
		event := map[string]interface{}{
			"property_id": property.ID.String(),
			"title":       property.Title,
			"category":    property.Category,
			"price":       property.Price,
			"price_type":  property.PriceType,
		}
		if err := uc.publisher.Publish(ctx, port.RoutingKeyListingCreated, event); err != nil {
			ucLogger.Warn("Failed to publish listing.created event", port.Fields{"error": err.Error()})
		}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"property_id": property.ID.String()})
	return property, nil
}

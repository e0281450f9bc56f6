package usecase

import (
	"context"
	"fmt"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/google/uuid"
)

// UpdatePropertyUseCase применяет частичное обновление к объявлению.
// Работает по схеме load-then-save: nil-поля патча не трогают текущие значения.
type UpdatePropertyUseCase struct {
	storage port.PropertyStoragePort
	files   port.FileStoragePort
}

func NewUpdatePropertyUseCase(storage port.PropertyStoragePort, files port.FileStoragePort) *UpdatePropertyUseCase {
	return &UpdatePropertyUseCase{storage: storage, files: files}
}

func (uc *UpdatePropertyUseCase) Execute(ctx context.Context, id uuid.UUID, patch domain.PropertyPatch, uploads []port.UploadedFile) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "UpdateProperty",
		"property_id": id.String(),
	})

	ucLogger.Info("Use case started", nil)

	property, err := uc.storage.GetByID(ctx, id)
	if err != nil {
		ucLogger.Error("Failed to load property", err, nil)
		return nil, err
	}

	applyPropertyPatch(property, patch)

	// Новые загруженные файлы, как и при создании, перекрывают поле images
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
		property.Images = uploaded
	}

	if err := uc.storage.Update(ctx, property); err != nil {
		ucLogger.Error("Storage returned an error during update", err, nil)
		return nil, fmt.Errorf("failed to update property: %w", err)
	}

	ucLogger.Info("Use case finished successfully", nil)
	return property, nil
}

func applyPropertyPatch(p *domain.Property, patch domain.PropertyPatch) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.PriceType != nil {
		p.PriceType = *patch.PriceType
	}
	if patch.Location != nil {
		p.Location = *patch.Location
	}
	if patch.Latitude != nil {
		p.Latitude = patch.Latitude
	}
	if patch.Longitude != nil {
		p.Longitude = patch.Longitude
	}
	if patch.Bedrooms != nil {
		p.Bedrooms = *patch.Bedrooms
	}
	if patch.Bathrooms != nil {
		p.Bathrooms = *patch.Bathrooms
	}
	if patch.Area != nil {
		p.Area = *patch.Area
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.AgentID != nil {
		p.AgentID = patch.AgentID
	}
	if patch.IsFeatured != nil {
		p.IsFeatured = *patch.IsFeatured
	}
	if patch.IsVerified != nil {
		p.IsVerified = *patch.IsVerified
	}
	if patch.IsAvailable != nil {
		p.IsAvailable = *patch.IsAvailable
	}
	if patch.Amenities != nil {
		// невалидная строка amenities откатывается на прежнее значение
		p.Amenities = patch.Amenities.Resolve(p.Amenities)
	}
	if patch.Images != nil {
		p.Images = *patch.Images
	}
	if patch.VideoURL != nil {
		p.VideoURL = *patch.VideoURL
	}
	if patch.VirtualTourURL != nil {
		p.VirtualTourURL = *patch.VirtualTourURL
	}
	if patch.YearBuilt != nil {
		p.YearBuilt = patch.YearBuilt
	}
	if patch.ParkingSpaces != nil {
		p.ParkingSpaces = *patch.ParkingSpaces
	}
	if patch.Furnished != nil {
		p.Furnished = *patch.Furnished
	}
	if patch.PetFriendly != nil {
		p.PetFriendly = *patch.PetFriendly
	}
}

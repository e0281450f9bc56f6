package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/google/uuid"
)

// Интерфейсы use case каталога объявлений. REST-хендлеры зависят от них,
// а не от конкретных реализаций - так их можно мокать в тестах.

type FindPropertiesUseCase interface {
	Execute(ctx context.Context, filters domain.PropertyFilters, limit, offset int) (*domain.PaginatedProperties, error)
}

type GetPropertyDetailsUseCase interface {
	Execute(ctx context.Context, id uuid.UUID) (*domain.Property, error)
}

type CreatePropertyUseCase interface {
	Execute(ctx context.Context, identity *domain.Identity, draft domain.PropertyDraft, uploads []port.UploadedFile) (*domain.Property, error)
}

type UpdatePropertyUseCase interface {
	Execute(ctx context.Context, id uuid.UUID, patch domain.PropertyPatch, uploads []port.UploadedFile) (*domain.Property, error)
}

type DeletePropertyUseCase interface {
	Execute(ctx context.Context, id uuid.UUID) error
}

type PromotePropertyUseCase interface {
	Execute(ctx context.Context, id uuid.UUID, days int) (*domain.Property, error)
}

type TrackPropertyViewUseCase interface {
	Execute(ctx context.Context, propertyID uuid.UUID, ipAddress, userAgent string) error
}

type InquirePropertyUseCase interface {
	Execute(ctx context.Context, propertyID uuid.UUID, draft domain.InquiryDraft) (*domain.PropertyInquiry, error)
}

type FindSimilarPropertiesUseCase interface {
	Execute(ctx context.Context, id uuid.UUID, limit int) ([]domain.Property, error)
}

type ListInquiriesUseCase interface {
	Execute(ctx context.Context, filters domain.InquiryFilters, limit, offset int) (*domain.PaginatedInquiries, error)
}

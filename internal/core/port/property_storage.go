package port

import (
	"context"
	"time"

	"listing-service/internal/core/domain"

	"github.com/google/uuid"
)

// PropertyStoragePort - контракт хранилища объявлений.
// TrackView обязан быть атомарным "insert if absent" на уникальном
// ключе (property_id, ip_address) - никаких check-then-insert на уровне приложения.
type PropertyStoragePort interface {
	FindWithFilters(ctx context.Context, filters domain.PropertyFilters, limit, offset int) (*domain.PaginatedProperties, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error)
	Create(ctx context.Context, property *domain.Property) error
	Update(ctx context.Context, property *domain.Property) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Promote выставляет is_featured=true и новое окно featured_until.
	// Повторный вызов перезаписывает окно, а не продлевает его.
	Promote(ctx context.Context, id uuid.UUID, featuredUntil time.Time) error

	// TrackView вставляет просмотр, молча поглощая дубликат по (property, ip).
	// Возвращает true, если строка была создана этим вызовом.
	TrackView(ctx context.Context, view *domain.PropertyView) (bool, error)

	CreateInquiry(ctx context.Context, inquiry *domain.PropertyInquiry) error
	FindInquiries(ctx context.Context, filters domain.InquiryFilters, limit, offset int) (*domain.PaginatedInquiries, error)

	// FindSimilar подбирает доступные объявления той же категории в той же
	// геолокации (по location_hash), исключая сам объект
	FindSimilar(ctx context.Context, anchor *domain.Property, limit int) ([]domain.Property, error)

	OwnerStats(ctx context.Context, ownerID uuid.UUID) (*domain.OwnerStats, error)
}

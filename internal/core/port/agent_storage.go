package port

import (
	"context"

	"listing-service/internal/core/domain"

	"github.com/google/uuid"
)

// AgentStoragePort - контракт хранилища профилей агентов
type AgentStoragePort interface {
	FindWithFilters(ctx context.Context, filters domain.AgentFilters, limit, offset int) (*domain.PaginatedAgents, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Agent, error)

	// GetOrCreateByUserID атомарно находит или создает профиль агента для
	// пользователя (INSERT ... ON CONFLICT, без отдельного read-then-write)
	GetOrCreateByUserID(ctx context.Context, userID uuid.UUID) (*domain.Agent, error)

	Create(ctx context.Context, agent *domain.Agent) error
	Update(ctx context.Context, agent *domain.Agent) error
	Delete(ctx context.Context, id uuid.UUID) error
}

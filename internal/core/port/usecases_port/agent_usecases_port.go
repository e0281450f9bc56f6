package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"

	"github.com/google/uuid"
)

type ListAgentsUseCase interface {
	Execute(ctx context.Context, filters domain.AgentFilters, limit, offset int) (*domain.PaginatedAgents, error)
}

type GetAgentUseCase interface {
	Execute(ctx context.Context, id uuid.UUID) (*domain.Agent, error)
}

type SaveAgentUseCase interface {
	Create(ctx context.Context, draft domain.AgentDraft) (*domain.Agent, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.AgentPatch) (*domain.Agent, error)
}

type DeleteAgentUseCase interface {
	Execute(ctx context.Context, id uuid.UUID) error
}

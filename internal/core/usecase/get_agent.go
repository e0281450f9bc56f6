package usecase

import (
	"context"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/google/uuid"
)

type GetAgentUseCase struct {
	storage port.AgentStoragePort
}

func NewGetAgentUseCase(storage port.AgentStoragePort) *GetAgentUseCase {
	return &GetAgentUseCase{storage: storage}
}

func (uc *GetAgentUseCase) Execute(ctx context.Context, id uuid.UUID) (*domain.Agent, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	agent, err := uc.storage.GetByID(ctx, id)
	if err != nil {
		logger.WithFields(port.Fields{"use_case": "GetAgent", "agent_id": id.String()}).
			Error("Storage returned an error", err, nil)
		return nil, err
	}

	return agent, nil
}

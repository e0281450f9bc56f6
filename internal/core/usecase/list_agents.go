package usecase

import (
	"context"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type ListAgentsUseCase struct {
	storage port.AgentStoragePort
}

func NewListAgentsUseCase(storage port.AgentStoragePort) *ListAgentsUseCase {
	return &ListAgentsUseCase{storage: storage}
}

func (uc *ListAgentsUseCase) Execute(ctx context.Context, filters domain.AgentFilters, limit, offset int) (*domain.PaginatedAgents, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "ListAgents",
		"limit":    limit,
		"offset":   offset,
	})

	result, err := uc.storage.FindWithFilters(ctx, filters, limit, offset)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Agents listed", port.Fields{"total_found": result.TotalCount})
	return result, nil
}

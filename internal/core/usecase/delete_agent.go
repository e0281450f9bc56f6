package usecase

import (
	"context"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"

	"github.com/google/uuid"
)

type DeleteAgentUseCase struct {
	storage port.AgentStoragePort
}

func NewDeleteAgentUseCase(storage port.AgentStoragePort) *DeleteAgentUseCase {
	return &DeleteAgentUseCase{storage: storage}
}

// Execute удаляет профиль агента; ссылки из объявлений обнуляются на уровне БД
func (uc *DeleteAgentUseCase) Execute(ctx context.Context, id uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "DeleteAgent",
		"agent_id": id.String(),
	})

	if err := uc.storage.Delete(ctx, id); err != nil {
		ucLogger.Error("Storage returned an error during delete", err, nil)
		return err
	}

	ucLogger.Info("Agent deleted", nil)
	return nil
}

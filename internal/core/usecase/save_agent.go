package usecase

import (
	"context"
	"fmt"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/google/uuid"
)

// SaveAgentUseCase - создание и частичное обновление профилей агентов
type SaveAgentUseCase struct {
	storage port.AgentStoragePort
}

func NewSaveAgentUseCase(storage port.AgentStoragePort) *SaveAgentUseCase {
	return &SaveAgentUseCase{storage: storage}
}

func (uc *SaveAgentUseCase) Create(ctx context.Context, draft domain.AgentDraft) (*domain.Agent, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SaveAgent",
		"user_id":  draft.UserID.String(),
	})

	ucLogger.Info("Creating agent profile", nil)

	commissionRate := domain.DefaultCommissionRate
	if draft.CommissionRate != nil {
		commissionRate = *draft.CommissionRate
	}
	isActive := true
	if draft.IsActive != nil {
		isActive = *draft.IsActive
	}
	socialLinks := draft.SocialLinks
	if socialLinks == nil {
		socialLinks = map[string]string{}
	}

	agent := &domain.Agent{
		ID:             uuid.New(),
		UserID:         draft.UserID,
		Company:        draft.Company,
		LicenseNumber:  draft.LicenseNumber,
		CommissionRate: commissionRate,
		Bio:            draft.Bio,
		Website:        draft.Website,
		SocialLinks:    socialLinks,
		IsActive:       isActive,
	}

	if err := uc.storage.Create(ctx, agent); err != nil {
		ucLogger.Error("Storage returned an error during create", err, nil)
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	ucLogger.Info("Agent profile created", port.Fields{"agent_id": agent.ID.String()})
	return agent, nil
}

func (uc *SaveAgentUseCase) Update(ctx context.Context, id uuid.UUID, patch domain.AgentPatch) (*domain.Agent, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SaveAgent",
		"agent_id": id.String(),
	})

	agent, err := uc.storage.GetByID(ctx, id)
	if err != nil {
		ucLogger.Error("Failed to load agent", err, nil)
		return nil, err
	}

	if patch.Company != nil {
		agent.Company = *patch.Company
	}
	if patch.LicenseNumber != nil {
		agent.LicenseNumber = *patch.LicenseNumber
	}
	if patch.CommissionRate != nil {
		agent.CommissionRate = *patch.CommissionRate
	}
	if patch.Bio != nil {
		agent.Bio = *patch.Bio
	}
	if patch.Website != nil {
		agent.Website = *patch.Website
	}
	if patch.SocialLinks != nil {
		agent.SocialLinks = *patch.SocialLinks
	}
	if patch.IsActive != nil {
		agent.IsActive = *patch.IsActive
	}

	if err := uc.storage.Update(ctx, agent); err != nil {
		ucLogger.Error("Storage returned an error during update", err, nil)
		return nil, fmt.Errorf("failed to update agent: %w", err)
	}

	ucLogger.Info("Agent profile updated", nil)
	return agent, nil
}

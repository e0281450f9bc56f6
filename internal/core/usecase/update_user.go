package usecase

import (
	"context"
	"fmt"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/google/uuid"
)

// UpdateUserUseCase - частичное обновление аккаунта.
// Единственное место с проверкой авторизации: чужой аккаунт менять нельзя.
type UpdateUserUseCase struct {
	users port.UserStoragePort
}

func NewUpdateUserUseCase(users port.UserStoragePort) *UpdateUserUseCase {
	return &UpdateUserUseCase{users: users}
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, identity *domain.Identity, targetID uuid.UUID, patch domain.UserPatch) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "UpdateUser",
		"user_id":  targetID.String(),
	})

	if identity == nil || identity.UserID != targetID {
		ucLogger.Warn("Attempt to modify foreign account", nil)
		return nil, domain.ErrForbidden
	}

	user, err := uc.users.GetByID(ctx, targetID)
	if err != nil {
		ucLogger.Error("Failed to load user", err, nil)
		return nil, err
	}

	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.PhoneNumber != nil {
		user.PhoneNumber = *patch.PhoneNumber
	}
	if patch.UserType != nil {
		user.UserType = *patch.UserType
	}

	if err := uc.users.Update(ctx, user); err != nil {
		ucLogger.Error("Storage returned an error during update", err, nil)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	ucLogger.Info("User updated", nil)
	return user, nil
}

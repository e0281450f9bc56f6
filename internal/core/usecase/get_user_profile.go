package usecase

import (
	"context"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/google/uuid"
)

// GetUserProfileUseCase загружает пользователя вместе с его документами верификации
type GetUserProfileUseCase struct {
	users port.UserStoragePort
}

func NewGetUserProfileUseCase(users port.UserStoragePort) *GetUserProfileUseCase {
	return &GetUserProfileUseCase{users: users}
}

func (uc *GetUserProfileUseCase) Execute(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetUserProfile",
		"user_id":  userID.String(),
	})

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		ucLogger.Error("Failed to load user", err, nil)
		return nil, err
	}

	docs, err := uc.users.ListVerificationDocuments(ctx, userID)
	if err != nil {
		ucLogger.Error("Failed to load verification documents", err, nil)
		return nil, err
	}
	user.VerificationDocuments = docs

	ucLogger.Debug("Profile loaded", port.Fields{"documents": len(docs)})
	return user, nil
}

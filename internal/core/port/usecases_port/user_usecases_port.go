package usecases_port

import (
	"context"

	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/google/uuid"
)

type RegisterUserUseCase interface {
	Execute(ctx context.Context, draft domain.RegistrationDraft) (*domain.User, error)
}

type LoginUserUseCase interface {
	// Execute возвращает выпущенный токен и пользователя.
	// По неверным данным - domain.ErrInvalidCredentials.
	Execute(ctx context.Context, username, password string) (string, *domain.User, error)
}

type LogoutUserUseCase interface {
	Execute(ctx context.Context, identity *domain.Identity) error
}

type GetUserProfileUseCase interface {
	Execute(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

type GetOwnerStatsUseCase interface {
	Execute(ctx context.Context, ownerID uuid.UUID) (*domain.OwnerStats, error)
}

type UploadVerificationUseCase interface {
	Execute(ctx context.Context, identity *domain.Identity, documentType string, file port.UploadedFile) (*domain.VerificationDocument, error)
}

type UpdateUserUseCase interface {
	// Execute разрешает менять только собственный аккаунт,
	// иначе domain.ErrForbidden
	Execute(ctx context.Context, identity *domain.Identity, targetID uuid.UUID, patch domain.UserPatch) (*domain.User, error)
}

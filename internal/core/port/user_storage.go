package port

import (
	"context"
	"time"

	"listing-service/internal/core/domain"

	"github.com/google/uuid"
)

// UserStoragePort - контракт хранилища аккаунтов
type UserStoragePort interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error

	ListVerificationDocuments(ctx context.Context, userID uuid.UUID) ([]domain.VerificationDocument, error)
	CreateVerificationDocument(ctx context.Context, doc *domain.VerificationDocument) error
}

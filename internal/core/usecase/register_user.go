package usecase

import (
	"context"
	"errors"
	"fmt"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// RegisterUserUseCase - регистрация нового аккаунта
type RegisterUserUseCase struct {
	users port.UserStoragePort
}

func NewRegisterUserUseCase(users port.UserStoragePort) *RegisterUserUseCase {
	return &RegisterUserUseCase{users: users}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, draft domain.RegistrationDraft) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "RegisterUser",
		"username": draft.Username,
	})

	ucLogger.Info("Use case started", nil)

	vErr := domain.NewValidationError()
	if draft.Password != draft.Password2 {
		vErr.Add("password2", "Passwords don't match")
	}

	// Уникальность username/email проверяем до вставки, чтобы отдать
	// нормальную полевую ошибку вместо голого constraint violation
	if _, err := uc.users.GetByUsername(ctx, draft.Username); err == nil {
		vErr.Add("username", "A user with that username already exists")
	} else if !errors.Is(err, domain.ErrNotFound) {
		ucLogger.Error("Failed to check username uniqueness", err, nil)
		return nil, err
	}

	if draft.Email != "" {
		if _, err := uc.users.GetByEmail(ctx, draft.Email); err == nil {
			vErr.Add("email", "A user with that email already exists")
		} else if !errors.Is(err, domain.ErrNotFound) {
			ucLogger.Error("Failed to check email uniqueness", err, nil)
			return nil, err
		}
	}

	if !vErr.Empty() {
		ucLogger.Warn("Registration validation failed", port.Fields{"fields": vErr.Fields})
		return nil, vErr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(draft.Password), bcrypt.DefaultCost)
	if err != nil {
		ucLogger.Error("Failed to hash password", err, nil)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userType := draft.UserType
	if userType == "" {
		userType = domain.UserTypeClient
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     draft.Username,
		Email:        draft.Email,
		PasswordHash: string(hash),
		FirstName:    draft.FirstName,
		LastName:     draft.LastName,
		UserType:     userType,
		PhoneNumber:  draft.PhoneNumber,
	}

	if err := uc.users.Create(ctx, user); err != nil {
		ucLogger.Error("Storage returned an error during create", err, nil)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"user_id": user.ID.String()})
	return user, nil
}

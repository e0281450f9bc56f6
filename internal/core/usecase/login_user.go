package usecase

import (
	"context"
	"errors"
	"time"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"golang.org/x/crypto/bcrypt"
)

// LoginUserUseCase аутентифицирует по username, а при неудаче пробует
// трактовать введенное значение как email и повторяет попытку.
type LoginUserUseCase struct {
	users  port.UserStoragePort
	tokens port.TokenManagerPort
	now    func() time.Time
}

func NewLoginUserUseCase(users port.UserStoragePort, tokens port.TokenManagerPort) *LoginUserUseCase {
	return &LoginUserUseCase{users: users, tokens: tokens, now: time.Now}
}

func (uc *LoginUserUseCase) Execute(ctx context.Context, username, password string) (string, *domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "LoginUser",
		"username": username,
	})

	ucLogger.Info("Use case started", nil)

	user, err := uc.authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			ucLogger.Warn("Invalid credentials", nil)
		} else {
			ucLogger.Error("Authentication failed with storage error", err, nil)
		}
		return "", nil, err
	}

	token, err := uc.tokens.Issue(user)
	if err != nil {
		ucLogger.Error("Failed to issue token", err, nil)
		return "", nil, err
	}

	if err := uc.users.UpdateLastLogin(ctx, user.ID, uc.now()); err != nil {
		// не критично для логина, просто фиксируем
		ucLogger.Warn("Failed to update last_login", port.Fields{"error": err.Error()})
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"user_id": user.ID.String()})
	return token, user, nil
}

func (uc *LoginUserUseCase) authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		// фоллбэк: возможно, вместо username прислали email
		user, err = uc.users.GetByEmail(ctx, username)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrInvalidCredentials
			}
			return nil, err
		}
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

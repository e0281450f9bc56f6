package usecase

import (
	"context"
	"fmt"
	"time"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

// LogoutUserUseCase отзывает предъявленный токен: его jti попадает
// в блэклист до момента естественного истечения.
type LogoutUserUseCase struct {
	revoked port.TokenStorePort
	now     func() time.Time
}

func NewLogoutUserUseCase(revoked port.TokenStorePort) *LogoutUserUseCase {
	return &LogoutUserUseCase{revoked: revoked, now: time.Now}
}

func (uc *LogoutUserUseCase) Execute(ctx context.Context, identity *domain.Identity) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "LogoutUser",
		"user_id":  identity.UserID.String(),
	})

	ttl := identity.ExpiresAt.Sub(uc.now())
	if ttl <= 0 {
		// токен и так истек - отзывать нечего
		ucLogger.Debug("Token already expired, nothing to revoke", nil)
		return nil
	}

	if err := uc.revoked.Revoke(ctx, identity.TokenID, ttl); err != nil {
		ucLogger.Error("Failed to revoke token", err, nil)
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	ucLogger.Info("Token revoked", nil)
	return nil
}

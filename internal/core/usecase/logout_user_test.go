package usecase

import (
	"context"
	"testing"
	"time"

	"listing-service/internal/core/domain"

	"github.com/google/uuid"
)

func TestLogoutUser(t *testing.T) {
	fixedNow := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	t.Run("revokes token for its remaining lifetime", func(t *testing.T) {
		var revokedID string
		var revokedTTL time.Duration
		store := &mockTokenStore{
			RevokeFn: func(ctx context.Context, tokenID string, ttl time.Duration) error {
				revokedID = tokenID
				revokedTTL = ttl
				return nil
			},
		}
		uc := NewLogoutUserUseCase(store)
		uc.now = func() time.Time { return fixedNow }

		identity := &domain.Identity{
			UserID:    uuid.New(),
			TokenID:   "jti-123",
			ExpiresAt: fixedNow.Add(30 * time.Minute),
		}
		if err := uc.Execute(context.Background(), identity); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if revokedID != "jti-123" {
			t.Errorf("revoked token id = %q, want %q", revokedID, "jti-123")
		}
		if revokedTTL != 30*time.Minute {
			t.Errorf("ttl = %v, want %v", revokedTTL, 30*time.Minute)
		}
	})

	t.Run("expired token is a no-op", func(t *testing.T) {
		store := &mockTokenStore{
			RevokeFn: func(ctx context.Context, tokenID string, ttl time.Duration) error {
				t.Error("Revoke must not be called for an already expired token")
				return nil
			},
		}
		uc := NewLogoutUserUseCase(store)
		uc.now = func() time.Time { return fixedNow }

		identity := &domain.Identity{
			UserID:    uuid.New(),
			TokenID:   "jti-expired",
			ExpiresAt: fixedNow.Add(-time.Minute),
		}
		if err := uc.Execute(context.Background(), identity); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

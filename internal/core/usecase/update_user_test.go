package usecase

import (
	"context"
	"errors"
	"testing"

	"listing-service/internal/core/domain"

	"github.com/google/uuid"
)

func TestUpdateUser(t *testing.T) {
	userID := uuid.New()

	existing := &domain.User{
		ID:        userID,
		Username:  "jbanda",
		Email:     "jbanda@example.com",
		FirstName: "John",
	}

	t.Run("owner can patch own account", func(t *testing.T) {
		var saved *domain.User
		users := &mockUserStorage{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
				u := *existing
				return &u, nil
			},
			UpdateFn: func(ctx context.Context, user *domain.User) error {
				saved = user
				return nil
			},
		}
		uc := NewUpdateUserUseCase(users)

		newPhone := "+265991234567"
		identity := &domain.Identity{UserID: userID}
		user, err := uc.Execute(context.Background(), identity, userID, domain.UserPatch{PhoneNumber: &newPhone})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if saved.PhoneNumber != newPhone {
			t.Errorf("phone = %q, want %q", saved.PhoneNumber, newPhone)
		}
		// незаполненные поля патча не трогаются
		if user.Email != existing.Email || user.FirstName != existing.FirstName {
			t.Errorf("untouched fields changed: %+v", user)
		}
	})

	t.Run("foreign account is forbidden", func(t *testing.T) {
		uc := NewUpdateUserUseCase(&mockUserStorage{})

		identity := &domain.Identity{UserID: uuid.New()}
		_, err := uc.Execute(context.Background(), identity, userID, domain.UserPatch{})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("err = %v, want ErrForbidden", err)
		}
	})

	t.Run("nil identity is forbidden", func(t *testing.T) {
		uc := NewUpdateUserUseCase(&mockUserStorage{})

		_, err := uc.Execute(context.Background(), nil, userID, domain.UserPatch{})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("err = %v, want ErrForbidden", err)
		}
	})
}

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"listing-service/internal/core/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func TestLoginUser(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	account := &domain.User{
		ID:           uuid.New(),
		Username:     "jbanda",
		Email:        "jbanda@example.com",
		PasswordHash: string(hash),
	}

	tokens := &mockTokenManager{
		IssueFn: func(user *domain.User) (string, error) { return "signed-token", nil },
	}

	t.Run("authenticates by username", func(t *testing.T) {
		var lastLogin time.Time
		users := &mockUserStorage{
			GetByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
				return account, nil
			},
			UpdateLastLoginFn: func(ctx context.Context, id uuid.UUID, at time.Time) error {
				lastLogin = at
				return nil
			},
		}
		uc := NewLoginUserUseCase(users, tokens)
		fixedNow := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		uc.now = func() time.Time { return fixedNow }

		token, user, err := uc.Execute(context.Background(), "jbanda", "s3cret-pass")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "signed-token" {
			t.Errorf("token = %q, want %q", token, "signed-token")
		}
		if user.ID != account.ID {
			t.Errorf("user = %v, want %v", user.ID, account.ID)
		}
		if !lastLogin.Equal(fixedNow) {
			t.Errorf("last_login = %v, want %v", lastLogin, fixedNow)
		}
	})

	t.Run("falls back to email lookup", func(t *testing.T) {
		users := &mockUserStorage{
			GetByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
				return nil, domain.ErrNotFound
			},
			GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
				if email != account.Email {
					t.Errorf("email lookup with %q, want %q", email, account.Email)
				}
				return account, nil
			},
			UpdateLastLoginFn: func(ctx context.Context, id uuid.UUID, at time.Time) error { return nil },
		}
		uc := NewLoginUserUseCase(users, tokens)

		_, user, err := uc.Execute(context.Background(), "jbanda@example.com", "s3cret-pass")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != account.ID {
			t.Errorf("user = %v, want %v", user.ID, account.ID)
		}
	})

	t.Run("wrong password gives invalid credentials", func(t *testing.T) {
		users := &mockUserStorage{
			GetByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
				return account, nil
			},
		}
		uc := NewLoginUserUseCase(users, tokens)

		_, _, err := uc.Execute(context.Background(), "jbanda", "wrong")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown account gives invalid credentials, not not-found", func(t *testing.T) {
		users := &mockUserStorage{
			GetByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
				return nil, domain.ErrNotFound
			},
			GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
				return nil, domain.ErrNotFound
			},
		}
		uc := NewLoginUserUseCase(users, tokens)

		_, _, err := uc.Execute(context.Background(), "ghost", "whatever")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("last_login failure does not fail the login", func(t *testing.T) {
		users := &mockUserStorage{
			GetByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
				return account, nil
			},
			UpdateLastLoginFn: func(ctx context.Context, id uuid.UUID, at time.Time) error {
				return errors.New("connection refused")
			},
		}
		uc := NewLoginUserUseCase(users, tokens)

		if _, _, err := uc.Execute(context.Background(), "jbanda", "s3cret-pass"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

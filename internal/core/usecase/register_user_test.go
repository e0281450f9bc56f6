package usecase

import (
	"context"
	"errors"
	"testing"

	"listing-service/internal/core/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterUser(t *testing.T) {
	noUsers := &mockUserStorage{
		GetByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
			return nil, domain.ErrNotFound
		},
		GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return nil, domain.ErrNotFound
		},
	}

	draft := domain.RegistrationDraft{
		Username:  "jbanda",
		Email:     "jbanda@example.com",
		Password:  "s3cret-pass",
		Password2: "s3cret-pass",
	}

	t.Run("creates user with hashed password and default type", func(t *testing.T) {
		var created *domain.User
		users := *noUsers
		users.CreateFn = func(ctx context.Context, user *domain.User) error {
			created = user
			return nil
		}
		uc := NewRegisterUserUseCase(&users)

		user, err := uc.Execute(context.Background(), draft)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if created == nil {
			t.Fatal("expected user to reach storage")
		}
		if user.UserType != domain.UserTypeClient {
			t.Errorf("user_type = %q, want %q", user.UserType, domain.UserTypeClient)
		}
		if user.PasswordHash == draft.Password {
			t.Error("password must not be stored in plain text")
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(draft.Password)) != nil {
			t.Error("stored hash does not match the original password")
		}
	})

	t.Run("password mismatch yields a field error", func(t *testing.T) {
		uc := NewRegisterUserUseCase(noUsers)

		bad := draft
		bad.Password2 = "different"
		_, err := uc.Execute(context.Background(), bad)

		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
		if _, ok := verr.Fields["password2"]; !ok {
			t.Errorf("expected error on password2, got %v", verr.Fields)
		}
	})

	t.Run("duplicate username yields a field error", func(t *testing.T) {
		users := *noUsers
		users.GetByUsernameFn = func(ctx context.Context, username string) (*domain.User, error) {
			return &domain.User{ID: uuid.New(), Username: username}, nil
		}
		uc := NewRegisterUserUseCase(&users)

		_, err := uc.Execute(context.Background(), draft)

		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
		if _, ok := verr.Fields["username"]; !ok {
			t.Errorf("expected error on username, got %v", verr.Fields)
		}
	})

	t.Run("duplicate email yields a field error", func(t *testing.T) {
		users := *noUsers
		users.GetByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: uuid.New(), Email: email}, nil
		}
		uc := NewRegisterUserUseCase(&users)

		_, err := uc.Execute(context.Background(), draft)

		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
		if _, ok := verr.Fields["email"]; !ok {
			t.Errorf("expected error on email, got %v", verr.Fields)
		}
	})

	t.Run("storage error is not masked as validation", func(t *testing.T) {
		users := *noUsers
		users.GetByUsernameFn = func(ctx context.Context, username string) (*domain.User, error) {
			return nil, errors.New("connection refused")
		}
		uc := NewRegisterUserUseCase(&users)

		_, err := uc.Execute(context.Background(), draft)
		var verr *domain.ValidationError
		if err == nil || errors.As(err, &verr) {
			t.Errorf("err = %v, want plain storage error", err)
		}
	})
}

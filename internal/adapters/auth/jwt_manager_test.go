package auth

import (
	"testing"
	"time"

	"listing-service/internal/core/domain"

	"github.com/google/uuid"
)

func TestJWTManager(t *testing.T) {
	user := &domain.User{
		ID:       uuid.New(),
		Username: "jbanda",
		UserType: domain.UserTypeAgent,
	}

	t.Run("issue and validate roundtrip", func(t *testing.T) {
		manager, err := NewJWTManager("test-secret", time.Hour)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		token, err := manager.Issue(user)
		if err != nil {
			t.Fatalf("failed to issue token: %v", err)
		}

		identity, err := manager.Validate(token)
		if err != nil {
			t.Fatalf("failed to validate token: %v", err)
		}

		if identity.UserID != user.ID {
			t.Errorf("user id = %v, want %v", identity.UserID, user.ID)
		}
		if identity.Username != user.Username || identity.UserType != user.UserType {
			t.Errorf("identity = %+v", identity)
		}
		if identity.TokenID == "" {
			t.Error("token must carry a jti for revocation")
		}
		if _, err := uuid.Parse(identity.TokenID); err != nil {
			t.Errorf("jti %q is not a uuid: %v", identity.TokenID, err)
		}
		if identity.ExpiresAt.Before(time.Now()) {
			t.Errorf("token expires in the past: %v", identity.ExpiresAt)
		}
	})

	t.Run("each token gets a distinct jti", func(t *testing.T) {
		manager, _ := NewJWTManager("test-secret", time.Hour)

		first, _ := manager.Issue(user)
		second, _ := manager.Issue(user)

		id1, err := manager.Validate(first)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		id2, err := manager.Validate(second)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id1.TokenID == id2.TokenID {
			t.Error("two tokens share the same jti")
		}
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		issuer, _ := NewJWTManager("secret-a", time.Hour)
		verifier, _ := NewJWTManager("secret-b", time.Hour)

		token, _ := issuer.Issue(user)
		if _, err := verifier.Validate(token); err == nil {
			t.Error("expected validation to fail for foreign signature")
		}
	})

	t.Run("rejects expired token", func(t *testing.T) {
		manager, _ := NewJWTManager("test-secret", time.Millisecond)

		token, _ := manager.Issue(user)
		time.Sleep(5 * time.Millisecond)

		if _, err := manager.Validate(token); err == nil {
			t.Error("expected validation to fail for expired token")
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		manager, _ := NewJWTManager("test-secret", time.Hour)
		if _, err := manager.Validate("not.a.token"); err == nil {
			t.Error("expected validation to fail")
		}
	})

	t.Run("constructor validates inputs", func(t *testing.T) {
		if _, err := NewJWTManager("", time.Hour); err == nil {
			t.Error("empty secret must be rejected")
		}
		if _, err := NewJWTManager("secret", 0); err == nil {
			t.Error("non-positive ttl must be rejected")
		}
	})
}

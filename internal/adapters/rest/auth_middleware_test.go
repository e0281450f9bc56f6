package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"

	"github.com/google/uuid"
)

type stubTokenManager struct {
	identity *domain.Identity
	err      error
}

func (s *stubTokenManager) Issue(user *domain.User) (string, error) { return "", nil }

func (s *stubTokenManager) Validate(token string) (*domain.Identity, error) {
	return s.identity, s.err
}

type stubTokenStore struct {
	revoked bool
	err     error
}

func (s *stubTokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return nil
}

func (s *stubTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return s.revoked, s.err
}

func validIdentity() *domain.Identity {
	return &domain.Identity{
		UserID:    uuid.New(),
		Username:  "jbanda",
		TokenID:   "jti-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestAuthenticatorRequired(t *testing.T) {
	echoIdentity := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contextkeys.IdentityFromContext(r.Context()) == nil {
			t.Error("handler reached without identity in context")
		}
		w.WriteHeader(http.StatusOK)
	})

	t.Run("missing token gives 401", func(t *testing.T) {
		auth := NewAuthenticator(&stubTokenManager{}, &stubTokenStore{})
		rec := httptest.NewRecorder()

		auth.Required(echoIdentity).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("valid token passes identity through", func(t *testing.T) {
		auth := NewAuthenticator(&stubTokenManager{identity: validIdentity()}, &stubTokenStore{})
		rec := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer some-token")

		auth.Required(echoIdentity).ServeHTTP(rec, r)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("invalid token gives 401", func(t *testing.T) {
		auth := NewAuthenticator(&stubTokenManager{err: errors.New("bad signature")}, &stubTokenStore{})
		rec := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer some-token")

		auth.Required(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler must not be reached")
		})).ServeHTTP(rec, r)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("revoked token gives 401", func(t *testing.T) {
		auth := NewAuthenticator(&stubTokenManager{identity: validIdentity()}, &stubTokenStore{revoked: true})
		rec := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer some-token")

		auth.Required(echoIdentity).ServeHTTP(rec, r)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("revocation check failure gives 500", func(t *testing.T) {
		auth := NewAuthenticator(&stubTokenManager{identity: validIdentity()}, &stubTokenStore{err: errors.New("redis down")})
		rec := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer some-token")

		auth.Required(echoIdentity).ServeHTTP(rec, r)
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rec.Code)
		}
	})
}

func TestAuthenticatorOptional(t *testing.T) {
	t.Run("no token passes through anonymously", func(t *testing.T) {
		auth := NewAuthenticator(&stubTokenManager{}, &stubTokenStore{})
		rec := httptest.NewRecorder()
		reached := false

		auth.Optional(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
			if contextkeys.IdentityFromContext(r.Context()) != nil {
				t.Error("anonymous request must not carry identity")
			}
		})).ServeHTTP(rec, httptest.NewRequest("POST", "/", nil))

		if !reached {
			t.Error("handler was not reached")
		}
	})

	t.Run("presented but invalid token is still 401", func(t *testing.T) {
		auth := NewAuthenticator(&stubTokenManager{err: errors.New("expired")}, &stubTokenStore{})
		rec := httptest.NewRecorder()
		r := httptest.NewRequest("POST", "/", nil)
		r.Header.Set("Authorization", "Bearer stale-token")

		auth.Optional(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler must not be reached")
		})).ServeHTTP(rec, r)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"standard", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"lowercase scheme", "bearer abc", "abc"},
		{"missing header", "", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz", ""},
		{"scheme only", "Bearer", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			if got := bearerToken(r); got != tc.want {
				t.Errorf("bearerToken(%q) = %q, want %q", tc.header, got, tc.want)
			}
		})
	}
}

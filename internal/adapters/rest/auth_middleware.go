package rest

import (
	"net/http"
	"strings"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"
)

// Authenticator проверяет bearer-токены и кладет личность в контекст.
// Optional пропускает запросы без токена, Required отвечает 401.
type Authenticator struct {
	tokens  port.TokenManagerPort
	revoked port.TokenStorePort
}

func NewAuthenticator(tokens port.TokenManagerPort, revoked port.TokenStorePort) *Authenticator {
	return &Authenticator{tokens: tokens, revoked: revoked}
}

// Optional аутентифицирует запрос, если токен предъявлен и валиден.
// Предъявленный, но невалидный или отозванный токен - это всегда 401,
// даже на ручках, где аутентификация не обязательна.
func (a *Authenticator) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}
		a.authenticate(w, r, next, token)
	})
}

// Required отвечает 401 на запрос без валидного токена
func (a *Authenticator) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		a.authenticate(w, r, next, token)
	})
}

func (a *Authenticator) authenticate(w http.ResponseWriter, r *http.Request, next http.Handler, token string) {
	logger := contextkeys.LoggerFromContext(r.Context())

	identity, err := a.tokens.Validate(token)
	if err != nil {
		logger.Warn("Rejected invalid token", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	revoked, err := a.revoked.IsRevoked(r.Context(), identity.TokenID)
	if err != nil {
		logger.Error("Failed to check token revocation", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Authentication check failed")
		return
	}
	if revoked {
		WriteJSONError(w, http.StatusUnauthorized, "Token has been revoked")
		return
	}

	ctx := contextkeys.ContextWithIdentity(r.Context(), identity)
	next.ServeHTTP(w, r.WithContext(ctx))
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

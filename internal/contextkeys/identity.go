package contextkeys

import (
	"context"

	"listing-service/internal/core/domain"
)

// Тип для ключа контекста
type identityKeyType struct{}

var identityKey = identityKeyType{}

// ContextWithIdentity помещает аутентифицированную личность в контекст
func ContextWithIdentity(ctx context.Context, identity *domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext извлекает личность из контекста.
// Возвращает nil для неаутентифицированного запроса.
func IdentityFromContext(ctx context.Context) *domain.Identity {
	if identity, ok := ctx.Value(identityKey).(*domain.Identity); ok {
		return identity
	}
	return nil
}

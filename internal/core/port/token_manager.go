package port

import "listing-service/internal/core/domain"

// TokenManagerPort - выпуск и проверка bearer-токенов
type TokenManagerPort interface {
	Issue(user *domain.User) (string, error)
	Validate(token string) (*domain.Identity, error)
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCommissionRate - комиссия агента по умолчанию, в процентах
const DefaultCommissionRate = 5.00

// Agent - профиль агента недвижимости, один-к-одному с User
type Agent struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	User           *User
	Company        string
	LicenseNumber  string
	CommissionRate float64
	Bio            string
	Website        string
	SocialLinks    map[string]string

	TotalPropertiesSold   int
	TotalPropertiesRented int
	AverageRating         float64

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName возвращает имя связанного пользователя либо пустую строку
func (a *Agent) FullName() string {
	if a.User == nil {
		return ""
	}
	return a.User.FullName()
}

// PaginatedAgents - страница выдачи агентов
type PaginatedAgents struct {
	Items        []Agent
	TotalCount   int
	CurrentPage  int
	ItemsPerPage int
}

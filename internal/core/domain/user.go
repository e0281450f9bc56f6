package domain

import (
	"time"

	"github.com/google/uuid"
)

// Типы аккаунтов
const (
	UserTypeClient = "client"
	UserTypeAgent  = "agent"
	UserTypeAdmin  = "admin"
)

// Типы и статусы документов верификации
const (
	DocumentTypeID       = "id"
	DocumentTypeLicense  = "license"
	DocumentTypeBusiness = "business"

	DocumentStatusPending  = "pending"
	DocumentStatusVerified = "verified"
	DocumentStatusRejected = "rejected"
)

// User - аккаунт пользователя (клиент, агент или админ)
type User struct {
	ID             uuid.UUID
	Username       string
	Email          string
	PasswordHash   string
	FirstName      string
	LastName       string
	UserType       string
	PhoneNumber    string
	ProfilePicture string
	IsVerified     bool
	LastLogin      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Документы верификации, подгружаются только для профиля
	VerificationDocuments []VerificationDocument
}

// FullName возвращает имя и фамилию, либо username, если они не заполнены
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	default:
		return u.Username
	}
}

// VerificationDocument - загруженный пользователем документ.
// Статус и заметки выставляет только сервер/модератор.
type VerificationDocument struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	DocumentType string
	FileURL      string
	Status       string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OwnerStats - агрегаты по объявлениям одного владельца
type OwnerStats struct {
	TotalProperties int
	ActiveListings  int
	TotalViews      int
	TotalInquiries  int
}

// Identity - аутентифицированная личность текущего запроса.
// Передается явно через контекст, а не через глобальное состояние.
type Identity struct {
	UserID    uuid.UUID
	Username  string
	UserType  string
	TokenID   string
	ExpiresAt time.Time
}

package domain

import "github.com/google/uuid"

// PropertyDraft - провалидированные данные для создания объявления.
// Рейтинг, отзывы и featured-окно клиент задавать не может.
type PropertyDraft struct {
	Title       string
	Description string
	Price       float64
	PriceType   string
	Location    string
	Latitude    *float64
	Longitude   *float64
	Bedrooms    int
	Bathrooms   int
	Area        int
	Category    string

	AgentID     *uuid.UUID
	IsAvailable *bool

	Amenities RawAmenities
	Images    []string

	VideoURL       string
	VirtualTourURL string
	YearBuilt      *int
	ParkingSpaces  int
	Furnished      bool
	PetFriendly    bool
}

// PropertyPatch - частичное обновление: nil-поле не трогается
type PropertyPatch struct {
	Title       *string
	Description *string
	Price       *float64
	PriceType   *string
	Location    *string
	Latitude    *float64
	Longitude   *float64
	Bedrooms    *int
	Bathrooms   *int
	Area        *int
	Category    *string

	AgentID     *uuid.UUID
	IsFeatured  *bool
	IsVerified  *bool
	IsAvailable *bool

	Amenities *RawAmenities
	Images    *[]string

	VideoURL       *string
	VirtualTourURL *string
	YearBuilt      *int
	ParkingSpaces  *int
	Furnished      *bool
	PetFriendly    *bool
}

// InquiryDraft - заявка покупателя; статус сюда намеренно не входит
type InquiryDraft struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// AgentDraft - данные для создания профиля агента
type AgentDraft struct {
	UserID         uuid.UUID
	Company        string
	LicenseNumber  string
	CommissionRate *float64
	Bio            string
	Website        string
	SocialLinks    map[string]string
	IsActive       *bool
}

// AgentPatch - частичное обновление профиля агента
type AgentPatch struct {
	Company        *string
	LicenseNumber  *string
	CommissionRate *float64
	Bio            *string
	Website        *string
	SocialLinks    *map[string]string
	IsActive       *bool
}

// RegistrationDraft - данные регистрации; Password2 должен совпасть с Password
type RegistrationDraft struct {
	Username    string
	Email       string
	FirstName   string
	LastName    string
	UserType    string
	PhoneNumber string
	Password    string
	Password2   string
}

// UserPatch - частичное обновление собственного профиля
type UserPatch struct {
	Email       *string
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	UserType    *string
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Категории объектов недвижимости
const (
	CategoryApartment   = "apartment"
	CategoryResidential = "residential"
	CategoryCommercial  = "commercial"
	CategoryCorporate   = "corporate"
	CategoryBnB         = "bnb"
	CategoryLand        = "land"
)

// Типы цены: аренда за период или продажа
const (
	PriceTypeMonth = "month"
	PriceTypeWeek  = "week"
	PriceTypeDay   = "day"
	PriceTypeSale  = "sale"
)

// Статусы заявки покупателя
const (
	InquiryStatusPending   = "pending"
	InquiryStatusResponded = "responded"
	InquiryStatusClosed    = "closed"
)

// Property - объявление о продаже/аренде объекта недвижимости
type Property struct {
	ID          uuid.UUID
	Title       string
	Description string
	Price       float64
	PriceType   string
	Location    string
	Latitude    *float64
	Longitude   *float64

	// LocationHash - геохэш (precision 5) для группировки близких объектов.
	// Заполняется хранилищем, если заданы обе координаты.
	LocationHash string

	Bedrooms  int
	Bathrooms int
	Area      int
	Category  string

	AgentID *uuid.UUID
	OwnerID *uuid.UUID
	Agent   *Agent

	IsFeatured  bool
	IsVerified  bool
	IsAvailable bool

	Rating       float64
	TotalReviews int

	Amenities []string
	Images    []string

	VideoURL       string
	VirtualTourURL string

	YearBuilt     *int
	ParkingSpaces int
	Furnished     bool
	PetFriendly   bool

	FeaturedUntil *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MainImage возвращает первую картинку объявления или пустую строку
func (p *Property) MainImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}

// PropertyView - факт просмотра объявления с конкретного IP.
// Инвариант: не больше одной записи на пару (property, ip) - навсегда.
type PropertyView struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
	IPAddress  string
	UserAgent  string
	CreatedAt  time.Time
}

// PropertyInquiry - заявка от неавторизованного покупателя по объявлению.
// Статус и таймстемпы контролируются сервером, а не клиентом.
type PropertyInquiry struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
	Name       string
	Email      string
	Phone      string
	Message    string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PaginatedProperties - страница выдачи со счетчиком всех подходящих строк
type PaginatedProperties struct {
	Items        []Property
	TotalCount   int
	CurrentPage  int
	ItemsPerPage int
}

// PaginatedInquiries - страница заявок
type PaginatedInquiries struct {
	Items        []PropertyInquiry
	TotalCount   int
	CurrentPage  int
	ItemsPerPage int
}

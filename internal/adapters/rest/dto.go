package rest

import (
	"fmt"
	"time"

	"listing-service/internal/core/domain"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// PropertyCardResponse - DTO для карточки объявления в списке
type PropertyCardResponse struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Price        float64  `json:"price"`
	PriceType    string   `json:"price_type"`
	PriceDisplay string   `json:"price_display"`
	Location     string   `json:"location"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	Area         int      `json:"area"`
	Category     string   `json:"category"`
	MainImage    string   `json:"main_image"`
	Images       []string `json:"images"`
	IsFeatured   bool     `json:"is_featured"`
	IsVerified   bool     `json:"is_verified"`
	Rating       float64  `json:"rating"`
	TotalReviews int      `json:"total_reviews"`
}

// PropertyDetailsResponse - DTO детальной страницы, с вложенным агентом
type PropertyDetailsResponse struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Price          float64           `json:"price"`
	PriceType      string            `json:"price_type"`
	PriceDisplay   string            `json:"price_display"`
	Location       string            `json:"location"`
	Latitude       *float64          `json:"latitude"`
	Longitude      *float64          `json:"longitude"`
	Bedrooms       int               `json:"bedrooms"`
	Bathrooms      int               `json:"bathrooms"`
	Area           int               `json:"area"`
	Category       string            `json:"category"`
	Agent          *AgentResponse    `json:"agent"`
	OwnerID        *uuid.UUID        `json:"owner_id"`
	IsFeatured     bool              `json:"is_featured"`
	IsVerified     bool              `json:"is_verified"`
	IsAvailable    bool              `json:"is_available"`
	Rating         float64           `json:"rating"`
	TotalReviews   int               `json:"total_reviews"`
	Amenities      []string          `json:"amenities"`
	Images         []string          `json:"images"`
	MainImage      string            `json:"main_image"`
	VideoURL       string            `json:"video_url"`
	VirtualTourURL string            `json:"virtual_tour_url"`
	YearBuilt      *int              `json:"year_built"`
	ParkingSpaces  int               `json:"parking_spaces"`
	Furnished      bool              `json:"furnished"`
	PetFriendly    bool              `json:"pet_friendly"`
	FeaturedUntil  *time.Time        `json:"featured_until"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// PaginatedPropertiesResponse - DTO для ответа со списком и пагинацией
type PaginatedPropertiesResponse struct {
	Data     []PropertyCardResponse `json:"data"`
	Total    int                    `json:"total"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"page_size"`
}

// AgentResponse - профиль агента со встроенным пользователем
type AgentResponse struct {
	ID                    string            `json:"id"`
	UserID                string            `json:"user_id"`
	FullName              string            `json:"full_name"`
	Username              string            `json:"username"`
	Email                 string            `json:"email"`
	PhoneNumber           string            `json:"phone_number"`
	Company               string            `json:"company"`
	LicenseNumber         string            `json:"license_number"`
	CommissionRate        float64           `json:"commission_rate"`
	Bio                   string            `json:"bio"`
	Website               string            `json:"website"`
	SocialLinks           map[string]string `json:"social_links"`
	TotalPropertiesSold   int               `json:"total_properties_sold"`
	TotalPropertiesRented int               `json:"total_properties_rented"`
	AverageRating         float64           `json:"average_rating"`
	IsActive              bool              `json:"is_active"`
	CreatedAt             time.Time         `json:"created_at"`
}

type PaginatedAgentsResponse struct {
	Data     []AgentResponse `json:"data"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// UserResponse - аккаунт без чувствительных полей
type UserResponse struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	FullName       string     `json:"full_name"`
	UserType       string     `json:"user_type"`
	PhoneNumber    string     `json:"phone_number"`
	ProfilePicture string     `json:"profile_picture"`
	IsVerified     bool       `json:"is_verified"`
	LastLogin      *time.Time `json:"last_login"`
	CreatedAt      time.Time  `json:"created_at"`

	VerificationDocuments []VerificationDocumentResponse `json:"verification_documents,omitempty"`
}

type VerificationDocumentResponse struct {
	ID           string    `json:"id"`
	DocumentType string    `json:"document_type"`
	FileURL      string    `json:"file_url"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
}

type InquiryResponse struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Message    string    `json:"message"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type PaginatedInquiriesResponse struct {
	Data     []InquiryResponse `json:"data"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

type OwnerStatsResponse struct {
	TotalProperties int `json:"total_properties"`
	ActiveListings  int `json:"active_listings"`
	TotalViews      int `json:"total_views"`
	TotalInquiries  int `json:"total_inquiries"`
}

// --- Входящие DTO ---

// PropertyCreateRequest - тело POST /properties (JSON-вариант)
type PropertyCreateRequest struct {
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Price          float64             `json:"price"`
	PriceType      string              `json:"price_type"`
	Location       string              `json:"location"`
	Latitude       *float64            `json:"latitude"`
	Longitude      *float64            `json:"longitude"`
	Bedrooms       int                 `json:"bedrooms"`
	Bathrooms      int                 `json:"bathrooms"`
	Area           int                 `json:"area"`
	Category       string              `json:"category"`
	AgentID        *uuid.UUID          `json:"agent_id"`
	IsAvailable    *bool               `json:"is_available"`
	Amenities      domain.RawAmenities `json:"amenities"`
	Images         []string            `json:"images"`
	VideoURL       string              `json:"video_url"`
	VirtualTourURL string              `json:"virtual_tour_url"`
	YearBuilt      *int                `json:"year_built"`
	ParkingSpaces  int                 `json:"parking_spaces"`
	Furnished      bool                `json:"furnished"`
	PetFriendly    bool                `json:"pet_friendly"`
}

// PropertyUpdateRequest - частичное обновление: отсутствующее поле не трогается
type PropertyUpdateRequest struct {
	Title          *string              `json:"title"`
	Description    *string              `json:"description"`
	Price          *float64             `json:"price"`
	PriceType      *string              `json:"price_type"`
	Location       *string              `json:"location"`
	Latitude       *float64             `json:"latitude"`
	Longitude      *float64             `json:"longitude"`
	Bedrooms       *int                 `json:"bedrooms"`
	Bathrooms      *int                 `json:"bathrooms"`
	Area           *int                 `json:"area"`
	Category       *string              `json:"category"`
	AgentID        *uuid.UUID           `json:"agent_id"`
	IsFeatured     *bool                `json:"is_featured"`
	IsVerified     *bool                `json:"is_verified"`
	IsAvailable    *bool                `json:"is_available"`
	Amenities      *domain.RawAmenities `json:"amenities"`
	Images         *[]string            `json:"images"`
	VideoURL       *string              `json:"video_url"`
	VirtualTourURL *string              `json:"virtual_tour_url"`
	YearBuilt      *int                 `json:"year_built"`
	ParkingSpaces  *int                 `json:"parking_spaces"`
	Furnished      *bool                `json:"furnished"`
	PetFriendly    *bool                `json:"pet_friendly"`
}

type PromoteRequest struct {
	Days *int `json:"days"`
}

type InquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type AgentCreateRequest struct {
	UserID         uuid.UUID         `json:"user_id"`
	Company        string            `json:"company"`
	LicenseNumber  string            `json:"license_number"`
	CommissionRate *float64          `json:"commission_rate"`
	Bio            string            `json:"bio"`
	Website        string            `json:"website"`
	SocialLinks    map[string]string `json:"social_links"`
	IsActive       *bool             `json:"is_active"`
}

type AgentUpdateRequest struct {
	Company        *string            `json:"company"`
	LicenseNumber  *string            `json:"license_number"`
	CommissionRate *float64           `json:"commission_rate"`
	Bio            *string            `json:"bio"`
	Website        *string            `json:"website"`
	SocialLinks    *map[string]string `json:"social_links"`
	IsActive       *bool              `json:"is_active"`
}

type RegistrationRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	UserType    string `json:"user_type"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
	Password2   string `json:"password2"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserUpdateRequest struct {
	Email       *string `json:"email"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
}

// --- Маппинг домена в DTO ---

var displayPrinter = message.NewPrinter(language.English)

// priceDisplay форматирует цену для витрины: "MWK 1,500,000/month"
func priceDisplay(currency string, price float64, priceType string) string {
	amount := displayPrinter.Sprintf("%v", number.Decimal(price, number.MaxFractionDigits(0)))
	switch priceType {
	case domain.PriceTypeMonth:
		return fmt.Sprintf("%s %s/month", currency, amount)
	case domain.PriceTypeWeek:
		return fmt.Sprintf("%s %s/week", currency, amount)
	case domain.PriceTypeDay:
		return fmt.Sprintf("%s %s/day", currency, amount)
	default:
		return fmt.Sprintf("%s %s", currency, amount)
	}
}

func toPropertyCardResponse(p *domain.Property, currency string) PropertyCardResponse {
	return PropertyCardResponse{
		ID:           p.ID.String(),
		Title:        p.Title,
		Price:        p.Price,
		PriceType:    p.PriceType,
		PriceDisplay: priceDisplay(currency, p.Price, p.PriceType),
		Location:     p.Location,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		Area:         p.Area,
		Category:     p.Category,
		MainImage:    p.MainImage(),
		Images:       p.Images,
		IsFeatured:   p.IsFeatured,
		IsVerified:   p.IsVerified,
		Rating:       p.Rating,
		TotalReviews: p.TotalReviews,
	}
}

func toPropertyDetailsResponse(p *domain.Property, currency string) PropertyDetailsResponse {
	resp := PropertyDetailsResponse{
		ID:             p.ID.String(),
		Title:          p.Title,
		Description:    p.Description,
		Price:          p.Price,
		PriceType:      p.PriceType,
		PriceDisplay:   priceDisplay(currency, p.Price, p.PriceType),
		Location:       p.Location,
		Latitude:       p.Latitude,
		Longitude:      p.Longitude,
		Bedrooms:       p.Bedrooms,
		Bathrooms:      p.Bathrooms,
		Area:           p.Area,
		Category:       p.Category,
		OwnerID:        p.OwnerID,
		IsFeatured:     p.IsFeatured,
		IsVerified:     p.IsVerified,
		IsAvailable:    p.IsAvailable,
		Rating:         p.Rating,
		TotalReviews:   p.TotalReviews,
		Amenities:      p.Amenities,
		Images:         p.Images,
		MainImage:      p.MainImage(),
		VideoURL:       p.VideoURL,
		VirtualTourURL: p.VirtualTourURL,
		YearBuilt:      p.YearBuilt,
		ParkingSpaces:  p.ParkingSpaces,
		Furnished:      p.Furnished,
		PetFriendly:    p.PetFriendly,
		FeaturedUntil:  p.FeaturedUntil,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if p.Agent != nil {
		agent := toAgentResponse(p.Agent)
		resp.Agent = &agent
	}
	return resp
}

func toAgentResponse(a *domain.Agent) AgentResponse {
	resp := AgentResponse{
		ID:                    a.ID.String(),
		UserID:                a.UserID.String(),
		FullName:              a.FullName(),
		Company:               a.Company,
		LicenseNumber:         a.LicenseNumber,
		CommissionRate:        a.CommissionRate,
		Bio:                   a.Bio,
		Website:               a.Website,
		SocialLinks:           a.SocialLinks,
		TotalPropertiesSold:   a.TotalPropertiesSold,
		TotalPropertiesRented: a.TotalPropertiesRented,
		AverageRating:         a.AverageRating,
		IsActive:              a.IsActive,
		CreatedAt:             a.CreatedAt,
	}
	if a.User != nil {
		resp.Username = a.User.Username
		resp.Email = a.User.Email
		resp.PhoneNumber = a.User.PhoneNumber
	}
	return resp
}

func toUserResponse(u *domain.User) UserResponse {
	resp := UserResponse{
		ID:             u.ID.String(),
		Username:       u.Username,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		FullName:       u.FullName(),
		UserType:       u.UserType,
		PhoneNumber:    u.PhoneNumber,
		ProfilePicture: u.ProfilePicture,
		IsVerified:     u.IsVerified,
		LastLogin:      u.LastLogin,
		CreatedAt:      u.CreatedAt,
	}
	for _, doc := range u.VerificationDocuments {
		resp.VerificationDocuments = append(resp.VerificationDocuments, toVerificationDocumentResponse(&doc))
	}
	return resp
}

func toVerificationDocumentResponse(doc *domain.VerificationDocument) VerificationDocumentResponse {
	return VerificationDocumentResponse{
		ID:           doc.ID.String(),
		DocumentType: doc.DocumentType,
		FileURL:      doc.FileURL,
		Status:       doc.Status,
		Notes:        doc.Notes,
		CreatedAt:    doc.CreatedAt,
	}
}

func toInquiryResponse(inq *domain.PropertyInquiry) InquiryResponse {
	return InquiryResponse{
		ID:         inq.ID.String(),
		PropertyID: inq.PropertyID.String(),
		Name:       inq.Name,
		Email:      inq.Email,
		Phone:      inq.Phone,
		Message:    inq.Message,
		Status:     inq.Status,
		CreatedAt:  inq.CreatedAt,
	}
}

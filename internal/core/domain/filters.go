package domain

import (
	"strings"

	"github.com/google/uuid"
)

// PropertyFilters - набор опциональных фильтров для выдачи объявлений.
// nil-указатель означает "фильтр не задан". Невалидные значения из query
// сюда просто не попадают (политика validate-or-ignore).
type PropertyFilters struct {
	Featured   *bool
	MinPrice   *float64
	MaxPrice   *float64
	MinArea    *int
	MaxArea    *int
	Category   string
	PriceType  string
	Bedrooms   *int
	Bathrooms  *int
	AgentID    *uuid.UUID
	OwnerID    *uuid.UUID
	IsFeatured *bool
	IsVerified *bool

	// Search - подстрочный поиск без учета регистра по title/description/location
	Search string

	OrderBy    string
	Descending bool
}

// AgentFilters - фильтры каталога агентов
type AgentFilters struct {
	Company  string
	IsActive *bool
	Search   string

	OrderBy    string
	Descending bool
}

// InquiryFilters - фильтры списка заявок
type InquiryFilters struct {
	PropertyID *uuid.UUID
	Status     string
}

// Белые списки сортировок. Все, что не в списке, откатывается на дефолт.
var propertyOrderColumns = map[string]bool{
	"price":      true,
	"created_at": true,
	"rating":     true,
	"area":       true,
}

var agentOrderColumns = map[string]bool{
	"average_rating":        true,
	"total_properties_sold": true,
	"created_at":            true,
}

// ParsePropertyOrdering разбирает параметр ordering вида "price" / "-price".
// Неизвестное поле дает дефолт: новые объявления первыми.
func ParsePropertyOrdering(raw string) (column string, descending bool) {
	column, descending = parseOrdering(raw, propertyOrderColumns)
	if column == "" {
		return "created_at", true
	}
	return column, descending
}

// ParseAgentOrdering - то же для агентов, дефолт: лучший рейтинг первым
func ParseAgentOrdering(raw string) (column string, descending bool) {
	column, descending = parseOrdering(raw, agentOrderColumns)
	if column == "" {
		return "average_rating", true
	}
	return column, descending
}

func parseOrdering(raw string, allowed map[string]bool) (string, bool) {
	raw = strings.TrimSpace(raw)
	descending := strings.HasPrefix(raw, "-")
	column := strings.TrimPrefix(raw, "-")
	if !allowed[column] {
		return "", false
	}
	return column, descending
}

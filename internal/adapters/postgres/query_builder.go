package postgres

import (
	"fmt"
	"strings"

	"listing-service/internal/core/domain"
)

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argId      int
}

func newQueryBuilder(baseConditions ...string) *queryBuilder {
	return &queryBuilder{
		argId:      1,
		conditions: baseConditions,
		args:       make([]interface{}, 0),
	}
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argId))
	qb.args = append(qb.args, arg)
	qb.argId++
}

// AddEquals добавляет точное совпадение по полю
func (qb *queryBuilder) AddEquals(fieldName string, arg interface{}) {
	qb.addCondition("%s = $%d", fieldName, arg)
}

// AddFloatRange добавляет инклюзивные границы диапазона (>=, <=)
func (qb *queryBuilder) AddFloatRange(fieldName string, min *float64, max *float64) {
	if min != nil {
		qb.addCondition("%s >= $%d", fieldName, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d", fieldName, *max)
	}
}

func (qb *queryBuilder) AddIntRange(fieldName string, min *int, max *int) {
	if min != nil {
		qb.addCondition("%s >= $%d", fieldName, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d", fieldName, *max)
	}
}

// AddSearch добавляет регистронезависимый подстрочный поиск по нескольким
// полям через OR. Один аргумент переиспользуется во всех ILIKE.
func (qb *queryBuilder) AddSearch(term string, fieldNames ...string) {
	if term == "" || len(fieldNames) == 0 {
		return
	}
	parts := make([]string, len(fieldNames))
	for i, field := range fieldNames {
		parts[i] = fmt.Sprintf("%s ILIKE $%d", field, qb.argId)
	}
	qb.conditions = append(qb.conditions, "("+strings.Join(parts, " OR ")+")")
	qb.args = append(qb.args, "%"+term+"%")
	qb.argId++
}

// build собирает финальный WHERE и аргументы
func (qb *queryBuilder) build() (string, []interface{}) {
	whereClause := ""
	if len(qb.conditions) > 0 {
		whereClause = "WHERE " + strings.Join(qb.conditions, " AND ")
	}
	return whereClause, qb.args
}

// applyPropertyFilters разбирает фильтры каталога и строит WHERE.
// Базовое условие: в выдачу попадают только доступные объявления.
func applyPropertyFilters(filters domain.PropertyFilters) (string, []interface{}) {
	qb := newQueryBuilder("p.is_available = true")

	// featured=true/false и точный фильтр is_featured живут на одной колонке
	if filters.Featured != nil {
		qb.AddEquals("p.is_featured", *filters.Featured)
	}
	if filters.IsFeatured != nil {
		qb.AddEquals("p.is_featured", *filters.IsFeatured)
	}
	if filters.IsVerified != nil {
		qb.AddEquals("p.is_verified", *filters.IsVerified)
	}

	qb.AddFloatRange("p.price", filters.MinPrice, filters.MaxPrice)
	qb.AddIntRange("p.area", filters.MinArea, filters.MaxArea)

	if filters.Category != "" {
		qb.AddEquals("p.category", filters.Category)
	}
	if filters.PriceType != "" {
		qb.AddEquals("p.price_type", filters.PriceType)
	}
	if filters.Bedrooms != nil {
		qb.AddEquals("p.bedrooms", *filters.Bedrooms)
	}
	if filters.Bathrooms != nil {
		qb.AddEquals("p.bathrooms", *filters.Bathrooms)
	}
	if filters.AgentID != nil {
		qb.AddEquals("p.agent_id", *filters.AgentID)
	}
	if filters.OwnerID != nil {
		qb.AddEquals("p.owner_id", *filters.OwnerID)
	}

	qb.AddSearch(filters.Search, "p.title", "p.description", "p.location")

	return qb.build()
}

// propertyOrderClause строит ORDER BY из уже провалидированного поля сортировки
func propertyOrderClause(filters domain.PropertyFilters) string {
	column, descending := domain.ParsePropertyOrdering(orderingParam(filters.OrderBy, filters.Descending))
	direction := "ASC"
	if descending {
		direction = "DESC"
	}
	return fmt.Sprintf("ORDER BY p.%s %s, p.id ASC", column, direction)
}

// applyAgentFilters строит WHERE каталога агентов.
// По умолчанию выдаются только активные агенты; явный is_active=false
// переключает на неактивных.
func applyAgentFilters(filters domain.AgentFilters) (string, []interface{}) {
	qb := newQueryBuilder()

	if filters.IsActive != nil {
		qb.AddEquals("a.is_active", *filters.IsActive)
	} else {
		qb.conditions = append(qb.conditions, "a.is_active = true")
	}

	if filters.Company != "" {
		qb.AddEquals("a.company", filters.Company)
	}

	qb.AddSearch(filters.Search, "u.username", "u.first_name", "u.last_name", "a.company")

	return qb.build()
}

func agentOrderClause(filters domain.AgentFilters) string {
	column, descending := domain.ParseAgentOrdering(orderingParam(filters.OrderBy, filters.Descending))
	direction := "ASC"
	if descending {
		direction = "DESC"
	}
	return fmt.Sprintf("ORDER BY a.%s %s, a.id ASC", column, direction)
}

func orderingParam(column string, descending bool) string {
	if descending {
		return "-" + column
	}
	return column
}

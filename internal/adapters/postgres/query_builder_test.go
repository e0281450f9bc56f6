package postgres

import (
	"reflect"
	"strings"
	"testing"

	"listing-service/internal/core/domain"
)

func TestApplyPropertyFilters(t *testing.T) {
	t.Run("no filters keep only the availability condition", func(t *testing.T) {
		where, args := applyPropertyFilters(domain.PropertyFilters{})

		if where != "WHERE p.is_available = true" {
			t.Errorf("where = %q", where)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want none", args)
		}
	})

	t.Run("range filters are inclusive and numbered sequentially", func(t *testing.T) {
		min, max := 100000.0, 500000.0
		minArea := 50
		where, args := applyPropertyFilters(domain.PropertyFilters{
			MinPrice: &min,
			MaxPrice: &max,
			MinArea:  &minArea,
		})

		for _, fragment := range []string{"p.price >= $1", "p.price <= $2", "p.area >= $3"} {
			if !strings.Contains(where, fragment) {
				t.Errorf("where %q missing %q", where, fragment)
			}
		}
		if want := []interface{}{min, max, minArea}; !reflect.DeepEqual(args, want) {
			t.Errorf("args = %v, want %v", args, want)
		}
	})

	t.Run("search builds case-insensitive OR over three columns", func(t *testing.T) {
		where, args := applyPropertyFilters(domain.PropertyFilters{Search: "Area 47"})

		if !strings.Contains(where, "(p.title ILIKE $1 OR p.description ILIKE $1 OR p.location ILIKE $1)") {
			t.Errorf("where = %q", where)
		}
		if want := []interface{}{"%Area 47%"}; !reflect.DeepEqual(args, want) {
			t.Errorf("args = %v, want %v", args, want)
		}
	})

	t.Run("category and price_type filter by equality", func(t *testing.T) {
		where, args := applyPropertyFilters(domain.PropertyFilters{
			Category:  domain.CategoryApartment,
			PriceType: domain.PriceTypeMonth,
		})

		if !strings.Contains(where, "p.category = $1") || !strings.Contains(where, "p.price_type = $2") {
			t.Errorf("where = %q", where)
		}
		if len(args) != 2 {
			t.Errorf("args = %v, want 2 values", args)
		}
	})
}

func TestPropertyOrderClause(t *testing.T) {
	t.Run("whitelisted column with direction", func(t *testing.T) {
		clause := propertyOrderClause(domain.PropertyFilters{OrderBy: "price", Descending: true})
		if clause != "ORDER BY p.price DESC, p.id ASC" {
			t.Errorf("clause = %q", clause)
		}
	})

	t.Run("unknown column falls back to newest first", func(t *testing.T) {
		clause := propertyOrderClause(domain.PropertyFilters{OrderBy: "secret_column"})
		if clause != "ORDER BY p.created_at DESC, p.id ASC" {
			t.Errorf("clause = %q", clause)
		}
	})
}

func TestApplyAgentFilters(t *testing.T) {
	t.Run("defaults to active agents only", func(t *testing.T) {
		where, args := applyAgentFilters(domain.AgentFilters{})
		if where != "WHERE a.is_active = true" {
			t.Errorf("where = %q", where)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want none", args)
		}
	})

	t.Run("explicit is_active=false switches to inactive", func(t *testing.T) {
		inactive := false
		where, args := applyAgentFilters(domain.AgentFilters{IsActive: &inactive})
		if !strings.Contains(where, "a.is_active = $1") {
			t.Errorf("where = %q", where)
		}
		if want := []interface{}{false}; !reflect.DeepEqual(args, want) {
			t.Errorf("args = %v, want %v", args, want)
		}
	})

	t.Run("search spans user and company columns", func(t *testing.T) {
		where, _ := applyAgentFilters(domain.AgentFilters{Search: "banda"})
		if !strings.Contains(where, "u.username ILIKE $1") || !strings.Contains(where, "a.company ILIKE $1") {
			t.Errorf("where = %q", where)
		}
	})
}

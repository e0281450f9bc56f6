package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"listing-service/internal/core/domain"

	"github.com/google/uuid"
)

func TestUpdateProperty(t *testing.T) {
	propertyID := uuid.New()

	existing := func() *domain.Property {
		return &domain.Property{
			ID:        propertyID,
			Title:     "Old title",
			Price:     100000,
			Bedrooms:  2,
			Amenities: []string{"water", "electricity"},
			Images:    []string{"/media/properties/a.jpg"},
		}
	}

	newStorage := func(current *domain.Property, saved **domain.Property) *mockPropertyStorage {
		return &mockPropertyStorage{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
				return current, nil
			},
			UpdateFn: func(ctx context.Context, property *domain.Property) error {
				*saved = property
				return nil
			},
		}
	}

	t.Run("nil fields stay untouched", func(t *testing.T) {
		current := existing()
		var saved *domain.Property
		uc := NewUpdatePropertyUseCase(newStorage(current, &saved), &mockFileStorage{})

		newTitle := "New title"
		_, err := uc.Execute(context.Background(), propertyID, domain.PropertyPatch{Title: &newTitle}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if saved.Title != "New title" {
			t.Errorf("Title = %q, want %q", saved.Title, "New title")
		}
		if saved.Price != 100000 || saved.Bedrooms != 2 {
			t.Errorf("untouched fields changed: price=%v bedrooms=%v", saved.Price, saved.Bedrooms)
		}
	})

	t.Run("invalid amenities string keeps previous value", func(t *testing.T) {
		current := existing()
		var saved *domain.Property
		uc := NewUpdatePropertyUseCase(newStorage(current, &saved), &mockFileStorage{})

		bad := domain.ParseAmenitiesString("definitely not json")
		_, err := uc.Execute(context.Background(), propertyID, domain.PropertyPatch{Amenities: &bad}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"water", "electricity"}
		if !reflect.DeepEqual(saved.Amenities, want) {
			t.Errorf("Amenities = %v, want previous %v", saved.Amenities, want)
		}
	})

	t.Run("valid amenities string replaces the list", func(t *testing.T) {
		current := existing()
		var saved *domain.Property
		uc := NewUpdatePropertyUseCase(newStorage(current, &saved), &mockFileStorage{})

		good := domain.ParseAmenitiesString(`["pool", "gym"]`)
		if _, err := uc.Execute(context.Background(), propertyID, domain.PropertyPatch{Amenities: &good}, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"pool", "gym"}
		if !reflect.DeepEqual(saved.Amenities, want) {
			t.Errorf("Amenities = %v, want %v", saved.Amenities, want)
		}
	})

	t.Run("unknown property returns not found", func(t *testing.T) {
		storage := &mockPropertyStorage{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
				return nil, domain.ErrNotFound
			},
		}
		uc := NewUpdatePropertyUseCase(storage, &mockFileStorage{})

		_, err := uc.Execute(context.Background(), propertyID, domain.PropertyPatch{}, nil)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

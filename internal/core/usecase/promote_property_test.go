package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"listing-service/internal/core/domain"

	"github.com/google/uuid"
)

func TestPromoteProperty(t *testing.T) {
	fixedNow := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	propertyID := uuid.New()

	newStorage := func(promoted *time.Time) *mockPropertyStorage {
		return &mockPropertyStorage{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
				return &domain.Property{ID: id}, nil
			},
			PromoteFn: func(ctx context.Context, id uuid.UUID, featuredUntil time.Time) error {
				*promoted = featuredUntil
				return nil
			},
		}
	}

	t.Run("sets window from now for explicit days", func(t *testing.T) {
		var promoted time.Time
		uc := NewPromotePropertyUseCase(newStorage(&promoted), nil)
		uc.now = func() time.Time { return fixedNow }

		property, err := uc.Execute(context.Background(), propertyID, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := fixedNow.Add(3 * 24 * time.Hour)
		if !promoted.Equal(want) {
			t.Errorf("featured_until = %v, want %v", promoted, want)
		}
		if !property.IsFeatured {
			t.Error("property should be marked featured")
		}
		if property.FeaturedUntil == nil || !property.FeaturedUntil.Equal(want) {
			t.Errorf("FeaturedUntil = %v, want %v", property.FeaturedUntil, want)
		}
	})

	t.Run("zero days falls back to default window", func(t *testing.T) {
		var promoted time.Time
		uc := NewPromotePropertyUseCase(newStorage(&promoted), nil)
		uc.now = func() time.Time { return fixedNow }

		if _, err := uc.Execute(context.Background(), propertyID, 0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := fixedNow.Add(DefaultPromotionDays * 24 * time.Hour)
		if !promoted.Equal(want) {
			t.Errorf("featured_until = %v, want %v", promoted, want)
		}
	})

	t.Run("repeated promote resets window instead of extending", func(t *testing.T) {
		var promoted time.Time
		uc := NewPromotePropertyUseCase(newStorage(&promoted), nil)

		uc.now = func() time.Time { return fixedNow }
		if _, err := uc.Execute(context.Background(), propertyID, 7); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		later := fixedNow.Add(48 * time.Hour)
		uc.now = func() time.Time { return later }
		if _, err := uc.Execute(context.Background(), propertyID, 7); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := later.Add(7 * 24 * time.Hour)
		if !promoted.Equal(want) {
			t.Errorf("featured_until = %v, want window reset from second call (%v)", promoted, want)
		}
	})

	t.Run("negative days give window in the past", func(t *testing.T) {
		var promoted time.Time
		uc := NewPromotePropertyUseCase(newStorage(&promoted), nil)
		uc.now = func() time.Time { return fixedNow }

		if _, err := uc.Execute(context.Background(), propertyID, -2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !promoted.Before(fixedNow) {
			t.Errorf("featured_until = %v, expected it before now", promoted)
		}
	})

	t.Run("unknown property returns not found", func(t *testing.T) {
		storage := &mockPropertyStorage{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
				return nil, domain.ErrNotFound
			},
		}
		uc := NewPromotePropertyUseCase(storage, nil)

		if _, err := uc.Execute(context.Background(), propertyID, 7); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("publish failure does not fail the promote", func(t *testing.T) {
		var promoted time.Time
		publisher := &mockEventPublisher{
			PublishFn: func(ctx context.Context, routingKey string, payload interface{}) error {
				return errors.New("broker down")
			},
		}
		uc := NewPromotePropertyUseCase(newStorage(&promoted), publisher)
		uc.now = func() time.Time { return fixedNow }

		if _, err := uc.Execute(context.Background(), propertyID, 7); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(publisher.published) != 1 {
			t.Errorf("expected exactly one publish attempt, got %d", len(publisher.published))
		}
	})
}

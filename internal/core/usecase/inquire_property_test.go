package usecase

import (
	"context"
	"errors"
	"testing"

	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/google/uuid"
)

func TestInquireProperty(t *testing.T) {
	propertyID := uuid.New()

	t.Run("creates inquiry with forced pending status", func(t *testing.T) {
		var created *domain.PropertyInquiry
		storage := &mockPropertyStorage{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
				return &domain.Property{ID: id}, nil
			},
			CreateInquiryFn: func(ctx context.Context, inquiry *domain.PropertyInquiry) error {
				created = inquiry
				return nil
			},
		}
		publisher := &mockEventPublisher{}
		uc := NewInquirePropertyUseCase(storage, publisher)

		inquiry, err := uc.Execute(context.Background(), propertyID, domain.InquiryDraft{
			Name:    "John Banda",
			Email:   "john@example.com",
			Message: "Is this still available?",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if created == nil {
			t.Fatal("expected inquiry to reach storage")
		}
		if inquiry.Status != domain.InquiryStatusPending {
			t.Errorf("status = %q, want %q", inquiry.Status, domain.InquiryStatusPending)
		}
		if inquiry.PropertyID != propertyID {
			t.Errorf("property_id = %v, want %v", inquiry.PropertyID, propertyID)
		}

		if len(publisher.published) != 1 || publisher.published[0] != port.RoutingKeyInquiryCreated {
			t.Errorf("published = %v, want single %q", publisher.published, port.RoutingKeyInquiryCreated)
		}
	})

	t.Run("unknown property returns not found", func(t *testing.T) {
		storage := &mockPropertyStorage{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
				return nil, domain.ErrNotFound
			},
		}
		uc := NewInquirePropertyUseCase(storage, nil)

		_, err := uc.Execute(context.Background(), propertyID, domain.InquiryDraft{Name: "x", Email: "x@y.z", Message: "m"})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("publish failure does not fail the inquiry", func(t *testing.T) {
		storage := &mockPropertyStorage{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
				return &domain.Property{ID: id}, nil
			},
			CreateInquiryFn: func(ctx context.Context, inquiry *domain.PropertyInquiry) error {
				return nil
			},
		}
		publisher := &mockEventPublisher{
			PublishFn: func(ctx context.Context, routingKey string, payload interface{}) error {
				return errors.New("broker down")
			},
		}
		uc := NewInquirePropertyUseCase(storage, publisher)

		if _, err := uc.Execute(context.Background(), propertyID, domain.InquiryDraft{Name: "x", Email: "x@y.z", Message: "m"}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

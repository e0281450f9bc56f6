package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"
	"listing-service/pkg/rabbitmq/rabbitmq_producer"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ListingEventsPublisherAdapter публикует доменные события каталога
// (listing.created, listing.promoted, inquiry.created) во внешний обменник
type ListingEventsPublisherAdapter struct {
	producer *rabbitmq_producer.Publisher
}

func NewListingEventsPublisherAdapter(producer *rabbitmq_producer.Publisher) (*ListingEventsPublisherAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	return &ListingEventsPublisherAdapter{producer: producer}, nil
}

func (a *ListingEventsPublisherAdapter) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	// 1. Извлекаем и обогащаем логгер
	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":   "ListingEventsPublisherAdapter",
		"routing_key": routingKey,
	})

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to marshal event payload: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent, // Для сохранения сообщений при перезапуске брокера
		Timestamp:    time.Now(),
		Headers:      make(amqp.Table),
	}

	traceID := contextkeys.TraceIDFromContext(ctx)
	if traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	// Устанавливаем таймаут на операцию публикации, если контекст его не предоставляет
	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.producer.Publish(publishCtx, routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish event '%s': %w", routingKey, err)
	}

	adapterLogger.Debug("Event published", nil)
	return nil
}

func (a *ListingEventsPublisherAdapter) Close() error {
	return a.producer.Close()
}

// NoopEventPublisher используется, когда брокер отключен конфигурацией:
// события молча отбрасываются, сервис работает автономно.
type NoopEventPublisher struct{}

func (NoopEventPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	return nil
}

func (NoopEventPublisher) Close() error { return nil }

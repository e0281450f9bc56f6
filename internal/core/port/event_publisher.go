package port

import "context"

// Ключи маршрутизации событий каталога
const (
	RoutingKeyListingCreated  = "listing.created"
	RoutingKeyListingPromoted = "listing.promoted"
	RoutingKeyInquiryCreated  = "inquiry.created"
)

// EventPublisherPort - публикация доменных событий для внешних потребителей.
// Ошибка публикации не должна ронять основную операцию - вызывающий
// логирует и продолжает.
type EventPublisherPort interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
	Close() error
}

package constants

// Обменник доменных событий каталога
const (
	ListingEventsExchange     = "listing_events"
	ListingEventsExchangeType = "direct"
)

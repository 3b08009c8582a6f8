package constants

// Обменники
const (
	MarketEventsExchange = "market_events"
)

// Имена очередей
const (
	QueueVehicleListings = "vehicle_listings"
)

// Ключи маршрутизации
const (
	RoutingKeyVehicleListings  = "market.listings.save"
	RoutingKeyUserInteractions = "market.interactions.recorded"
)

// Инфраструктура ретраев очереди объявлений
const (
	VehicleListingsRetryExchange = "vehicle_listings_retry"
	VehicleListingsRetryQueue    = "vehicle_listings_wait"

	FinalDLXExchange   = "vehicle_listings_final_dlx"
	FinalDLQ           = "vehicle_listings_final_dlq"
	FinalDLQRoutingKey = "listings.dlq.key"
)

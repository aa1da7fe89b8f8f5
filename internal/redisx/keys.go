package redisx

import "time"

const (
	// Stock-level cache per product: stock:{product_id} -> quantity.
	// Refreshed by the inventory worker on every order event.
	KeyProductStock = "stock:%s"

	// Order status cache: order_status:{order_id} -> status string.
	KeyOrderStatus = "order_status:%s"

	// Cached minimum_order_value setting (cents).
	KeyMinOrderValue = "setting:minimum_order_value"

	// Dedup for event processing: dedup:{service}:{event_id}.
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLStockCache   = 10 * time.Minute
	TTLStatusCache  = 5 * time.Minute
	TTLSettingCache = 5 * time.Minute
	TTLDedup        = 48 * time.Hour
)

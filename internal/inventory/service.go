// Package inventory keeps the Redis read-side caches in sync with the
// order stream: per-product stock levels and per-order status.
package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/akshayam/wellness-store.git/internal/orders"
	"github.com/akshayam/wellness-store.git/internal/redisx"
)

// QuantityReader reports current stock levels for a set of products.
type QuantityReader interface {
	Quantities(ctx context.Context, ids []string) (map[string]int, error)
}

type Service struct {
	Products QuantityReader
	Redis    *redis.Client
}

// Handle is installed as the consumer handler for the order event topic.
func (s *Service) Handle(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}

	// dedup by event_id so redeliveries are no-ops
	dkey := fmt.Sprintf(redisx.KeyDedup, "inventory", env.EventID)
	exists, _ := redisx.Exists(ctx, s.Redis, dkey)
	if exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	switch env.EventType {
	case orders.EventOrderPlaced:
		var p orders.OrderPlacedPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return err
		}
		s.setStatus(ctx, p.OrderID, p.Status)
		return s.refreshStock(ctx, productIDs(p.Items))

	case orders.EventOrderEdited:
		var p orders.OrderEditedPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return err
		}
		ids := productIDs(p.Items)
		ids = append(ids, productIDs(p.PreviousItems)...)
		return s.refreshStock(ctx, ids)

	case orders.EventOrderStatusChanged:
		var p orders.OrderStatusChangedPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return err
		}
		s.setStatus(ctx, p.OrderID, p.Status)
		return nil

	case orders.EventOrderDeleted:
		var p orders.OrderDeletedPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return err
		}
		_ = s.Redis.Del(ctx, fmt.Sprintf(redisx.KeyOrderStatus, p.OrderID)).Err()
		return s.refreshStock(ctx, productIDs(p.Items))

	default:
		return nil // ignore unknown event types
	}
}

func (s *Service) setStatus(ctx context.Context, orderID, status string) {
	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	if err := s.Redis.Set(ctx, key, status, redisx.TTLStatusCache).Err(); err != nil {
		log.Printf("inventory: cache status for %s: %v", orderID, err)
	}
}

// refreshStock re-reads the authoritative quantities and rewrites the
// stock keys. Errors from the store propagate so the offset is not
// committed and the event gets redelivered.
func (s *Service) refreshStock(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	qs, err := s.Products.Quantities(ctx, ids)
	if err != nil {
		return err
	}
	for id, q := range qs {
		key := fmt.Sprintf(redisx.KeyProductStock, id)
		if err := s.Redis.Set(ctx, key, q, redisx.TTLStockCache).Err(); err != nil {
			log.Printf("inventory: cache stock for %s: %v", id, err)
		}
	}
	return nil
}

func productIDs(items []orders.ItemQty) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ProductID)
	}
	return out
}

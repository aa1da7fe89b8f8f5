package orders

import (
	"encoding/json"
	"time"
)

const (
	EventOrderPlaced        = "OrderPlaced"
	EventOrderEdited        = "OrderEdited"
	EventOrderStatusChanged = "OrderStatusChanged"
	EventOrderDeleted       = "OrderDeleted"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id
	Payload       json.RawMessage `json:"payload"`
}

type ItemQty struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func itemQtys(items []OrderItem) []ItemQty {
	out := make([]ItemQty, 0, len(items))
	for _, it := range items {
		out = append(out, ItemQty{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return out
}

type OrderPlacedPayload struct {
	OrderID    string    `json:"order_id"`
	UserEmail  string    `json:"user_email"`
	Status     string    `json:"status"`
	Items      []ItemQty `json:"items"`
	TotalCents int64     `json:"total_cents"`
}

type OrderEditedPayload struct {
	OrderID       string    `json:"order_id"`
	Items         []ItemQty `json:"items"`
	PreviousItems []ItemQty `json:"previous_items,omitempty"`
	TotalCents    int64     `json:"total_cents"`
}

type OrderStatusChangedPayload struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

type OrderDeletedPayload struct {
	OrderID string    `json:"order_id"`
	Items   []ItemQty `json:"items"`
}

func NewOrderPlacedPayload(o *Order) OrderPlacedPayload {
	return OrderPlacedPayload{
		OrderID:    o.ID,
		UserEmail:  o.UserEmail,
		Status:     string(o.Status),
		Items:      itemQtys(o.Items),
		TotalCents: o.TotalCents,
	}
}

func NewOrderEditedPayload(o *Order, previous []OrderItem) OrderEditedPayload {
	return OrderEditedPayload{
		OrderID:       o.ID,
		Items:         itemQtys(o.Items),
		PreviousItems: itemQtys(previous),
		TotalCents:    o.TotalCents,
	}
}

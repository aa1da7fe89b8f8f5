package orders

import "time"

// OrderItem is one product/quantity line in an order. ProductName and
// PriceCents are denormalized at order time; TotalCents is supplied by
// the caller and trusted as-is (see DESIGN.md).
type OrderItem struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	PriceCents  int64  `json:"price_cents"`
	TotalCents  int64  `json:"total_cents"`
}

// Order carries a denormalized customer snapshot copied from the user
// at order time, not a live reference.
type Order struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	UserName    string      `json:"user_name"`
	UserEmail   string      `json:"user_email"`
	UserPhone   string      `json:"user_phone"`
	UserAddress string      `json:"user_address"`
	Items       []OrderItem `json:"items"`
	TotalCents  int64       `json:"total_amount_cents"`
	Status      Status      `json:"status"`

	EmailNotificationFailed bool       `json:"email_notification_failed,omitempty"`
	EmailFailureAt          *time.Time `json:"email_failure_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerInfo is the checkout identity block. Password is write-only:
// it is hashed on arrival and never echoed back.
type CustomerInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Password string `json:"password"`
}

// CustomerSnapshot is the subset of CustomerInfo persisted onto the
// order document during an edit.
type CustomerSnapshot struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

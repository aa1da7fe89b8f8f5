package catalog

import "time"

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    *string   `json:"image_url"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
}

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CategoryID  string    `json:"category_id"`
	PriceCents  int64     `json:"price_cents"`
	Quantity    int       `json:"quantity"`
	ImageURL    *string   `json:"image_url"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
}

type CategoryUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
}

type ProductUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	CategoryID  *string `json:"category_id"`
	PriceCents  *int64  `json:"price_cents"`
	Quantity    *int    `json:"quantity"`
	ImageURL    *string `json:"image_url"`
}

// ReorderItem carries one id -> position assignment for bulk reorders.
type ReorderItem struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

package catalog

import (
	"context"
	"errors"
	"fmt"
)

// ProductGetter is the read-only slice of the store the validator needs.
type ProductGetter interface {
	GetProduct(ctx context.Context, id string) (*Product, error)
}

type StockRequestItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type InvalidItem struct {
	ProductID         string `json:"product_id"`
	ProductName       string `json:"product_name,omitempty"`
	RequestedQuantity int    `json:"requested_quantity"`
	AvailableQuantity int    `json:"available_quantity"`
	Error             string `json:"error"`
}

type StockValidation struct {
	Valid        bool          `json:"valid"`
	Message      string        `json:"message"`
	InvalidItems []InvalidItem `json:"invalid_items"`
}

// StockValidator checks requested quantities against current inventory.
// It is a pure read: it takes no reservation, so a concurrent write can
// still race past a successful validation.
type StockValidator struct {
	Products ProductGetter
}

func (v *StockValidator) Validate(ctx context.Context, items []StockRequestItem) (*StockValidation, error) {
	invalid := []InvalidItem{}

	for _, it := range items {
		p, err := v.Products.GetProduct(ctx, it.ProductID)
		switch {
		case errors.Is(err, ErrNotFound):
			invalid = append(invalid, InvalidItem{
				ProductID:         it.ProductID,
				RequestedQuantity: it.Quantity,
				AvailableQuantity: 0,
				Error:             "Product not found",
			})
			continue
		case errors.Is(err, ErrInvalidID):
			invalid = append(invalid, InvalidItem{
				ProductID:         it.ProductID,
				RequestedQuantity: it.Quantity,
				AvailableQuantity: 0,
				Error:             "Invalid product ID",
			})
			continue
		case err != nil:
			return nil, err
		}

		if p.Quantity <= 0 {
			invalid = append(invalid, InvalidItem{
				ProductID:         it.ProductID,
				ProductName:       p.Name,
				RequestedQuantity: it.Quantity,
				AvailableQuantity: p.Quantity,
				Error:             fmt.Sprintf("%s is out of stock", p.Name),
			})
		} else if p.Quantity < it.Quantity {
			invalid = append(invalid, InvalidItem{
				ProductID:         it.ProductID,
				ProductName:       p.Name,
				RequestedQuantity: it.Quantity,
				AvailableQuantity: p.Quantity,
				Error: fmt.Sprintf("%s has only %d items available, but you requested %d",
					p.Name, p.Quantity, it.Quantity),
			})
		}
	}

	if len(invalid) > 0 {
		return &StockValidation{
			Valid:        false,
			Message:      "Some items in your cart are not available in the requested quantities",
			InvalidItems: invalid,
		}, nil
	}
	return &StockValidation{
		Valid:        true,
		Message:      "All items are available in stock",
		InvalidItems: invalid,
	}, nil
}

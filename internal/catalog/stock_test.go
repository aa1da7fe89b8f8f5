package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProducts map[string]*Product

func (f fakeProducts) GetProduct(_ context.Context, id string) (*Product, error) {
	if id == "bad-id" {
		return nil, ErrInvalidID
	}
	p, ok := f[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func TestValidateAllAvailable(t *testing.T) {
	v := &StockValidator{Products: fakeProducts{
		"p1": {ID: "p1", Name: "Ashwagandha Powder", Quantity: 10},
		"p2": {ID: "p2", Name: "Herbal Tea", Quantity: 3},
	}}

	res, err := v.Validate(context.Background(), []StockRequestItem{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 3},
	})
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, "All items are available in stock", res.Message)
	assert.Empty(t, res.InvalidItems)
}

func TestValidateShortfall(t *testing.T) {
	v := &StockValidator{Products: fakeProducts{
		"p1": {ID: "p1", Name: "Herbal Tea", Quantity: 1},
	}}

	res, err := v.Validate(context.Background(), []StockRequestItem{
		{ProductID: "p1", Quantity: 2},
	})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	require.Len(t, res.InvalidItems, 1)

	item := res.InvalidItems[0]
	assert.Equal(t, "p1", item.ProductID)
	assert.Equal(t, 2, item.RequestedQuantity)
	assert.Equal(t, 1, item.AvailableQuantity)
	assert.Equal(t, "Herbal Tea has only 1 items available, but you requested 2", item.Error)
}

func TestValidateOutOfStock(t *testing.T) {
	v := &StockValidator{Products: fakeProducts{
		"p1": {ID: "p1", Name: "Herbal Tea", Quantity: 0},
	}}

	res, err := v.Validate(context.Background(), []StockRequestItem{
		{ProductID: "p1", Quantity: 1},
	})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	require.Len(t, res.InvalidItems, 1)
	assert.Equal(t, "Herbal Tea is out of stock", res.InvalidItems[0].Error)
	assert.Equal(t, 0, res.InvalidItems[0].AvailableQuantity)
}

func TestValidateMissingAndMalformed(t *testing.T) {
	v := &StockValidator{Products: fakeProducts{}}

	res, err := v.Validate(context.Background(), []StockRequestItem{
		{ProductID: "missing", Quantity: 1},
		{ProductID: "bad-id", Quantity: 4},
	})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	require.Len(t, res.InvalidItems, 2)
	assert.Equal(t, "Product not found", res.InvalidItems[0].Error)
	assert.Equal(t, 0, res.InvalidItems[0].AvailableQuantity)
	assert.Equal(t, "Invalid product ID", res.InvalidItems[1].Error)
	assert.Equal(t, 4, res.InvalidItems[1].RequestedQuantity)
}

// Every violated item must be reported, not just the first.
func TestValidateAccumulatesAllViolations(t *testing.T) {
	v := &StockValidator{Products: fakeProducts{
		"p1": {ID: "p1", Name: "A", Quantity: 0},
		"p2": {ID: "p2", Name: "B", Quantity: 1},
	}}

	res, err := v.Validate(context.Background(), []StockRequestItem{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "p2", Quantity: 5},
		{ProductID: "p3", Quantity: 1},
	})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Len(t, res.InvalidItems, 3)
}

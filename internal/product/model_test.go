package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func variantProduct() *Product {
	return &Product{
		ID:            "prod-1",
		Name:          "Rosemary Oil",
		BasePrice:     149.0,
		StockQuantity: 50,
		Sizes: []SizeVariant{
			{Size: "100ml", Price: 199.0, StockQuantity: 10},
			{Size: "250ml", Price: 399.0, StockQuantity: 0},
		},
	}
}

func flatProduct() *Product {
	return &Product{
		ID:            "prod-2",
		Name:          "Gift Card",
		BasePrice:     500.0,
		StockQuantity: 20,
	}
}

func TestProduct_PriceForSize(t *testing.T) {
	p := variantProduct()

	assert.Equal(t, 199.0, p.PriceForSize("100ml"))
	assert.Equal(t, 399.0, p.PriceForSize("250ml"))
	// Unknown size falls back to the base price
	assert.Equal(t, 149.0, p.PriceForSize("1L"))

	assert.Equal(t, 500.0, flatProduct().PriceForSize("anything"))
}

func TestProduct_StockForSize(t *testing.T) {
	p := variantProduct()

	assert.Equal(t, 10, p.StockForSize("100ml"))
	assert.Equal(t, 0, p.StockForSize("250ml"))
	assert.Equal(t, 50, p.StockForSize("1L"))

	assert.Equal(t, 20, flatProduct().StockForSize("anything"))
}

func TestProduct_HasSize(t *testing.T) {
	p := variantProduct()

	assert.True(t, p.HasSize("100ml"))
	assert.False(t, p.HasSize("1L"))

	// Products without variants accept any size label
	assert.True(t, flatProduct().HasSize("default"))
}

package product

import "time"

// SizeVariant is an independently priced and stocked configuration of a
// product (e.g. a bottle size).
type SizeVariant struct {
	ID            string  `json:"id"`
	ProductID     string  `json:"product_id"`
	Size          string  `json:"size"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
}

type Product struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   *string       `json:"description,omitempty"`
	Category      string        `json:"category"`
	BasePrice     float64       `json:"base_price"`
	StockQuantity int           `json:"stock_quantity"`
	IsActive      bool          `json:"is_active"`
	Sizes         []SizeVariant `json:"sizes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// PriceForSize resolves the price for a size, falling back to the flat
// base price when the product has no size variants.
func (p *Product) PriceForSize(size string) float64 {
	if len(p.Sizes) > 0 {
		for _, s := range p.Sizes {
			if s.Size == size {
				return s.Price
			}
		}
		return p.BasePrice
	}
	return p.BasePrice
}

// StockForSize resolves available stock for a size, falling back to the
// flat stock quantity when the product has no size variants.
func (p *Product) StockForSize(size string) int {
	if len(p.Sizes) > 0 {
		for _, s := range p.Sizes {
			if s.Size == size {
				return s.StockQuantity
			}
		}
		return p.StockQuantity
	}
	return p.StockQuantity
}

// HasSize reports whether size is a valid selection for the product. A
// product without variants accepts any size label the client sends, matching
// the flat-stock fallback.
func (p *Product) HasSize(size string) bool {
	if len(p.Sizes) == 0 {
		return true
	}
	for _, s := range p.Sizes {
		if s.Size == size {
			return true
		}
	}
	return false
}

type ListOptions struct {
	Category   string
	Search     string
	OnlyActive bool
	Limit      int
	Page       int
}

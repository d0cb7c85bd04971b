package cart

import (
	"time"

	"purenest-be/internal/utils"
)

// CartItem is one line of a cart, keyed by (product, size). PriceAtTime is
// the catalog price snapshotted when the line was created or last changed;
// it does not track later price edits.
type CartItem struct {
	ID          string    `json:"id"`
	CartID      string    `json:"cart_id"`
	ProductID   string    `json:"product_id"`
	Size        string    `json:"size"`
	Quantity    int       `json:"quantity"`
	PriceAtTime float64   `json:"price_at_time"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Joined product fields for read responses.
	ProductName   string `json:"product_name,omitempty"`
	ProductActive bool   `json:"-"`
}

// Cart is the single mutable cart of a user, created lazily on first access.
type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

func (c *Cart) TotalAmount() float64 {
	total := 0.0
	for _, item := range c.Items {
		total += item.PriceAtTime * float64(item.Quantity)
	}
	return utils.Round2(total)
}

// Summary is the `{totalItems, totalAmount}` block of cart responses.
type Summary struct {
	TotalItems  int     `json:"totalItems"`
	TotalAmount float64 `json:"totalAmount"`
}

// ValidationResult aggregates per-line checkout readiness checks.
type ValidationResult struct {
	Valid   bool     `json:"valid"`
	Errors  []string `json:"errors"`
	Summary Summary  `json:"summary"`
}

type AddItemParams struct {
	UserID    string
	ProductID string
	Size      string
	Quantity  int
}

type UpdateItemParams struct {
	UserID    string
	ProductID string
	Size      string
	Quantity  int
}

type RemoveItemParams struct {
	UserID    string
	ProductID string
	Size      string
}

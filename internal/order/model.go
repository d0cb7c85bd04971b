package order

import "time"

// OrderItem is an immutable snapshot of a cart line. Price is copied from
// the cart's price_at_time at checkout and never re-priced.
type OrderItem struct {
	ID        string  `json:"id"`
	OrderID   string  `json:"order_id"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Size      string  `json:"size"`

	ProductName string `json:"product_name,omitempty"`

	// sizeVariant marks whether stock for this line lives in product_sizes
	// rather than the product's flat stock column.
	sizeVariant bool
}

type Address struct {
	FullName     string  `json:"fullName"`
	Phone        string  `json:"phone"`
	AddressLine1 string  `json:"addressLine1"`
	AddressLine2 *string `json:"addressLine2,omitempty"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	PostalCode   string  `json:"postalCode"`
	Country      string  `json:"country"`
}

type Order struct {
	ID              string        `json:"id"`
	OrderNumber     string        `json:"order_number"`
	UserID          string        `json:"user_id"`
	Items           []OrderItem   `json:"items"`
	TotalAmount     float64       `json:"total_amount"`
	ShippingAmount  float64       `json:"shipping_amount"`
	DiscountAmount  float64       `json:"discount_amount"`
	FinalAmount     float64       `json:"final_amount"`
	Status          Status        `json:"status"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	ShippingAddress Address       `json:"shipping_address"`
	BillingAddress  Address       `json:"billing_address"`
	Notes           *string       `json:"notes,omitempty"`
	TrackingNumber  *string       `json:"tracking_number,omitempty"`
	PaymentID       *string       `json:"payment_id,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func (o *Order) TotalItems() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

type CreateOrderParams struct {
	UserID          string
	ShippingAddress Address
	BillingAddress  *Address
	Notes           *string
}

type ListParams struct {
	UserID        string // empty for admin listing across users
	Status        Status
	PaymentStatus PaymentStatus
	Search        string
	Limit         int
	Page          int
}

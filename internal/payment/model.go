package payment

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

// RefundDetails is the refund sub-record inside TransactionDetails.
type RefundDetails struct {
	ID          string    `json:"id"`
	Amount      int64     `json:"amount"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
	ProcessedAt time.Time `json:"processed_at"`
}

// TransactionDetails is the free-form gateway detail blob stored as jsonb.
type TransactionDetails struct {
	GatewayPaymentID string         `json:"gateway_payment_id,omitempty"`
	GatewayOrderID   string         `json:"gateway_order_id,omitempty"`
	Method           string         `json:"method,omitempty"`
	Amount           int64          `json:"amount,omitempty"`
	Currency         string         `json:"currency,omitempty"`
	Status           string         `json:"status,omitempty"`
	Captured         bool           `json:"captured,omitempty"`
	Description      string         `json:"description,omitempty"`
	Refund           *RefundDetails `json:"refund,omitempty"`
	ErrorCode        string         `json:"error_code,omitempty"`
	ErrorDescription string         `json:"error_description,omitempty"`
	FailedAt         *time.Time     `json:"failed_at,omitempty"`
}

// Payment represents one initiated gateway transaction for an order. At most
// one pending payment exists per order at a time.
type Payment struct {
	ID                 string             `json:"id"`
	OrderID            string             `json:"order_id"`
	GatewayOrderID     string             `json:"gateway_order_id"`
	GatewayPaymentID   *string            `json:"gateway_payment_id,omitempty"`
	Amount             float64            `json:"amount"`
	Currency           string             `json:"currency"`
	Status             Status             `json:"status"`
	Method             *string            `json:"method,omitempty"`
	TransactionDetails TransactionDetails `json:"transaction_details"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// CheckoutOrder is what the client needs to open the gateway's checkout.
type CheckoutOrder struct {
	GatewayOrderID string  `json:"gatewayOrderId"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	OrderID        string  `json:"orderId"`
	OrderNumber    string  `json:"orderNumber"`
	PaymentID      string  `json:"paymentId,omitempty"`
}

type VerifyParams struct {
	OrderID          string
	GatewayPaymentID string
	Signature        string
}

type FailureParams struct {
	OrderID          string
	GatewayPaymentID string
	ErrorCode        string
	ErrorDescription string
}

type RefundResult struct {
	RefundID string  `json:"refundId"`
	Amount   float64 `json:"amount"`
	Status   string  `json:"status"`
}

package payment

import "context"

// GatewayOrder is a payment intent created at the gateway. Amount is in
// minor currency units.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// GatewayPayment is the gateway's server-side view of a payment.
type GatewayPayment struct {
	ID          string `json:"id"`
	OrderID     string `json:"order_id"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
	Method      string `json:"method"`
	Captured    bool   `json:"captured"`
	Description string `json:"description"`
}

type GatewayRefund struct {
	ID     string `json:"id"`
	Amount int64  `json:"amount"`
	Status string `json:"status"`
}

// Gateway abstracts the hosted payments API. All amounts cross this
// boundary in minor currency units.
type Gateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*GatewayOrder, error)
	FetchPayment(ctx context.Context, paymentID string) (*GatewayPayment, error)
	Capture(ctx context.Context, paymentID string, amountMinor int64, currency string) (*GatewayPayment, error)
	Refund(ctx context.Context, paymentID string, amountMinor int64, notes string) (*GatewayRefund, error)

	// VerifySignature checks the HMAC the gateway's client-side checkout
	// returns on success against the shared key secret.
	VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool
}

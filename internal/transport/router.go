package transport

import (
	"net/http"

	"purenest-be/internal/logger"
	"purenest-be/internal/middleware"
)

// Handlers groups the HTTP handlers the router wires up.
type Handlers struct {
	Product *ProductHandler
	Cart    *CartHandler
	Order   *OrderHandler
	Payment *PaymentHandler
}

// NewRouter builds the HTTP routing tree. Auth is parsed globally so every
// handler can read the user from context; per-route guards live in the
// handlers themselves.
func NewRouter(h Handlers, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		respondSuccess(w, http.StatusOK, "ok", nil)
	})

	// catalog
	mux.HandleFunc("GET /products", h.Product.List)
	mux.HandleFunc("GET /products/{id}", h.Product.Get)

	// cart
	mux.HandleFunc("GET /cart", h.Cart.GetCart)
	mux.HandleFunc("POST /cart", h.Cart.AddItem)
	mux.HandleFunc("DELETE /cart", h.Cart.Clear)
	mux.HandleFunc("POST /cart/validate", h.Cart.Validate)
	mux.HandleFunc("PUT /cart/items/{productId}/{size}", h.Cart.UpdateItem)
	mux.HandleFunc("DELETE /cart/items/{productId}/{size}", h.Cart.RemoveItem)

	// orders
	mux.HandleFunc("POST /orders", h.Order.Create)
	mux.HandleFunc("GET /orders", h.Order.List)
	mux.HandleFunc("GET /orders/{id}", h.Order.Get)
	mux.HandleFunc("PUT /orders/{id}/cancel", h.Order.Cancel)

	// payments, behind the strict limiter
	strict := func(fn http.HandlerFunc) http.Handler {
		return middleware.StrictRateLimit(fn)
	}
	mux.Handle("POST /payments/create-order", strict(h.Payment.CreateOrder))
	mux.Handle("POST /payments/verify", strict(h.Payment.Verify))
	mux.Handle("POST /payments/failed", strict(h.Payment.Failure))
	mux.HandleFunc("GET /payments/order/{orderId}", h.Payment.GetByOrder)

	// admin
	mux.HandleFunc("GET /admin/orders", h.Order.AdminList)
	mux.HandleFunc("PUT /admin/orders/{id}/status", h.Order.AdminUpdateStatus)
	mux.Handle("POST /admin/payments/{paymentId}/refund", strict(h.Payment.AdminRefund))

	var handler http.Handler = mux
	handler = middleware.RateLimit(handler)
	handler = middleware.AuthMiddleware(jwtSecret)(handler)
	handler = logger.RequestIDMiddleware(handler)

	return handler
}

package transport

import (
	"errors"
	"net/http"

	"purenest-be/internal/logger"
	"purenest-be/internal/order"

	"go.uber.org/zap"
)

type OrderHandler struct {
	svc order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

func orderErrorStatus(err error) (int, string) {
	var cartErr *order.CartInvalidError
	switch {
	case errors.As(err, &cartErr):
		return http.StatusBadRequest, cartErr.Error()
	case errors.Is(err, order.ErrOrderNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, order.ErrUnauthorized):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, order.ErrCartEmpty),
		errors.Is(err, order.ErrProductUnavailable),
		errors.Is(err, order.ErrInsufficientStock),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrAlreadyCancelled),
		errors.Is(err, order.ErrOrderShipped):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "failed to process order request"
	}
}

// Create handles POST /orders
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body struct {
		ShippingAddress order.Address  `json:"shippingAddress"`
		BillingAddress  *order.Address `json:"billingAddress"`
		Notes           *string        `json:"notes"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.ShippingAddress.FullName == "" || body.ShippingAddress.AddressLine1 == "" {
		respondError(w, http.StatusBadRequest, "shipping address is required")
		return
	}

	o, err := h.svc.CreateFromCart(r.Context(), order.CreateOrderParams{
		UserID:          userID,
		ShippingAddress: body.ShippingAddress,
		BillingAddress:  body.BillingAddress,
		Notes:           body.Notes,
	})
	if err != nil {
		logger.FromCtx(r.Context()).Warn("order creation failed", zap.Error(err))
		code, msg := orderErrorStatus(err)
		respondError(w, code, msg)
		return
	}

	respondSuccess(w, http.StatusCreated, "Order created successfully", map[string]any{
		"order": o,
	})
}

// List handles GET /orders (the caller's own orders)
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	orders, total, err := h.svc.GetOrders(r.Context(), order.ListParams{
		UserID: userID,
		Status: order.Status(r.URL.Query().Get("status")),
		Limit:  limit,
		Page:   page,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get orders")
		return
	}

	respondSuccess(w, http.StatusOK, "", map[string]any{
		"orders":     orders,
		"pagination": buildPagination(page, limit, total),
	})
}

// Get handles GET /orders/{id}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	o, err := h.svc.GetOrderDetail(r.Context(), userID, r.PathValue("id"), isAdmin(r))
	if err != nil {
		code, msg := orderErrorStatus(err)
		respondError(w, code, msg)
		return
	}

	respondSuccess(w, http.StatusOK, "", map[string]any{"order": o})
}

// Cancel handles PUT /orders/{id}/cancel
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.svc.Cancel(r.Context(), userID, r.PathValue("id")); err != nil {
		code, msg := orderErrorStatus(err)
		respondError(w, code, msg)
		return
	}

	respondSuccess(w, http.StatusOK, "Order cancelled successfully", nil)
}

// AdminList handles GET /admin/orders
func (h *OrderHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)

	orders, total, err := h.svc.GetOrders(r.Context(), order.ListParams{
		Status:        order.Status(r.URL.Query().Get("status")),
		PaymentStatus: order.PaymentStatus(r.URL.Query().Get("paymentStatus")),
		Search:        r.URL.Query().Get("search"),
		Limit:         limit,
		Page:          page,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get orders")
		return
	}

	respondSuccess(w, http.StatusOK, "", map[string]any{
		"orders":     orders,
		"pagination": buildPagination(page, limit, total),
	})
}

// AdminUpdateStatus handles PUT /admin/orders/{id}/status
func (h *OrderHandler) AdminUpdateStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	o, err := h.svc.UpdateStatus(r.Context(), r.PathValue("id"), order.Status(body.Status))
	if err != nil {
		code, msg := orderErrorStatus(err)
		respondError(w, code, msg)
		return
	}

	respondSuccess(w, http.StatusOK, "Order status updated successfully", map[string]any{
		"order": map[string]any{
			"id":          o.ID,
			"orderNumber": o.OrderNumber,
			"status":      o.Status,
			"updatedAt":   o.UpdatedAt,
		},
	})
}

package transport

import (
	"errors"
	"net/http"

	"purenest-be/internal/cart"
	"purenest-be/internal/logger"

	"go.uber.org/zap"
)

type CartHandler struct {
	svc cart.Service
}

func NewCartHandler(svc cart.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

func cartErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, cart.ErrProductUnavailable):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, cart.ErrCartItemNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, cart.ErrInvalidSize),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrInsufficientStock):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "failed to process cart request"
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	c, err := h.svc.GetCart(r.Context(), userID)
	if err != nil {
		logger.FromCtx(r.Context()).Error("get cart failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to get cart items")
		return
	}

	respondSuccess(w, http.StatusOK, "", map[string]any{
		"cartItems": c.Items,
		"summary": cart.Summary{
			TotalItems:  c.TotalItems(),
			TotalAmount: c.TotalAmount(),
		},
	})
}

// AddItem handles POST /cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
		Size      string `json:"size"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.ProductID == "" || body.Size == "" {
		respondError(w, http.StatusBadRequest, "productId and size are required")
		return
	}

	item, err := h.svc.AddItem(r.Context(), cart.AddItemParams{
		UserID:    userID,
		ProductID: body.ProductID,
		Size:      body.Size,
		Quantity:  body.Quantity,
	})
	if err != nil {
		code, msg := cartErrorStatus(err)
		respondError(w, code, msg)
		return
	}

	respondSuccess(w, http.StatusCreated, "Item added to cart successfully", map[string]any{
		"cartItem": item,
	})
}

// UpdateItem handles PUT /cart/items/{productId}/{size}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	item, err := h.svc.UpdateQuantity(r.Context(), cart.UpdateItemParams{
		UserID:    userID,
		ProductID: r.PathValue("productId"),
		Size:      r.PathValue("size"),
		Quantity:  body.Quantity,
	})
	if err != nil {
		code, msg := cartErrorStatus(err)
		respondError(w, code, msg)
		return
	}

	respondSuccess(w, http.StatusOK, "Cart item updated successfully", map[string]any{
		"cartItem": item,
	})
}

// RemoveItem handles DELETE /cart/items/{productId}/{size}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	err := h.svc.RemoveItem(r.Context(), cart.RemoveItemParams{
		UserID:    userID,
		ProductID: r.PathValue("productId"),
		Size:      r.PathValue("size"),
	})
	if err != nil {
		code, msg := cartErrorStatus(err)
		respondError(w, code, msg)
		return
	}

	respondSuccess(w, http.StatusOK, "Item removed from cart successfully", nil)
}

// Clear handles DELETE /cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.svc.Clear(r.Context(), userID); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to clear cart")
		return
	}

	respondSuccess(w, http.StatusOK, "Cart cleared successfully", nil)
}

// Validate handles POST /cart/validate
func (h *CartHandler) Validate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	c, err := h.svc.GetCart(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to validate cart")
		return
	}

	result, err := h.svc.Validate(r.Context(), c)
	if err != nil {
		logger.FromCtx(r.Context()).Error("cart validation failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to validate cart")
		return
	}

	respondSuccess(w, http.StatusOK, "", result)
}

package transport

import (
	"errors"
	"net/http"

	"purenest-be/internal/logger"
	"purenest-be/internal/order"
	"purenest-be/internal/payment"

	"go.uber.org/zap"
)

type PaymentHandler struct {
	svc payment.Service
}

func NewPaymentHandler(svc payment.Service) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// paymentErrorStatus maps sentinel errors to HTTP codes. Gateway failures
// deliberately surface as a generic message so gateway internals never leak.
func paymentErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, payment.ErrPaymentNotFound),
		errors.Is(err, order.ErrOrderNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, payment.ErrAccessDenied):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, payment.ErrOrderAlreadyPaid),
		errors.Is(err, payment.ErrOrderCancelled),
		errors.Is(err, payment.ErrPaymentNotCompleted),
		errors.Is(err, payment.ErrInvalidSignature):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, payment.ErrGatewayTimeout),
		errors.Is(err, payment.ErrGatewayRejected):
		return http.StatusBadGateway, "payment gateway is unavailable, please try again"
	default:
		return http.StatusInternalServerError, "failed to process payment request"
	}
}

// CreateOrder handles POST /payments/create-order
func (h *PaymentHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body struct {
		OrderID string `json:"orderId"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.OrderID == "" {
		respondError(w, http.StatusBadRequest, "orderId is required")
		return
	}

	checkout, err := h.svc.CreatePaymentOrder(r.Context(), userID, body.OrderID)
	if err != nil {
		logger.FromCtx(r.Context()).Warn("create payment order failed", zap.Error(err))
		code, msg := paymentErrorStatus(err)
		respondError(w, code, msg)
		return
	}

	respondSuccess(w, http.StatusOK, "Payment order created successfully", checkout)
}

// Verify handles POST /payments/verify
func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	var body struct {
		OrderID   string `json:"orderId"`
		PaymentID string `json:"paymentId"`
		Signature string `json:"signature"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.OrderID == "" || body.PaymentID == "" || body.Signature == "" {
		respondError(w, http.StatusBadRequest, "orderId, paymentId and signature are required")
		return
	}

	p, err := h.svc.VerifyPayment(r.Context(), payment.VerifyParams{
		OrderID:          body.OrderID,
		GatewayPaymentID: body.PaymentID,
		Signature:        body.Signature,
	})
	if err != nil {
		logger.FromCtx(r.Context()).Warn("payment verification failed", zap.Error(err))
		code, msg := paymentErrorStatus(err)
		respondError(w, code, msg)
		return
	}

	respondSuccess(w, http.StatusOK, "Payment verified successfully", map[string]any{
		"paymentId":        p.ID,
		"gatewayPaymentId": body.PaymentID,
		"amount":           p.Amount,
		"status":           p.Status,
	})
}

// Failure handles POST /payments/failed
func (h *PaymentHandler) Failure(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	var body struct {
		OrderID          string `json:"orderId"`
		PaymentID        string `json:"paymentId"`
		ErrorCode        string `json:"errorCode"`
		ErrorDescription string `json:"errorDescription"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	err := h.svc.HandleFailure(r.Context(), payment.FailureParams{
		OrderID:          body.OrderID,
		GatewayPaymentID: body.PaymentID,
		ErrorCode:        body.ErrorCode,
		ErrorDescription: body.ErrorDescription,
	})
	if err != nil {
		code, msg := paymentErrorStatus(err)
		respondError(w, code, msg)
		return
	}

	respondSuccess(w, http.StatusOK, "Payment failure recorded", nil)
}

// GetByOrder handles GET /payments/order/{orderId}
func (h *PaymentHandler) GetByOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	p, err := h.svc.GetPaymentByOrder(r.Context(), userID, r.PathValue("orderId"), isAdmin(r))
	if err != nil {
		code, msg := paymentErrorStatus(err)
		respondError(w, code, msg)
		return
	}

	respondSuccess(w, http.StatusOK, "", map[string]any{"payment": p})
}

// AdminRefund handles POST /admin/payments/{paymentId}/refund
func (h *PaymentHandler) AdminRefund(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	var body struct {
		Amount *float64 `json:"amount"`
		Notes  string   `json:"notes"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Notes == "" {
		body.Notes = "Admin refund"
	}

	result, err := h.svc.Refund(r.Context(), r.PathValue("paymentId"), body.Amount, body.Notes)
	if err != nil {
		logger.FromCtx(r.Context()).Warn("refund failed", zap.Error(err))
		code, msg := paymentErrorStatus(err)
		respondError(w, code, msg)
		return
	}

	respondSuccess(w, http.StatusOK, "Refund processed successfully", result)
}

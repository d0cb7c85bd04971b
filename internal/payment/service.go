package payment

import (
	"context"
	"time"

	"purenest-be/internal/cart"
	"purenest-be/internal/logger"
	"purenest-be/internal/order"
	"purenest-be/internal/utils"

	"go.uber.org/zap"
)

const defaultCurrency = "INR"

type Service interface {
	CreatePaymentOrder(ctx context.Context, userID, orderID string) (*CheckoutOrder, error)
	VerifyPayment(ctx context.Context, params VerifyParams) (*Payment, error)
	HandleFailure(ctx context.Context, params FailureParams) error
	Refund(ctx context.Context, paymentID string, amount *float64, notes string) (*RefundResult, error)
	GetPaymentByOrder(ctx context.Context, userID, orderID string, isAdmin bool) (*Payment, error)
}

type service struct {
	repo      Repository
	orderRepo order.Repository
	cartSvc   cart.Service
	gateway   Gateway
}

func NewService(repo Repository, orderRepo order.Repository, cartSvc cart.Service, gateway Gateway) Service {
	return &service{
		repo:      repo,
		orderRepo: orderRepo,
		cartSvc:   cartSvc,
		gateway:   gateway,
	}
}

// CreatePaymentOrder creates (or reuses) the gateway payment intent for an
// order. Retrying checkout initiation is idempotent: an existing pending
// payment is returned instead of creating a duplicate.
func (s *service) CreatePaymentOrder(ctx context.Context, userID, orderID string) (*CheckoutOrder, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreatePaymentOrder"),
		zap.String("order_id", orderID),
	)

	o, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, ErrAccessDenied
	}

	if o.PaymentStatus == order.PaymentPaid {
		return nil, ErrOrderAlreadyPaid
	}
	if o.Status == order.StatusCancelled {
		return nil, ErrOrderCancelled
	}

	// Reuse an existing pending payment rather than duplicating it.
	existing, err := s.repo.GetPendingByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		log.Info("reusing pending payment", zap.String("payment_id", existing.ID))
		return &CheckoutOrder{
			GatewayOrderID: existing.GatewayOrderID,
			Amount:         o.FinalAmount,
			Currency:       existing.Currency,
			OrderID:        o.ID,
			OrderNumber:    o.OrderNumber,
			PaymentID:      existing.ID,
		}, nil
	}

	gwOrder, err := s.gateway.CreateOrder(ctx,
		utils.ToMinorUnits(o.FinalAmount), defaultCurrency, o.OrderNumber)
	if err != nil {
		log.Error("gateway order creation failed", zap.Error(err))
		return nil, err
	}

	p := &Payment{
		OrderID:        o.ID,
		GatewayOrderID: gwOrder.ID,
		Amount:         o.FinalAmount,
		Currency:       defaultCurrency,
		Status:         StatusPending,
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		return nil, err
	}

	log.Info("payment order created",
		zap.String("payment_id", p.ID),
		zap.String("gateway_order_id", gwOrder.ID),
	)

	return &CheckoutOrder{
		GatewayOrderID: gwOrder.ID,
		Amount:         o.FinalAmount,
		Currency:       defaultCurrency,
		OrderID:        o.ID,
		OrderNumber:    o.OrderNumber,
		PaymentID:      p.ID,
	}, nil
}

// VerifyPayment finalizes a gateway success callback. The HMAC signature is
// the integrity control: a mismatch aborts before any state changes. The
// payment details are re-fetched from the gateway so a forged client success
// alone can never confirm an order. Verification of an already-completed
// payment fails with ErrPaymentNotFound, which makes the operation
// idempotent at the record level.
func (s *service) VerifyPayment(ctx context.Context, params VerifyParams) (*Payment, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "VerifyPayment"),
		zap.String("order_id", params.OrderID),
	)

	// 1. Pending payment lookup
	p, err := s.repo.GetPendingByOrder(ctx, params.OrderID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}

	// 2. Signature check, before anything mutates
	if !s.gateway.VerifySignature(p.GatewayOrderID, params.GatewayPaymentID, params.Signature) {
		log.Warn("payment signature mismatch",
			zap.String("gateway_payment_id", params.GatewayPaymentID),
		)
		return nil, ErrInvalidSignature
	}

	// 3. Corroborate server-side with the gateway
	gwPayment, err := s.gateway.FetchPayment(ctx, params.GatewayPaymentID)
	if err != nil {
		log.Error("failed to fetch payment from gateway", zap.Error(err))
		return nil, err
	}

	// 4. Mark the payment completed
	details := TransactionDetails{
		GatewayPaymentID: params.GatewayPaymentID,
		GatewayOrderID:   p.GatewayOrderID,
		Method:           gwPayment.Method,
		Amount:           gwPayment.Amount,
		Currency:         gwPayment.Currency,
		Status:           gwPayment.Status,
		Captured:         gwPayment.Captured,
		Description:      gwPayment.Description,
	}
	if err := s.repo.MarkCompleted(ctx, p.ID, params.GatewayPaymentID, gwPayment.Method, details); err != nil {
		return nil, err
	}

	// 5. Reconcile the order: payment link, paid, confirmed
	o, err := s.orderRepo.GetOrderByID(ctx, params.OrderID)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.MarkPaid(ctx, o.ID, p.ID); err != nil {
		return nil, err
	}

	// 6. Clear the cart only now that payment is confirmed
	if err := s.cartSvc.Clear(ctx, o.UserID); err != nil {
		log.Error("failed to clear cart after payment", zap.Error(err))
	}

	p.Status = StatusCompleted
	p.GatewayPaymentID = utils.StrPtr(params.GatewayPaymentID)
	p.Method = utils.StrPtr(details.Method)
	p.TransactionDetails = details

	log.Info("payment verified",
		zap.String("payment_id", p.ID),
		zap.String("gateway_payment_id", params.GatewayPaymentID),
	)

	return p, nil
}

// HandleFailure records a failed gateway attempt. The order stays pending
// and remains eligible for a fresh payment attempt.
func (s *service) HandleFailure(ctx context.Context, params FailureParams) error {
	p, err := s.repo.GetPendingByOrder(ctx, params.OrderID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPaymentNotFound
	}

	details := p.TransactionDetails
	details.ErrorCode = params.ErrorCode
	details.ErrorDescription = params.ErrorDescription

	if err := s.repo.MarkFailed(ctx, p.ID, params.GatewayPaymentID, details); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("payment failure recorded",
		zap.String("payment_id", p.ID),
		zap.String("error_code", params.ErrorCode),
	)

	return nil
}

// Refund refunds a completed payment via the gateway, defaulting to the
// full original amount, and flips the order's payment state to refunded.
func (s *service) Refund(ctx context.Context, paymentID string, amount *float64, notes string) (*RefundResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Refund"),
		zap.String("payment_id", paymentID),
	)

	p, err := s.repo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}
	if p.Status != StatusCompleted {
		return nil, ErrPaymentNotCompleted
	}

	refundAmount := p.Amount
	if amount != nil && *amount > 0 {
		refundAmount = *amount
	}

	gwRefund, err := s.gateway.Refund(ctx,
		utils.PtrString(p.GatewayPaymentID), utils.ToMinorUnits(refundAmount), notes)
	if err != nil {
		log.Error("gateway refund failed", zap.Error(err))
		return nil, err
	}

	details := p.TransactionDetails
	details.Refund = &RefundDetails{
		ID:          gwRefund.ID,
		Amount:      gwRefund.Amount,
		Status:      gwRefund.Status,
		Notes:       notes,
		ProcessedAt: time.Now(),
	}
	if err := s.repo.MarkRefunded(ctx, p.ID, details); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdatePaymentStatus(ctx, p.OrderID, order.PaymentRefunded); err != nil {
		log.Error("failed to update order payment status", zap.Error(err))
		return nil, err
	}

	log.Info("refund processed",
		zap.String("refund_id", gwRefund.ID),
		zap.Float64("amount", refundAmount),
	)

	return &RefundResult{
		RefundID: gwRefund.ID,
		Amount:   refundAmount,
		Status:   gwRefund.Status,
	}, nil
}

// GetPaymentByOrder returns the latest payment for an order; non-admins
// only see payments for their own orders.
func (s *service) GetPaymentByOrder(ctx context.Context, userID, orderID string, isAdmin bool) (*Payment, error) {
	o, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && o.UserID != userID {
		return nil, ErrAccessDenied
	}

	p, err := s.repo.GetByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}

	return p, nil
}

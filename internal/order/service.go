package order

import (
	"context"

	"purenest-be/internal/cart"
	"purenest-be/internal/logger"
	"purenest-be/internal/product"
	"purenest-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	CreateFromCart(ctx context.Context, params CreateOrderParams) (*Order, error)
	GetOrders(ctx context.Context, params ListParams) ([]*Order, int64, error)
	GetOrderDetail(ctx context.Context, userID, orderID string, isAdmin bool) (*Order, error)
	UpdateStatus(ctx context.Context, orderID string, newStatus Status) (*Order, error)
	Cancel(ctx context.Context, userID, orderID string) error
	UpdatePaymentStatus(ctx context.Context, orderID string, newStatus PaymentStatus) error
}

type service struct {
	repo        Repository
	cartSvc     cart.Service
	productRepo product.Repository
}

func NewService(repo Repository, cartSvc cart.Service, productRepo product.Repository) Service {
	return &service{
		repo:        repo,
		cartSvc:     cartSvc,
		productRepo: productRepo,
	}
}

// CreateFromCart converts the user's cart into an immutable order. Line
// prices are frozen from the cart snapshots; stock is decremented inside the
// same transaction that persists the order. The cart itself is left intact:
// it is cleared only once payment is verified.
func (s *service) CreateFromCart(ctx context.Context, params CreateOrderParams) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateFromCart"),
		zap.String("user_id", params.UserID),
	)

	// 1. Load and validate the cart
	c, err := s.cartSvc.GetCart(ctx, params.UserID)
	if err != nil {
		return nil, err
	}
	if len(c.Items) == 0 {
		return nil, ErrCartEmpty
	}

	validation, err := s.cartSvc.Validate(ctx, c)
	if err != nil {
		return nil, err
	}
	if !validation.Valid {
		log.Warn("cart validation failed", zap.Strings("reasons", validation.Errors))
		return nil, &CartInvalidError{Reasons: validation.Errors}
	}

	// 2. Re-confirm each product and freeze line prices. A product vanishing
	// or being deactivated between validation and here aborts the order.
	items := make([]OrderItem, 0, len(c.Items))
	var totalAmount float64

	for _, line := range c.Items {
		prod, err := s.productRepo.GetProductByID(ctx, product.GetProductOptions{
			ProductID: line.ProductID,
		})
		if err != nil {
			return nil, err
		}
		if prod == nil || !prod.IsActive {
			return nil, ErrProductUnavailable
		}

		totalAmount += line.PriceAtTime * float64(line.Quantity)
		items = append(items, OrderItem{
			ProductID:   line.ProductID,
			Quantity:    line.Quantity,
			Price:       line.PriceAtTime,
			Size:        line.Size,
			sizeVariant: len(prod.Sizes) > 0,
		})
	}

	// 3. Totals. No promotion engine: shipping and discount are zero.
	totalAmount = utils.Round2(totalAmount)
	shippingAmount := 0.0
	discountAmount := 0.0
	finalAmount := totalAmount + shippingAmount - discountAmount

	billing := params.ShippingAddress
	if params.BillingAddress != nil {
		billing = *params.BillingAddress
	}

	o := &Order{
		OrderNumber:     GenerateOrderNumber(),
		UserID:          params.UserID,
		Items:           items,
		TotalAmount:     totalAmount,
		ShippingAmount:  shippingAmount,
		DiscountAmount:  discountAmount,
		FinalAmount:     finalAmount,
		Status:          StatusPending,
		PaymentStatus:   PaymentPending,
		ShippingAddress: params.ShippingAddress,
		BillingAddress:  billing,
		Notes:           params.Notes,
	}

	// 4. Persist order + items + stock decrements atomically
	if err := s.repo.CreateOrderTx(ctx, o); err != nil {
		return nil, err
	}

	log.Info("order created",
		zap.String("order_number", o.OrderNumber),
		zap.Float64("final_amount", o.FinalAmount),
	)

	return o, nil
}

func (s *service) GetOrders(ctx context.Context, params ListParams) ([]*Order, int64, error) {
	return s.repo.ListOrders(ctx, params)
}

// GetOrderDetail returns the order; non-admins only see their own.
func (s *service) GetOrderDetail(ctx context.Context, userID, orderID string, isAdmin bool) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && o.UserID != userID {
		return nil, ErrUnauthorized
	}

	return o, nil
}

// UpdateStatus applies an admin status change through the transition table.
func (s *service) UpdateStatus(ctx context.Context, orderID string, newStatus Status) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	next, err := Transition(o.Status, newStatus)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, orderID, next); err != nil {
		return nil, err
	}
	o.Status = next

	logger.FromCtx(ctx).Info("order status updated",
		zap.String("order_id", orderID),
		zap.String("status", string(next)),
	)

	return o, nil
}

// Cancel cancels the caller's own order. Shipped orders are refused with a
// distinct error so the client can point the user at support.
func (s *service) Cancel(ctx context.Context, userID, orderID string) error {
	o, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return err
	}
	if o.UserID != userID {
		return ErrUnauthorized
	}

	switch o.Status {
	case StatusCancelled:
		return ErrAlreadyCancelled
	case StatusShipped:
		return ErrOrderShipped
	}

	if _, err := Transition(o.Status, StatusCancelled); err != nil {
		return err
	}

	return s.repo.UpdateStatus(ctx, orderID, StatusCancelled)
}

// UpdatePaymentStatus applies a payment-state change through its own table.
func (s *service) UpdatePaymentStatus(ctx context.Context, orderID string, newStatus PaymentStatus) error {
	o, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return err
	}

	next, err := TransitionPayment(o.PaymentStatus, newStatus)
	if err != nil {
		return err
	}

	return s.repo.UpdatePaymentStatus(ctx, orderID, next)
}

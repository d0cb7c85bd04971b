package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"purenest-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	CreateOrderTx(ctx context.Context, o *Order) error
	GetOrderByID(ctx context.Context, orderID string) (*Order, error)
	ListOrders(ctx context.Context, params ListParams) ([]*Order, int64, error)
	UpdateStatus(ctx context.Context, orderID string, status Status) error
	UpdatePaymentStatus(ctx context.Context, orderID string, status PaymentStatus) error
	MarkPaid(ctx context.Context, orderID, paymentID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CreateOrderTx persists the order with its lines and decrements stock in a
// single transaction. Each decrement is conditional (resulting stock must
// stay >= 0), so a concurrent checkout of the same unit rolls the whole
// order back with ErrInsufficientStock instead of overselling.
func (r *repository) CreateOrderTx(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.String("order_number", o.OrderNumber),
		zap.Int("item_count", len(o.Items)),
	)

	shippingJSON, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return err
	}
	billingJSON, err := json.Marshal(o.BillingAddress)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	// 1. Insert order
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			order_number, user_id,
			total_amount, shipping_amount, discount_amount, final_amount,
			status, payment_status,
			shipping_address, billing_address, notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id, created_at, updated_at
	`,
		o.OrderNumber,
		o.UserID,
		o.TotalAmount,
		o.ShippingAmount,
		o.DiscountAmount,
		o.FinalAmount,
		o.Status,
		o.PaymentStatus,
		shippingJSON,
		billingJSON,
		o.Notes,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	// 2. Insert order items + conditional stock decrement
	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID

		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price, size)
			VALUES ($1,$2,$3,$4,$5)
			RETURNING id
		`, o.ID, item.ProductID, item.Quantity, item.Price, item.Size).Scan(&item.ID)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Int("item_index", i),
				zap.Error(err),
			)
			return err
		}

		var res sql.Result
		if item.sizeVariant {
			res, err = tx.ExecContext(ctx, `
				UPDATE product_sizes
				SET stock_quantity = stock_quantity - $1
				WHERE product_id = $2 AND size = $3 AND stock_quantity >= $1
			`, item.Quantity, item.ProductID, item.Size)
		} else {
			res, err = tx.ExecContext(ctx, `
				UPDATE products
				SET stock_quantity = stock_quantity - $1
				WHERE id = $2 AND stock_quantity >= $1
			`, item.Quantity, item.ProductID)
		}
		if err != nil {
			log.Error("failed to decrement stock",
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
			return err
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			log.Warn("stock decrement lost race",
				zap.String("product_id", item.ProductID),
				zap.String("size", item.Size),
			)
			return ErrInsufficientStock
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return err
	}

	committed = true
	log.Info("order created", zap.String("order_id", o.ID))
	return nil
}

func (r *repository) GetOrderByID(ctx context.Context, orderID string) (*Order, error) {
	var o Order
	var shippingJSON, billingJSON []byte

	err := r.db.QueryRowContext(ctx, `
		SELECT
			id, order_number, user_id,
			total_amount, shipping_amount, discount_amount, final_amount,
			status, payment_status,
			shipping_address, billing_address,
			notes, tracking_number, payment_id,
			created_at, updated_at
		FROM orders
		WHERE id = $1
	`, orderID).Scan(
		&o.ID,
		&o.OrderNumber,
		&o.UserID,
		&o.TotalAmount,
		&o.ShippingAmount,
		&o.DiscountAmount,
		&o.FinalAmount,
		&o.Status,
		&o.PaymentStatus,
		&shippingJSON,
		&billingJSON,
		&o.Notes,
		&o.TrackingNumber,
		&o.PaymentID,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(shippingJSON, &o.ShippingAddress); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(billingJSON, &o.BillingAddress); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price, oi.size, p.name
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Quantity,
			&item.Price,
			&item.Size,
			&item.ProductName,
		); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) ListOrders(ctx context.Context, params ListParams) ([]*Order, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListOrders"),
	)

	// ---------- pagination ----------
	finalLimit := 20
	if params.Limit > 0 {
		finalLimit = params.Limit
	}
	if finalLimit > 100 {
		finalLimit = 100
	}
	finalPage := 1
	if params.Page > 0 {
		finalPage = params.Page
	}
	offset := (finalPage - 1) * finalLimit

	// ---------- where ----------
	where := []string{"1=1"}
	args := []any{}

	if params.UserID != "" {
		where = append(where, fmt.Sprintf("o.user_id = $%d", len(args)+1))
		args = append(args, params.UserID)
	}
	if params.Status != "" {
		where = append(where, fmt.Sprintf("o.status = $%d", len(args)+1))
		args = append(args, params.Status)
	}
	if params.PaymentStatus != "" {
		where = append(where, fmt.Sprintf("o.payment_status = $%d", len(args)+1))
		args = append(args, params.PaymentStatus)
	}
	if params.Search != "" {
		// matches the order number or the recipient name on the shipping address
		where = append(where, fmt.Sprintf(
			"(o.order_number ILIKE $%d OR o.shipping_address->>'fullName' ILIKE $%d)",
			len(args)+1, len(args)+1))
		args = append(args, "%"+params.Search+"%")
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM orders o WHERE "+whereClause, args...,
	).Scan(&total); err != nil {
		log.Error("count query failed", zap.Error(err))
		return nil, 0, err
	}

	query := `
	SELECT
		o.id, o.order_number, o.user_id,
		o.total_amount, o.shipping_amount, o.discount_amount, o.final_amount,
		o.status, o.payment_status,
		o.created_at, o.updated_at
	FROM orders o
	WHERE ` + whereClause + `
	ORDER BY o.created_at DESC
	LIMIT $` + fmt.Sprint(len(args)+1) + `
	OFFSET $` + fmt.Sprint(len(args)+2)

	args = append(args, finalLimit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID,
			&o.OrderNumber,
			&o.UserID,
			&o.TotalAmount,
			&o.ShippingAmount,
			&o.DiscountAmount,
			&o.FinalAmount,
			&o.Status,
			&o.PaymentStatus,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, 0, err
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	log.Info("get orders success", zap.Int("count", len(orders)))
	return orders, total, nil
}

func (r *repository) UpdateStatus(ctx context.Context, orderID string, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, orderID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, orderID string, status PaymentStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET payment_status = $1, updated_at = NOW() WHERE id = $2
	`, status, orderID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// MarkPaid links the completed payment and flips payment_status/status in
// one statement, so a verified payment can never leave the order half set.
func (r *repository) MarkPaid(ctx context.Context, orderID, paymentID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET payment_id = $1,
		    payment_status = 'paid',
		    status = 'confirmed',
		    updated_at = NOW()
		WHERE id = $2
	`, paymentID, orderID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

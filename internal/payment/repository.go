package payment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

type Repository interface {
	Insert(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, paymentID string) (*Payment, error)
	GetByOrder(ctx context.Context, orderID string) (*Payment, error)
	GetPendingByOrder(ctx context.Context, orderID string) (*Payment, error)
	MarkCompleted(ctx context.Context, paymentID, gatewayPaymentID, method string, details TransactionDetails) error
	MarkFailed(ctx context.Context, paymentID, gatewayPaymentID string, details TransactionDetails) error
	MarkRefunded(ctx context.Context, paymentID string, details TransactionDetails) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const paymentColumns = `
	id, order_id, gateway_order_id, gateway_payment_id,
	amount, currency, status, method, transaction_details,
	created_at, updated_at
`

func scanPayment(row *sql.Row) (*Payment, error) {
	var p Payment
	var detailsJSON []byte

	err := row.Scan(
		&p.ID,
		&p.OrderID,
		&p.GatewayOrderID,
		&p.GatewayPaymentID,
		&p.Amount,
		&p.Currency,
		&p.Status,
		&p.Method,
		&detailsJSON,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if len(detailsJSON) > 0 {
		if err := json.Unmarshal(detailsJSON, &p.TransactionDetails); err != nil {
			return nil, err
		}
	}

	return &p, nil
}

func (r *repository) Insert(ctx context.Context, p *Payment) error {
	detailsJSON, err := json.Marshal(p.TransactionDetails)
	if err != nil {
		return err
	}

	return r.db.QueryRowContext(ctx, `
		INSERT INTO payments (order_id, gateway_order_id, amount, currency, status, transaction_details)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`,
		p.OrderID, p.GatewayOrderID, p.Amount, p.Currency, p.Status, detailsJSON,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *repository) GetByID(ctx context.Context, paymentID string) (*Payment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+paymentColumns+`
		FROM payments
		WHERE id = $1
	`, paymentID)
	return scanPayment(row)
}

func (r *repository) GetByOrder(ctx context.Context, orderID string) (*Payment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+paymentColumns+`
		FROM payments
		WHERE order_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, orderID)
	return scanPayment(row)
}

func (r *repository) GetPendingByOrder(ctx context.Context, orderID string) (*Payment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+paymentColumns+`
		FROM payments
		WHERE order_id = $1 AND status = 'pending'
		ORDER BY created_at DESC
		LIMIT 1
	`, orderID)
	return scanPayment(row)
}

// MarkCompleted flips a pending payment to completed. The status guard in
// the WHERE clause makes a second verification attempt a no-op at the
// storage level.
func (r *repository) MarkCompleted(ctx context.Context, paymentID, gatewayPaymentID, method string, details TransactionDetails) error {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE payments
		SET gateway_payment_id = $2,
		    status = 'completed',
		    method = $3,
		    transaction_details = $4,
		    updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`, paymentID, gatewayPaymentID, method, detailsJSON)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *repository) MarkFailed(ctx context.Context, paymentID, gatewayPaymentID string, details TransactionDetails) error {
	now := time.Now()
	details.FailedAt = &now

	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE payments
		SET gateway_payment_id = $2,
		    status = 'failed',
		    transaction_details = $3,
		    updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`, paymentID, gatewayPaymentID, detailsJSON)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *repository) MarkRefunded(ctx context.Context, paymentID string, details TransactionDetails) error {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE payments
		SET status = 'refunded',
		    transaction_details = $2,
		    updated_at = NOW()
		WHERE id = $1 AND status = 'completed'
	`, paymentID, detailsJSON)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrPaymentNotCompleted
	}
	return nil
}

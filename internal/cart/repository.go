package cart

import (
	"context"
	"database/sql"
	"errors"

	"purenest-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetOrCreateCart(ctx context.Context, userID string) (*Cart, error)
	GetItem(ctx context.Context, cartID, productID, size string) (*CartItem, error)
	InsertItem(ctx context.Context, cartID, productID, size string, quantity int, priceAtTime float64) (*CartItem, error)
	UpdateItemQuantity(ctx context.Context, cartID, productID, size string, quantity int, priceAtTime float64) (*CartItem, error)
	RemoveItem(ctx context.Context, cartID, productID, size string) error
	ClearByUser(ctx context.Context, userID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// GetOrCreateCart upserts the user's cart row and loads its lines.
func (r *repository) GetOrCreateCart(ctx context.Context, userID string) (*Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetOrCreateCart"),
		zap.String("user_id", userID),
	)

	c := &Cart{}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO carts (user_id)
		VALUES ($1)
		ON CONFLICT (user_id)
		DO UPDATE SET updated_at = NOW()
		RETURNING id, user_id, created_at, updated_at
	`, userID).Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		log.Error("failed to upsert cart", zap.Error(err))
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			ci.id,
			ci.cart_id,
			ci.product_id,
			ci.size,
			ci.quantity,
			ci.price_at_time,
			ci.created_at,
			ci.updated_at,
			p.name,
			p.is_active
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at ASC
	`, c.ID)
	if err != nil {
		log.Error("failed to load cart items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item CartItem
		if err := rows.Scan(
			&item.ID,
			&item.CartID,
			&item.ProductID,
			&item.Size,
			&item.Quantity,
			&item.PriceAtTime,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.ProductName,
			&item.ProductActive,
		); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		c.Items = append(c.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return c, nil
}

func (r *repository) GetItem(ctx context.Context, cartID, productID, size string) (*CartItem, error) {
	var item CartItem
	err := r.db.QueryRowContext(ctx, `
		SELECT id, cart_id, product_id, size, quantity, price_at_time, created_at, updated_at
		FROM cart_items
		WHERE cart_id = $1 AND product_id = $2 AND size = $3
	`, cartID, productID, size).Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.Size,
		&item.Quantity,
		&item.PriceAtTime,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) InsertItem(ctx context.Context, cartID, productID, size string, quantity int, priceAtTime float64) (*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "InsertItem"),
		zap.String("cart_id", cartID),
		zap.String("product_id", productID),
		zap.String("size", size),
	)

	var item CartItem
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cart_items (cart_id, product_id, size, quantity, price_at_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, cart_id, product_id, size, quantity, price_at_time, created_at, updated_at
	`, cartID, productID, size, quantity, priceAtTime).Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.Size,
		&item.Quantity,
		&item.PriceAtTime,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to insert cart item", zap.Error(err))
		return nil, err
	}

	log.Info("cart item created", zap.String("cart_item_id", item.ID))
	return &item, nil
}

func (r *repository) UpdateItemQuantity(ctx context.Context, cartID, productID, size string, quantity int, priceAtTime float64) (*CartItem, error) {
	var item CartItem
	err := r.db.QueryRowContext(ctx, `
		UPDATE cart_items
		SET quantity = $4,
		    price_at_time = $5,
		    updated_at = NOW()
		WHERE cart_id = $1 AND product_id = $2 AND size = $3
		RETURNING id, cart_id, product_id, size, quantity, price_at_time, created_at, updated_at
	`, cartID, productID, size, quantity, priceAtTime).Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.Size,
		&item.Quantity,
		&item.PriceAtTime,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) RemoveItem(ctx context.Context, cartID, productID, size string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE cart_id = $1 AND product_id = $2 AND size = $3
	`, cartID, productID, size)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

// ClearByUser removes every line of the user's cart. Clearing an already
// empty cart is not an error; the payment flow calls this after verification.
func (r *repository) ClearByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE cart_id IN (SELECT id FROM carts WHERE user_id = $1)
	`, userID)
	return err
}

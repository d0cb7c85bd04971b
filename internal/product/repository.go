package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"purenest-be/internal/logger"

	"go.uber.org/zap"
)

type GetProductOptions struct {
	ProductID  string
	OnlyActive bool
}

type Repository interface {
	GetProductByID(ctx context.Context, opts GetProductOptions) (*Product, error)
	ListProducts(ctx context.Context, opts ListOptions) ([]*Product, int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetProductByID(ctx context.Context, opts GetProductOptions) (*Product, error) {
	query := `
	SELECT
		id,
		name,
		description,
		category,
		base_price,
		stock_quantity,
		is_active,
		created_at,
		updated_at
	FROM products
	WHERE id = $1
	`
	if opts.OnlyActive {
		query += " AND is_active = TRUE"
	}

	var p Product
	err := r.db.QueryRowContext(ctx, query, opts.ProductID).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Category,
		&p.BasePrice,
		&p.StockQuantity,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sizes, err := r.getSizes(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Sizes = sizes

	return &p, nil
}

func (r *repository) getSizes(ctx context.Context, productID string) ([]SizeVariant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, size, price, stock_quantity
		FROM product_sizes
		WHERE product_id = $1
		ORDER BY price ASC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sizes []SizeVariant
	for rows.Next() {
		var s SizeVariant
		if err := rows.Scan(&s.ID, &s.ProductID, &s.Size, &s.Price, &s.StockQuantity); err != nil {
			return nil, err
		}
		sizes = append(sizes, s)
	}

	return sizes, rows.Err()
}

func (r *repository) ListProducts(ctx context.Context, opts ListOptions) ([]*Product, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListProducts"),
	)

	start := time.Now()

	// ---------- pagination ----------
	finalLimit := 20
	if opts.Limit > 0 {
		finalLimit = opts.Limit
	}
	if finalLimit > 100 {
		finalLimit = 100
	}

	finalPage := 1
	if opts.Page > 0 {
		finalPage = opts.Page
	}
	offset := (finalPage - 1) * finalLimit

	// ---------- where ----------
	where := []string{"1=1"}
	args := []any{}

	if opts.OnlyActive {
		where = append(where, "p.is_active = TRUE")
	}
	if opts.Category != "" {
		where = append(where, fmt.Sprintf("p.category = $%d", len(args)+1))
		args = append(args, opts.Category)
	}
	if opts.Search != "" {
		where = append(where, fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+opts.Search+"%")
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM products p WHERE " + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("count query failed", zap.Error(err))
		return nil, 0, err
	}

	query := `
	SELECT
		p.id,
		p.name,
		p.description,
		p.category,
		p.base_price,
		p.stock_quantity,
		p.is_active,
		p.created_at,
		p.updated_at
	FROM products p
	WHERE ` + whereClause + `
	ORDER BY p.created_at DESC
	LIMIT $` + fmt.Sprint(len(args)+1) + `
	OFFSET $` + fmt.Sprint(len(args)+2)

	args = append(args, finalLimit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, 0, err
	}
	defer rows.Close()

	products := make([]*Product, 0, finalLimit)
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Category,
			&p.BasePrice,
			&p.StockQuantity,
			&p.IsActive,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, 0, err
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, p := range products {
		sizes, err := r.getSizes(ctx, p.ID)
		if err != nil {
			return nil, 0, err
		}
		p.Sizes = sizes
	}

	log.Info("query success",
		zap.Int("rows", len(products)),
		zap.Duration("duration", time.Since(start)),
	)

	return products, total, nil
}

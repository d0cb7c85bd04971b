package product

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productCols = []string{
	"id", "name", "description", "category", "base_price",
	"stock_quantity", "is_active", "created_at", "updated_at",
}

var sizeCols = []string{"id", "product_id", "size", "price", "stock_quantity"}

func TestRepository_GetProductByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success With Sizes", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM products").
			WithArgs("prod-1").
			WillReturnRows(sqlmock.NewRows(productCols).AddRow(
				"prod-1", "Rosemary Oil", "cold pressed", "hair", 149.0,
				50, true, time.Now(), time.Now(),
			))

		mock.ExpectQuery("SELECT .* FROM product_sizes").
			WithArgs("prod-1").
			WillReturnRows(sqlmock.NewRows(sizeCols).
				AddRow("size-1", "prod-1", "100ml", 199.0, 10).
				AddRow("size-2", "prod-1", "250ml", 399.0, 3))

		p, err := repo.GetProductByID(context.Background(), GetProductOptions{ProductID: "prod-1"})

		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "Rosemary Oil", p.Name)
		assert.Len(t, p.Sizes, 2)
	})

	t.Run("NotFound Returns Nil", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM products").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		p, err := repo.GetProductByID(context.Background(), GetProductOptions{ProductID: "missing"})

		assert.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("OnlyActive Filters Inactive", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM products .* AND is_active = TRUE").
			WithArgs("prod-1").
			WillReturnError(sql.ErrNoRows)

		p, err := repo.GetProductByID(context.Background(), GetProductOptions{
			ProductID:  "prod-1",
			OnlyActive: true,
		})

		assert.NoError(t, err)
		assert.Nil(t, p)
	})
}

func TestRepository_ListProducts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM products").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		mock.ExpectQuery("SELECT .* FROM products p").
			WithArgs(20, 0).
			WillReturnRows(sqlmock.NewRows(productCols).AddRow(
				"prod-1", "Rosemary Oil", nil, "hair", 149.0,
				50, true, time.Now(), time.Now(),
			))

		mock.ExpectQuery("SELECT .* FROM product_sizes").
			WithArgs("prod-1").
			WillReturnRows(sqlmock.NewRows(sizeCols))

		products, total, err := repo.ListProducts(context.Background(), ListOptions{})

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, products, 1)
	})

	t.Run("Category And Search Filters", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM products").
			WithArgs("hair", "%rosemary%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		mock.ExpectQuery("SELECT .* FROM products p").
			WithArgs("hair", "%rosemary%", 10, 0).
			WillReturnRows(sqlmock.NewRows(productCols))

		products, total, err := repo.ListProducts(context.Background(), ListOptions{
			Category: "hair",
			Search:   "rosemary",
			Limit:    10,
			Page:     1,
		})

		assert.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, products)
	})

	t.Run("Limit Is Capped", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM products").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		mock.ExpectQuery("SELECT .* FROM products p").
			WithArgs(100, 0).
			WillReturnRows(sqlmock.NewRows(productCols))

		_, _, err := repo.ListProducts(context.Background(), ListOptions{Limit: 500})

		assert.NoError(t, err)
	})

	t.Run("Error - Count Fails", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM products").
			WillReturnError(errors.New("db error"))

		_, _, err := repo.ListProducts(context.Background(), ListOptions{})

		assert.Error(t, err)
	})
}

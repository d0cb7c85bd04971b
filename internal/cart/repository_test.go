package cart

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

var itemColumns = []string{"id", "cart_id", "product_id", "size", "quantity", "price_at_time", "created_at", "updated_at"}

func TestRepository_GetOrCreateCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success - Upsert And Load Items", func(t *testing.T) {
		cartRows := sqlmock.NewRows([]string{"id", "user_id", "created_at", "updated_at"}).
			AddRow("cart-1", "user-1", time.Now(), time.Now())

		mock.ExpectQuery("INSERT INTO carts").
			WithArgs("user-1").
			WillReturnRows(cartRows)

		itemRows := sqlmock.NewRows([]string{
			"id", "cart_id", "product_id", "size", "quantity", "price_at_time",
			"created_at", "updated_at", "name", "is_active",
		}).AddRow(
			"item-1", "cart-1", "prod-1", "100ml", 2, 199.0,
			time.Now(), time.Now(), "Rosemary Oil", true,
		)

		mock.ExpectQuery("SELECT .* FROM cart_items ci").
			WithArgs("cart-1").
			WillReturnRows(itemRows)

		c, err := repo.GetOrCreateCart(context.Background(), "user-1")

		assert.NoError(t, err)
		assert.Equal(t, "cart-1", c.ID)
		require.Len(t, c.Items, 1)
		assert.Equal(t, "Rosemary Oil", c.Items[0].ProductName)
	})

	t.Run("Error - Upsert Fails", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO carts").
			WillReturnError(errors.New("db error"))

		_, err := repo.GetOrCreateCart(context.Background(), "user-1")
		assert.Error(t, err)
	})
}

func TestRepository_GetItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(itemColumns).
			AddRow("item-1", "cart-1", "prod-1", "100ml", 2, 199.0, time.Now(), time.Now())

		mock.ExpectQuery("SELECT .* FROM cart_items").
			WithArgs("cart-1", "prod-1", "100ml").
			WillReturnRows(rows)

		item, err := repo.GetItem(context.Background(), "cart-1", "prod-1", "100ml")

		assert.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, 2, item.Quantity)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM cart_items").
			WithArgs("cart-1", "prod-1", "100ml").
			WillReturnError(sql.ErrNoRows)

		item, err := repo.GetItem(context.Background(), "cart-1", "prod-1", "100ml")

		assert.NoError(t, err)
		assert.Nil(t, item)
	})
}

func TestRepository_InsertItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(itemColumns).
			AddRow("item-1", "cart-1", "prod-1", "100ml", 2, 199.0, time.Now(), time.Now())

		mock.ExpectQuery("INSERT INTO cart_items").
			WithArgs("cart-1", "prod-1", "100ml", 2, 199.0).
			WillReturnRows(rows)

		item, err := repo.InsertItem(context.Background(), "cart-1", "prod-1", "100ml", 2, 199.0)

		assert.NoError(t, err)
		assert.Equal(t, "item-1", item.ID)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO cart_items").
			WillReturnError(errors.New("db error"))

		_, err := repo.InsertItem(context.Background(), "cart-1", "prod-1", "100ml", 2, 199.0)
		assert.Error(t, err)
	})
}

func TestRepository_UpdateItemQuantity(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(itemColumns).
			AddRow("item-1", "cart-1", "prod-1", "100ml", 5, 199.0, time.Now(), time.Now())

		mock.ExpectQuery("UPDATE cart_items").
			WithArgs("cart-1", "prod-1", "100ml", 5, 199.0).
			WillReturnRows(rows)

		item, err := repo.UpdateItemQuantity(context.Background(), "cart-1", "prod-1", "100ml", 5, 199.0)

		assert.NoError(t, err)
		assert.Equal(t, 5, item.Quantity)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("UPDATE cart_items").
			WithArgs("cart-1", "prod-1", "100ml", 5, 199.0).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.UpdateItemQuantity(context.Background(), "cart-1", "prod-1", "100ml", 5, 199.0)

		assert.Equal(t, ErrCartItemNotFound, err)
	})
}

func TestRepository_RemoveItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM cart_items").
			WithArgs("cart-1", "prod-1", "100ml").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.RemoveItem(context.Background(), "cart-1", "prod-1", "100ml")
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM cart_items").
			WithArgs("cart-1", "prod-1", "100ml").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.RemoveItem(context.Background(), "cart-1", "prod-1", "100ml")
		assert.Equal(t, ErrCartItemNotFound, err)
	})
}

func TestRepository_ClearByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM cart_items").
			WithArgs("user-1").
			WillReturnResult(sqlmock.NewResult(0, 3))

		assert.NoError(t, repo.ClearByUser(context.Background(), "user-1"))
	})

	t.Run("Empty Cart Is Not An Error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM cart_items").
			WithArgs("user-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.ClearByUser(context.Background(), "user-1"))
	})
}

func TestCart_Totals(t *testing.T) {
	c := &Cart{Items: []CartItem{
		{Quantity: 2, PriceAtTime: 199.99},
		{Quantity: 1, PriceAtTime: 0.01},
	}}

	assert.Equal(t, 3, c.TotalItems())
	assert.Equal(t, 399.99, c.TotalAmount())
}

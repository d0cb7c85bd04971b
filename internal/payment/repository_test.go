package payment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var paymentCols = []string{
	"id", "order_id", "gateway_order_id", "gateway_payment_id",
	"amount", "currency", "status", "method", "transaction_details",
	"created_at", "updated_at",
}

func paymentRow() *sqlmock.Rows {
	details, _ := json.Marshal(TransactionDetails{Method: "upi"})
	return sqlmock.NewRows(paymentCols).AddRow(
		"pay-1", "ord-1", "order_rzp1", "pay_rzp1",
		499.5, "INR", "completed", "upi", details,
		time.Now(), time.Now(),
	)
}

func TestRepository_Insert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO payments").
			WithArgs("ord-1", "order_rzp1", 499.5, "INR", StatusPending, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow("pay-1", time.Now(), time.Now()))

		p := &Payment{
			OrderID:        "ord-1",
			GatewayOrderID: "order_rzp1",
			Amount:         499.5,
			Currency:       "INR",
			Status:         StatusPending,
		}

		err := repo.Insert(context.Background(), p)

		assert.NoError(t, err)
		assert.Equal(t, "pay-1", p.ID)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO payments").
			WillReturnError(errors.New("db error"))

		err := repo.Insert(context.Background(), &Payment{})
		assert.Error(t, err)
	})
}

func TestRepository_GetByOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM payments").
			WithArgs("ord-1").
			WillReturnRows(paymentRow())

		p, err := repo.GetByOrder(context.Background(), "ord-1")

		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, StatusCompleted, p.Status)
		assert.Equal(t, "upi", p.TransactionDetails.Method)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM payments").
			WithArgs("ord-1").
			WillReturnError(sql.ErrNoRows)

		p, err := repo.GetByOrder(context.Background(), "ord-1")

		assert.NoError(t, err)
		assert.Nil(t, p)
	})
}

func TestRepository_MarkCompleted(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE payments").
			WithArgs("pay-1", "pay_rzp1", "upi", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.MarkCompleted(context.Background(), "pay-1", "pay_rzp1", "upi", TransactionDetails{})
		assert.NoError(t, err)
	})

	t.Run("Already Completed Is A NoOp Failure", func(t *testing.T) {
		mock.ExpectExec("UPDATE payments").
			WithArgs("pay-1", "pay_rzp1", "upi", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkCompleted(context.Background(), "pay-1", "pay_rzp1", "upi", TransactionDetails{})
		assert.Equal(t, ErrPaymentNotFound, err)
	})
}

func TestRepository_MarkFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec("UPDATE payments").
		WithArgs("pay-1", "pay_rzp1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.MarkFailed(context.Background(), "pay-1", "pay_rzp1", TransactionDetails{
		ErrorCode: "BAD_REQUEST_ERROR",
	})

	assert.NoError(t, err)
}

func TestRepository_MarkRefunded(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE payments").
			WithArgs("pay-1", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.MarkRefunded(context.Background(), "pay-1", TransactionDetails{})
		assert.NoError(t, err)
	})

	t.Run("Not Completed", func(t *testing.T) {
		mock.ExpectExec("UPDATE payments").
			WithArgs("pay-1", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkRefunded(context.Background(), "pay-1", TransactionDetails{})
		assert.Equal(t, ErrPaymentNotCompleted, err)
	})
}

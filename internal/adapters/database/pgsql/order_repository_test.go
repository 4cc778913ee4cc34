package pgsql

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petalhub/florist_backend/internal/apperrors"
	"github.com/petalhub/florist_backend/internal/core/domain"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })
	return mock
}

func TestSaveOrder_InsertsOrderAndItemsInOneTx(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgxOrderRepository(mock)

	now := time.Now()
	order := domain.Order{
		OrderID:      "ord-1",
		UserID:       "user-1",
		Status:       domain.OrderPending,
		Currency:     "USD",
		CurrencyRate: decimal.RequireFromString("0.0116"),
		Items: []domain.OrderItem{
			{OrderItemID: "item-1", ProductID: "prod-1", ProductName: "Rose Bouquet", UnitPrice: decimal.RequireFromString("5.8"), Quantity: 2, DiscountPercent: decimal.Zero, FinalPrice: decimal.RequireFromString("11.6")},
		},
		Discount:    decimal.Zero,
		TotalAmount: decimal.RequireFromString("12.76"),
		AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: "user-1", LastUpdatedAt: now, LastUpdatedBy: "user-1"},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO orders")).
		WithArgs(order.OrderID, order.UserID, order.Status, order.Currency, order.CurrencyRate,
			order.ShippingFee, order.PromoCode, order.Discount, order.TotalAmount,
			order.DeliveryDate, order.PaymentRef,
			order.CreatedAt, order.CreatedBy, order.LastUpdatedAt, order.LastUpdatedBy).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO order_items")).
		WithArgs("item-1", order.OrderID, "prod-1", "Rose Bouquet",
			order.Items[0].UnitPrice, 2, order.Items[0].DiscountPercent, order.Items[0].FinalPrice).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := repo.SaveOrder(context.Background(), order)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveOrder_RollsBackOnItemInsertFailure(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgxOrderRepository(mock)

	order := domain.Order{
		OrderID: "ord-1",
		Status:  domain.OrderPending,
		Items: []domain.OrderItem{
			{OrderItemID: "item-1", ProductID: "prod-1"},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO orders")).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO order_items")).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.SaveOrder(context.Background(), order)

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrderStatus_NotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgxOrderRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET status")).
		WithArgs("missing", domain.OrderConfirmed, pgxmock.AnyArg(), "admin-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateOrderStatus(context.Background(), "missing", domain.OrderConfirmed, "admin-1")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrderByID_NotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgxOrderRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE order_id")).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	order, err := repo.FindOrderByID(context.Background(), "missing")

	assert.Nil(t, order)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementStock_Insufficient(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgxProductRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET stock = stock -")).
		WithArgs("prod-1", 5).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.DecrementStock(context.Background(), "prod-1", 5)

	assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementUsage_LimitReached(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgxPromoCodeRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE promo_codes SET times_used")).
		WithArgs("promo-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.IncrementUsage(context.Background(), "promo-1")

	assert.ErrorIs(t, err, apperrors.ErrPromoNotApplicable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindExchangeRate_NotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgxExchangeRateRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM exchange_rates")).
		WithArgs("INR", "USD").
		WillReturnError(pgx.ErrNoRows)

	rate, err := repo.FindExchangeRate(context.Background(), "INR", "USD")

	assert.Nil(t, rate)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindCurrencyByCode_ScansRow(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgxCurrencyRepository(mock)

	now := time.Now()
	rows := pgxmock.NewRows([]string{
		"currency_code", "symbol", "name", "approx_rate_per_inr",
		"created_at", "created_by", "last_updated_at", "last_updated_by",
	}).AddRow("USD", "$", "US Dollar", "0.01162", now, "admin-1", now, "admin-1")

	mock.ExpectQuery(regexp.QuoteMeta("FROM currencies")).
		WithArgs("USD").
		WillReturnRows(rows)

	currency, err := repo.FindCurrencyByCode(context.Background(), "USD")

	require.NoError(t, err)
	assert.Equal(t, "USD", currency.CurrencyCode)
	assert.True(t, currency.ApproxRatePerINR.Equal(decimal.RequireFromString("0.01162")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

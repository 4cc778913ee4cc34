package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/petalhub/florist_backend/internal/apperrors"
	"github.com/petalhub/florist_backend/internal/core/domain"
	portsrepo "github.com/petalhub/florist_backend/internal/core/ports/repositories"
	"github.com/petalhub/florist_backend/internal/utils/pagination"
)

const orderColumns = `order_id, user_id, status, currency, currency_rate, shipping_fee, promo_code, discount, total_amount, delivery_date, payment_ref, created_at, created_by, last_updated_at, last_updated_by`

type PgxOrderRepository struct {
	pool PGXPool
}

// NewPgxOrderRepository creates a new repository for order data.
func NewPgxOrderRepository(pool PGXPool) portsrepo.OrderRepositoryFacade {
	return &PgxOrderRepository{pool: pool}
}

// SaveOrder persists an order and its items in one transaction.
func (r *PgxOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	orderQuery := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err = tx.Exec(ctx, orderQuery,
		order.OrderID, order.UserID, order.Status, order.Currency, order.CurrencyRate,
		order.ShippingFee, order.PromoCode, order.Discount, order.TotalAmount,
		order.DeliveryDate, order.PaymentRef,
		order.CreatedAt, order.CreatedBy, order.LastUpdatedAt, order.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_item_id, order_id, product_id, product_name, unit_price, quantity, discount_percent, final_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, item := range order.Items {
		_, err = tx.Exec(ctx, itemQuery,
			item.OrderItemID, order.OrderID, item.ProductID, item.ProductName,
			item.UnitPrice, item.Quantity, item.DiscountPercent, item.FinalPrice,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order transaction: %w", err)
	}
	return nil
}

func (r *PgxOrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, updatedBy string) error {
	query := `
		UPDATE orders SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE order_id = $1
	`
	tag, err := r.pool.Exec(ctx, query, orderID, status, time.Now(), updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOrderRepository) UpdateOrderPaymentRef(ctx context.Context, orderID string, paymentRef string, updatedBy string) error {
	query := `
		UPDATE orders SET payment_ref = $2, last_updated_at = $3, last_updated_by = $4
		WHERE order_id = $1
	`
	tag, err := r.pool.Exec(ctx, query, orderID, paymentRef, time.Now(), updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update order payment ref: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1`
	order, err := scanOrderRow(r.pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order %s: %w", orderID, err)
	}

	items, err := r.loadItems(ctx, []string{orderID})
	if err != nil {
		return nil, err
	}
	order.Items = items[orderID]
	return order, nil
}

// ListOrders retrieves orders newest-first using keyset pagination.
func (r *PgxOrderRepository) ListOrders(ctx context.Context, filter portsrepo.OrderListFilter, limit int, nextToken string) ([]domain.Order, string, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	args := []any{}
	argPos := 1

	if filter.UserID != "" {
		query += fmt.Sprintf(" AND user_id = $%d", argPos)
		args = append(args, filter.UserID)
		argPos++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, filter.Status)
		argPos++
	}
	if nextToken != "" {
		createdAt, id, err := pagination.DecodeToken(nextToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += fmt.Sprintf(" AND (created_at, order_id) < ($%d, $%d)", argPos, argPos+1)
		args = append(args, createdAt, id)
		argPos += 2
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC, order_id DESC LIMIT $%d", argPos)
	args = append(args, limit+1)

	orders, err := r.queryOrders(ctx, query, args...)
	if err != nil {
		return nil, "", err
	}

	token := ""
	if len(orders) > limit {
		orders = orders[:limit]
		last := orders[len(orders)-1]
		token = pagination.EncodeToken(last.CreatedAt, last.OrderID)
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, "", err
	}
	return orders, token, nil
}

// ListOrdersCreatedBetween retrieves all orders created in [from, to) for reporting.
func (r *PgxOrderRepository) ListOrdersCreatedBetween(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE created_at >= $1 AND created_at < $2 ORDER BY created_at`
	orders, err := r.queryOrders(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PgxOrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Order, error) {
		order, err := scanOrderRow(row)
		if err != nil {
			return domain.Order{}, err
		}
		return *order, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan orders: %w", err)
	}
	return orders, nil
}

// attachItems loads the items for a batch of orders with a single query.
func (r *PgxOrderRepository) attachItems(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	for i := range orders {
		ids[i] = orders[i].OrderID
	}
	itemsByOrder, err := r.loadItems(ctx, ids)
	if err != nil {
		return err
	}
	for i := range orders {
		orders[i].Items = itemsByOrder[orders[i].OrderID]
	}
	return nil
}

func (r *PgxOrderRepository) loadItems(ctx context.Context, orderIDs []string) (map[string][]domain.OrderItem, error) {
	query := `
		SELECT order_item_id, order_id, product_id, product_name, unit_price, quantity, discount_percent, final_price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_item_id
	`
	rows, err := r.pool.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	itemsByOrder := make(map[string][]domain.OrderItem)
	for rows.Next() {
		var item domain.OrderItem
		var orderID string
		err := rows.Scan(
			&item.OrderItemID, &orderID, &item.ProductID, &item.ProductName,
			&item.UnitPrice, &item.Quantity, &item.DiscountPercent, &item.FinalPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		itemsByOrder[orderID] = append(itemsByOrder[orderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read order items: %w", err)
	}
	return itemsByOrder, nil
}

func scanOrderRow(row pgx.Row) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(
		&order.OrderID, &order.UserID, &order.Status, &order.Currency, &order.CurrencyRate,
		&order.ShippingFee, &order.PromoCode, &order.Discount, &order.TotalAmount,
		&order.DeliveryDate, &order.PaymentRef,
		&order.CreatedAt, &order.CreatedBy, &order.LastUpdatedAt, &order.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/petalhub/florist_backend/internal/core/domain"
	portsrepo "github.com/petalhub/florist_backend/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	pool PGXPool
}

// NewPgxReportingRepository creates a new repository for dashboard aggregates.
func NewPgxReportingRepository(pool PGXPool) portsrepo.ReportingReader {
	return &PgxReportingRepository{pool: pool}
}

// TopProducts aggregates sales per product over [from, to), ordered by
// INR-normalized revenue. Cancelled orders are excluded; line amounts are
// divided by the order-time rate to normalize foreign-currency orders.
func (r *PgxReportingRepository) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.ProductSales, error) {
	query := `
		SELECT
			oi.product_id,
			oi.product_name,
			SUM(oi.quantity)::int AS units_sold,
			SUM(
				CASE
					WHEN o.currency = '' OR o.currency = 'INR' OR o.currency_rate = 0 THEN oi.final_price
					ELSE oi.final_price / o.currency_rate
				END
			) AS revenue
		FROM order_items oi
		JOIN orders o ON o.order_id = oi.order_id
		WHERE o.created_at >= $1 AND o.created_at < $2 AND o.status <> 'CANCELLED'
		GROUP BY oi.product_id, oi.product_name
		ORDER BY revenue DESC
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top products: %w", err)
	}
	defer rows.Close()

	sales, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ProductSales, error) {
		var s domain.ProductSales
		err := row.Scan(&s.ProductID, &s.ProductName, &s.UnitsSold, &s.Revenue)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan top products: %w", err)
	}
	return sales, nil
}

// StatusCounts returns the order count per lifecycle status.
func (r *PgxReportingRepository) StatusCounts(ctx context.Context) ([]domain.StatusCount, error) {
	query := `
		SELECT status, COUNT(*)::int
		FROM orders
		GROUP BY status
		ORDER BY status
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query status counts: %w", err)
	}
	defer rows.Close()

	counts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.StatusCount, error) {
		var c domain.StatusCount
		err := row.Scan(&c.Status, &c.Count)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan status counts: %w", err)
	}
	return counts, nil
}

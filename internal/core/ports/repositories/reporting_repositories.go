package repositories

import (
	"context"
	"time"

	"github.com/petalhub/florist_backend/internal/core/domain"
)

// ReportingReader exposes the SQL aggregates behind the dashboard widgets.
type ReportingReader interface {
	// TopProducts returns per-product sales aggregates over [from, to),
	// ordered by revenue descending.
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.ProductSales, error)

	// StatusCounts returns the order count per lifecycle status.
	StatusCounts(ctx context.Context) ([]domain.StatusCount, error)
}

package services

import (
	"context"
	"time"

	"github.com/petalhub/florist_backend/internal/core/domain"
)

// ReportingSvcFacade computes the admin dashboard aggregates.
// All amounts are INR-normalized through the order-time rates.
type ReportingSvcFacade interface {
	// RevenueSummary aggregates revenue over [from, to).
	RevenueSummary(ctx context.Context, from, to time.Time) (*domain.RevenueSummary, error)

	// TopProducts returns the best-selling products over [from, to).
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.ProductSales, error)

	// StatusCounts returns the current order count per lifecycle status.
	StatusCounts(ctx context.Context) ([]domain.StatusCount, error)
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/petalhub/florist_backend/internal/core/domain"
	"github.com/petalhub/florist_backend/internal/core/pricing"
	portsrepo "github.com/petalhub/florist_backend/internal/core/ports/repositories"
	portssvc "github.com/petalhub/florist_backend/internal/core/ports/services"
)

type reportingService struct {
	BaseService
	orderRepo     portsrepo.OrderReader
	reportingRepo portsrepo.ReportingReader
}

// NewReportingService creates a new instance of reportingService.
func NewReportingService(orderRepo portsrepo.OrderReader, reportingRepo portsrepo.ReportingReader) portssvc.ReportingSvcFacade {
	return &reportingService{orderRepo: orderRepo, reportingRepo: reportingRepo}
}

// RevenueSummary aggregates revenue over [from, to). Orders are normalized to
// INR through their order-time rates so mixed-currency periods aggregate into
// one figure. Cancelled orders are excluded.
func (s *reportingService) RevenueSummary(ctx context.Context, from, to time.Time) (*domain.RevenueSummary, error) {
	orders, err := s.orderRepo.ListOrdersCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders for revenue summary: %w", err)
	}

	summary := domain.RevenueSummary{From: from, To: to}
	for i := range orders {
		order := &orders[i]
		if order.Status == domain.OrderCancelled {
			continue
		}

		total, err := pricing.ToBase(order.TotalAmount, order.Currency, order.CurrencyRate)
		if err != nil {
			s.LogWarn(ctx, "skipping order with unconvertible total", "order_id", order.OrderID, "currency", order.Currency)
			summary.EstimatedOrders++
			continue
		}

		discount := pricing.Conversion{Amount: decimal.Zero}
		if order.Discount.IsPositive() {
			discount, err = pricing.ToBase(order.Discount, order.Currency, order.CurrencyRate)
			if err != nil {
				discount = pricing.Conversion{Amount: decimal.Zero}
			}
		}

		shippingAmount := pricing.DefaultShippingFee()
		shippingEstimated := false
		if order.ShippingFee != nil {
			shipping, err := pricing.ToBase(*order.ShippingFee, order.Currency, order.CurrencyRate)
			if err == nil {
				shippingAmount = shipping.Amount
				shippingEstimated = shipping.Estimated
			}
		}

		summary.OrderCount++
		summary.GrossRevenue = summary.GrossRevenue.Add(total.Amount)
		summary.TotalDiscount = summary.TotalDiscount.Add(discount.Amount)
		summary.TotalShipping = summary.TotalShipping.Add(shippingAmount)
		if total.Estimated || discount.Estimated || shippingEstimated {
			summary.EstimatedOrders++
		}
	}

	return &summary, nil
}

func (s *reportingService) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.ProductSales, error) {
	sales, err := s.reportingRepo.TopProducts(ctx, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load top products: %w", err)
	}
	if sales == nil {
		return []domain.ProductSales{}, nil
	}
	return sales, nil
}

func (s *reportingService) StatusCounts(ctx context.Context) ([]domain.StatusCount, error) {
	counts, err := s.reportingRepo.StatusCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load status counts: %w", err)
	}
	if counts == nil {
		return []domain.StatusCount{}, nil
	}
	return counts, nil
}

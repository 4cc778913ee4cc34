package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/petalhub/florist_backend/internal/core/domain"
	"github.com/petalhub/florist_backend/internal/core/pricing"
)

// RevenueSummaryResponse is the dashboard revenue widget payload.
// Amounts are INR-normalized; the Display fields carry formatted strings.
type RevenueSummaryResponse struct {
	From                 time.Time       `json:"from"`
	To                   time.Time       `json:"to"`
	OrderCount           int             `json:"orderCount"`
	GrossRevenue         decimal.Decimal `json:"grossRevenue"`
	GrossRevenueDisplay  string          `json:"grossRevenueDisplay"`
	TotalDiscount        decimal.Decimal `json:"totalDiscount"`
	TotalDiscountDisplay string          `json:"totalDiscountDisplay"`
	TotalShipping        decimal.Decimal `json:"totalShipping"`
	TotalShippingDisplay string          `json:"totalShippingDisplay"`
	EstimatedOrders      int             `json:"estimatedOrders"`
}

// ToRevenueSummaryResponse converts a domain.RevenueSummary to its API view.
func ToRevenueSummaryResponse(s *domain.RevenueSummary) RevenueSummaryResponse {
	return RevenueSummaryResponse{
		From:                 s.From,
		To:                   s.To,
		OrderCount:           s.OrderCount,
		GrossRevenue:         s.GrossRevenue,
		GrossRevenueDisplay:  pricing.Format(s.GrossRevenue, pricing.BaseCurrencyCode),
		TotalDiscount:        s.TotalDiscount,
		TotalDiscountDisplay: pricing.Format(s.TotalDiscount, pricing.BaseCurrencyCode),
		TotalShipping:        s.TotalShipping,
		TotalShippingDisplay: pricing.Format(s.TotalShipping, pricing.BaseCurrencyCode),
		EstimatedOrders:      s.EstimatedOrders,
	}
}

// ProductSalesResponse is one row of the top-products widget.
type ProductSalesResponse struct {
	ProductID      string          `json:"productID"`
	ProductName    string          `json:"productName"`
	UnitsSold      int             `json:"unitsSold"`
	Revenue        decimal.Decimal `json:"revenue"`
	RevenueDisplay string          `json:"revenueDisplay"`
}

// ToProductSalesResponse converts product sales aggregates to their API view.
func ToProductSalesResponse(sales []domain.ProductSales) []ProductSalesResponse {
	res := make([]ProductSalesResponse, len(sales))
	for i, s := range sales {
		res[i] = ProductSalesResponse{
			ProductID:      s.ProductID,
			ProductName:    s.ProductName,
			UnitsSold:      s.UnitsSold,
			Revenue:        s.Revenue,
			RevenueDisplay: pricing.Format(s.Revenue, pricing.BaseCurrencyCode),
		}
	}
	return res
}

// StatusCountResponse is one row of the order-status widget.
type StatusCountResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// ToStatusCountResponse converts status counts to their API view.
func ToStatusCountResponse(counts []domain.StatusCount) []StatusCountResponse {
	res := make([]StatusCountResponse, len(counts))
	for i, c := range counts {
		res[i] = StatusCountResponse{Status: string(c.Status), Count: c.Count}
	}
	return res
}

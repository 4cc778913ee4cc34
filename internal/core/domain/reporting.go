package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RevenueSummary is an aggregate of order revenue over a period.
// All amounts are INR-normalized so cross-currency orders aggregate cleanly.
type RevenueSummary struct {
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	OrderCount    int             `json:"orderCount"`
	GrossRevenue  decimal.Decimal `json:"grossRevenue"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
	TotalShipping decimal.Decimal `json:"totalShipping"`
	// EstimatedOrders counts orders whose INR value relied on an approximate
	// fallback rate; the summary is an estimate when this is non-zero.
	EstimatedOrders int `json:"estimatedOrders"`
}

// ProductSales is a per-product sales aggregate for the top-products widget.
type ProductSales struct {
	ProductID   string          `json:"productID"`
	ProductName string          `json:"productName"`
	UnitsSold   int             `json:"unitsSold"`
	Revenue     decimal.Decimal `json:"revenue"` // INR
}

// StatusCount is a count of orders per lifecycle status.
type StatusCount struct {
	Status OrderStatus `json:"status"`
	Count  int         `json:"count"`
}

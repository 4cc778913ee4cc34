package services

import (
	"context"
	"io"

	"github.com/petalhub/florist_backend/internal/core/domain"
	"github.com/petalhub/florist_backend/internal/core/pricing"
	portsrepo "github.com/petalhub/florist_backend/internal/core/ports/repositories"
	"github.com/petalhub/florist_backend/internal/dto"
)

// OrderReaderSvc defines read operations for orders
type OrderReaderSvc interface {
	// GetOrder retrieves an order by ID.
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)

	// ListOrders retrieves a page of orders, newest first.
	ListOrders(ctx context.Context, filter portsrepo.OrderListFilter, limit int, nextToken string) ([]domain.Order, string, error)

	// InvoiceForOrder computes the INR GST invoice breakdown for an order.
	InvoiceForOrder(ctx context.Context, orderID string) (*domain.Order, pricing.InvoiceTotals, error)

	// ExportOrdersCSV streams matching orders as CSV, amounts rendered in the
	// given display currency.
	ExportOrdersCSV(ctx context.Context, filter portsrepo.OrderListFilter, display pricing.DisplayContext, w io.Writer) error
}

// OrderWriterSvc defines write operations for orders
type OrderWriterSvc interface {
	// CreateOrder places an order from a checkout request: snapshots the
	// currency rate, applies any promo, prices the lines and persists.
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest, userID string) (*domain.Order, error)

	// UpdateOrderStatus moves an order through its lifecycle, enforcing valid
	// transitions.
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, updatedBy string) (*domain.Order, error)
}

// OrderSvcFacade combines all order-related service interfaces
type OrderSvcFacade interface {
	OrderReaderSvc
	OrderWriterSvc
}

package repositories

import (
	"context"
	"time"

	"github.com/petalhub/florist_backend/internal/core/domain"
)

// OrderListFilter narrows an order listing. Zero values mean "no filter".
type OrderListFilter struct {
	UserID string
	Status domain.OrderStatus
}

// OrderReader defines read operations for orders
type OrderReader interface {
	// FindOrderByID retrieves an order with its items.
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// ListOrders retrieves orders newest-first using keyset pagination.
	// nextToken is the opaque token from a previous page, empty for the first.
	// It returns the page and the token for the following page ("" when done).
	ListOrders(ctx context.Context, filter OrderListFilter, limit int, nextToken string) ([]domain.Order, string, error)

	// ListOrdersCreatedBetween retrieves all orders created in [from, to) for reporting.
	ListOrdersCreatedBetween(ctx context.Context, from, to time.Time) ([]domain.Order, error)
}

// OrderWriter defines write operations for orders
type OrderWriter interface {
	// SaveOrder persists a new order and its items atomically.
	SaveOrder(ctx context.Context, order domain.Order) error

	// UpdateOrderStatus moves an order to a new lifecycle status.
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, updatedBy string) error

	// UpdateOrderPaymentRef records the payment-gateway reference for an order.
	UpdateOrderPaymentRef(ctx context.Context, orderID string, paymentRef string, updatedBy string) error
}

// OrderRepositoryFacade combines all order-related repository interfaces
type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
}

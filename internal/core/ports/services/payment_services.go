package services

import (
	"context"

	"github.com/petalhub/florist_backend/internal/core/ports/providers"
)

// PaymentSvcFacade creates gateway payments for orders.
type PaymentSvcFacade interface {
	// CreatePaymentIntentForOrder registers a payment for the order's total,
	// submitted in the smallest currency unit, and records the gateway
	// reference on the order.
	CreatePaymentIntentForOrder(ctx context.Context, orderID string, requesterUserID string) (*providers.PaymentIntent, error)
}

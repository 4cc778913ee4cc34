package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/petalhub/florist_backend/internal/apperrors"
	"github.com/petalhub/florist_backend/internal/core/domain"
	"github.com/petalhub/florist_backend/internal/core/pricing"
	portsprov "github.com/petalhub/florist_backend/internal/core/ports/providers"
	portsrepo "github.com/petalhub/florist_backend/internal/core/ports/repositories"
	portssvc "github.com/petalhub/florist_backend/internal/core/ports/services"
)

type paymentService struct {
	BaseService
	orderRepo portsrepo.OrderRepositoryFacade
	provider  portsprov.PaymentProvider
}

// NewPaymentService creates a new instance of paymentService.
func NewPaymentService(orderRepo portsrepo.OrderRepositoryFacade, provider portsprov.PaymentProvider) portssvc.PaymentSvcFacade {
	return &paymentService{orderRepo: orderRepo, provider: provider}
}

// CreatePaymentIntentForOrder registers a payment for the order's total.
// Gateways take amounts in the smallest currency unit, so the decimal total
// is converted to paise/cents here and nowhere else.
func (s *paymentService) CreatePaymentIntentForOrder(ctx context.Context, orderID string, requesterUserID string) (*portsprov.PaymentIntent, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}

	if order.UserID != requesterUserID {
		return nil, fmt.Errorf("%w: order belongs to another user", apperrors.ErrForbidden)
	}
	if order.Status != domain.OrderPending {
		return nil, fmt.Errorf("%w: order is %s, only pending orders can be paid", apperrors.ErrValidation, order.Status)
	}

	currency := order.Currency
	if currency == "" {
		currency = pricing.BaseCurrencyCode
	}

	amountMinor := pricing.MinorUnits(order.TotalAmount)
	intent, err := s.provider.CreatePaymentIntent(ctx, amountMinor, strings.ToLower(currency), map[string]string{
		"order_id": order.OrderID,
		"user_id":  order.UserID,
	})
	if err != nil {
		s.LogError(ctx, err, "failed to create payment intent", "order_id", orderID)
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	if err := s.orderRepo.UpdateOrderPaymentRef(ctx, order.OrderID, intent.ID, requesterUserID); err != nil {
		s.LogError(ctx, err, "failed to record payment reference", "order_id", orderID, "payment_ref", intent.ID)
		return nil, fmt.Errorf("failed to record payment reference: %w", err)
	}

	s.LogInfo(ctx, "payment intent created", "order_id", orderID, "amount_minor", amountMinor, "currency", currency)
	return intent, nil
}

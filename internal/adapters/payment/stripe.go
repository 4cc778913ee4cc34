// Package payment implements the payment provider port on Stripe.
package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"

	portsprov "github.com/petalhub/florist_backend/internal/core/ports/providers"
)

// StripeProvider creates payment intents with Stripe.
type StripeProvider struct{}

// NewStripeProvider configures the global Stripe key and returns the provider.
func NewStripeProvider(apiKey string) portsprov.PaymentProvider {
	stripe.Key = apiKey
	return &StripeProvider{}
}

// CreatePaymentIntent registers a payment for the given minor-unit amount.
func (p *StripeProvider) CreatePaymentIntent(ctx context.Context, amountMinor int64, currencyCode string, metadata map[string]string) (*portsprov.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(currencyCode),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create stripe payment intent: %w", err)
	}

	return &portsprov.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		AmountMinor:  pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
	}, nil
}

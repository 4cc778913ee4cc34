// Package providers defines ports for external collaborators: the rate
// cache, the live exchange-rate source and the payment gateway.
package providers

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RateCache caches resolved INR->currency display rates.
type RateCache interface {
	// GetRate returns the cached rate and whether it was present.
	GetRate(ctx context.Context, currencyCode string) (decimal.Decimal, bool, error)

	// SetRate stores a rate with a TTL.
	SetRate(ctx context.Context, currencyCode string, rate decimal.Decimal, ttl time.Duration) error
}

// LiveRateSource fetches a current exchange rate from an external service.
type LiveRateSource interface {
	// FetchRate returns the current from->to rate.
	FetchRate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error)
}

// PaymentIntent is the gateway-neutral view of a created payment.
// AmountMinor is in the currency's smallest unit (paise, cents).
type PaymentIntent struct {
	ID           string
	ClientSecret string
	AmountMinor  int64
	Currency     string
	Status       string
}

// PaymentProvider creates payments with an external gateway.
type PaymentProvider interface {
	// CreatePaymentIntent registers a payment for the given minor-unit amount.
	CreatePaymentIntent(ctx context.Context, amountMinor int64, currencyCode string, metadata map[string]string) (*PaymentIntent, error)
}

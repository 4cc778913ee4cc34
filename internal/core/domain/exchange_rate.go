package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate represents a stored INR->currency conversion rate.
// FromCurrencyCode is always "INR" in practice; the pair form is kept so the
// table can hold cross rates if they are ever needed.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	AuditFields
}

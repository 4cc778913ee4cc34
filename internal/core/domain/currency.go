package domain

import "github.com/shopspring/decimal"

// Currency represents a supported display/settlement currency.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	// ApproxRatePerINR is the last-resort INR->currency rate used when an order
	// carries no recorded rate. It is an approximation, never authoritative.
	ApproxRatePerINR decimal.Decimal `json:"approxRatePerINR"`
	AuditFields
}

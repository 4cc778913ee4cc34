package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petalhub/florist_backend/internal/core/pricing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		want     string
	}{
		{"inr small", "500", "INR", "₹500.00"},
		{"inr thousands", "2753.87", "INR", "₹2,753.87"},
		{"inr lakh grouping", "123456.78", "INR", "₹1,23,456.78"},
		{"inr crore grouping", "12345678.9", "INR", "₹1,23,45,678.90"},
		{"usd western grouping", "1234567.891", "USD", "$1,234,567.89"},
		{"eur", "99.999", "EUR", "€100.00"},
		{"gbp", "0.5", "GBP", "£0.50"},
		{"zero renders as-is", "0", "INR", "₹0.00"},
		{"negative leading minus", "-42.5", "USD", "-$42.50"},
		{"unsupported code plain number", "1234.5", "JPY", "1,234.50"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, pricing.Format(dec(tc.amount), tc.currency))
		})
	}
}

func TestFormat_Idempotent(t *testing.T) {
	amount := dec("98765.432")
	for _, code := range []string{"INR", "USD", "EUR", "GBP", "XXX"} {
		first := pricing.Format(amount, code)
		second := pricing.Format(amount, code)
		assert.Equal(t, first, second, code)
	}
}

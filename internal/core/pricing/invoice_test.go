package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petalhub/florist_backend/internal/core/domain"
	"github.com/petalhub/florist_backend/internal/core/pricing"
)

func inrOrder(finalPrices ...string) domain.Order {
	order := domain.Order{Currency: "INR"}
	for _, p := range finalPrices {
		order.Items = append(order.Items, domain.OrderItem{FinalPrice: dec(p)})
	}
	return order
}

func TestComputeInvoiceTotals_GSTSplit(t *testing.T) {
	// Scenario: INR 2000 subtotal yields 50 + 50 GST and a 100 combined line.
	order := inrOrder("1200", "800")
	fee := dec("100")
	order.ShippingFee = &fee

	totals, err := pricing.ComputeInvoiceTotals(order)
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.Equal(dec("2000")), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.CGST.Equal(dec("50")), "cgst %s", totals.CGST)
	assert.True(t, totals.SGST.Equal(dec("50")), "sgst %s", totals.SGST)
	assert.True(t, totals.CombinedTax().Equal(dec("100")))
	assert.True(t, totals.Shipping.Equal(dec("100")))
	assert.True(t, totals.GrandTotal.Equal(dec("2200")))
	assert.False(t, totals.Estimated)
}

func TestComputeInvoiceTotals_GSTInvariantExact(t *testing.T) {
	// cgst + sgst must equal exactly 5% of the subtotal, with no rounding drift.
	for _, sub := range []string{"0.01", "1", "333.33", "2000", "99999.99"} {
		totals, err := pricing.ComputeInvoiceTotals(inrOrder(sub))
		require.NoError(t, err)
		want := dec(sub).Mul(dec("0.05"))
		assert.True(t, totals.CombinedTax().Equal(want),
			"subtotal %s: combined %s want %s", sub, totals.CombinedTax(), want)
	}
}

func TestComputeInvoiceTotals_DefaultShipping(t *testing.T) {
	// Unset shipping fee defaults to 100, run through the same conversion as
	// everything else on the order.
	totals, err := pricing.ComputeInvoiceTotals(inrOrder("1000"))
	require.NoError(t, err)
	assert.True(t, totals.Shipping.Equal(dec("100")))

	usd := domain.Order{
		Currency:     "USD",
		CurrencyRate: dec("0.01"),
		Items:        []domain.OrderItem{{FinalPrice: dec("10")}},
	}
	totals, err = pricing.ComputeInvoiceTotals(usd)
	require.NoError(t, err)
	assert.True(t, totals.Shipping.Equal(dec("10000")), "shipping %s", totals.Shipping)
}

func TestComputeInvoiceTotals_AlwaysINR(t *testing.T) {
	// A USD order invoices in INR via its order-time rate.
	order := domain.Order{
		Currency:     "USD",
		CurrencyRate: dec("0.01162"),
		Items: []domain.OrderItem{
			{FinalPrice: dec("20")},
			{FinalPrice: dec("12")},
		},
	}
	fee := dec("1.162")
	order.ShippingFee = &fee

	totals, err := pricing.ComputeInvoiceTotals(order)
	require.NoError(t, err)
	assert.InDelta(t, 2753.87, totals.Subtotal.InexactFloat64(), 0.01)
	assert.InDelta(t, 100, totals.Shipping.InexactFloat64(), 0.01)
	assert.False(t, totals.Estimated)
}

func TestComputeInvoiceTotals_EstimatedWhenRateMissing(t *testing.T) {
	order := domain.Order{
		Currency: "USD",
		Items:    []domain.OrderItem{{FinalPrice: dec("11.62")}},
	}
	totals, err := pricing.ComputeInvoiceTotals(order)
	require.NoError(t, err)
	assert.True(t, totals.Estimated)
	assert.InDelta(t, 1000, totals.Subtotal.InexactFloat64(), 0.01)
}

func TestComputeInvoiceTotals_EmptyOrder(t *testing.T) {
	totals, err := pricing.ComputeInvoiceTotals(domain.Order{Currency: "INR"})
	require.NoError(t, err)
	assert.True(t, totals.Subtotal.Equal(decimal.Zero))
	// Shipping still applies to an empty order; the default is unconditional.
	assert.True(t, totals.Shipping.Equal(dec("100")))
	assert.True(t, totals.GrandTotal.Equal(dec("100")))
}

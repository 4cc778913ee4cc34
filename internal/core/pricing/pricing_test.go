package pricing_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petalhub/florist_backend/internal/core/pricing"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestToBase_IdentityForINR(t *testing.T) {
	// INR needs no conversion, whatever rate is on the order.
	rates := []decimal.Decimal{decimal.Zero, dec("0.01162"), dec("42")}
	for _, rate := range rates {
		conv, err := pricing.ToBase(dec("500"), "INR", rate)
		require.NoError(t, err)
		assert.True(t, conv.Amount.Equal(dec("500")))
		assert.False(t, conv.Estimated)
	}
}

func TestToBase_MissingCurrencyTreatedAsINR(t *testing.T) {
	conv, err := pricing.ToBase(dec("500"), "", decimal.Zero)
	require.NoError(t, err)
	assert.True(t, conv.Amount.Equal(dec("500")))
	assert.False(t, conv.Estimated)
}

func TestToBase_DividesByOrderRate(t *testing.T) {
	conv, err := pricing.ToBase(dec("32"), "USD", dec("0.01162"))
	require.NoError(t, err)
	assert.InDelta(t, 2753.87, conv.Amount.InexactFloat64(), 0.01)
	assert.False(t, conv.Estimated)
}

func TestToBase_FallsBackToApproximateRate(t *testing.T) {
	// Zero and unset rates must not divide by zero; the static table kicks in
	// and the result is flagged as an estimate.
	for _, rate := range []decimal.Decimal{decimal.Zero, dec("-1")} {
		conv, err := pricing.ToBase(dec("11.62"), "USD", rate)
		require.NoError(t, err)
		assert.True(t, conv.Estimated)
		assert.InDelta(t, 1000, conv.Amount.InexactFloat64(), 0.01)
	}
}

func TestToBase_UnknownCurrencyWithoutRate(t *testing.T) {
	_, err := pricing.ToBase(dec("10"), "JPY", decimal.Zero)
	require.Error(t, err)
	assert.ErrorIs(t, err, pricing.ErrMissingRate)
}

func TestToDisplay(t *testing.T) {
	amount := dec("1000")

	got, err := pricing.ToDisplay(amount, pricing.DisplayINR)
	require.NoError(t, err)
	assert.True(t, got.Equal(amount))

	got, err = pricing.ToDisplay(amount, pricing.DisplayContext{Currency: "USD", Rate: dec("0.01162")})
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("11.62")))

	_, err = pricing.ToDisplay(amount, pricing.DisplayContext{Currency: "USD"})
	assert.ErrorIs(t, err, pricing.ErrMissingRate)
}

func TestRoundTrip_BaseAndDisplay(t *testing.T) {
	// toDisplay(toBase(a)) == a within 1e-6 for any positive rate.
	cases := []struct {
		amount, rate string
	}{
		{"32", "0.01162"},
		{"0.01", "0.0096"},
		{"99999.99", "0.011"},
		{"123.45", "3"},
	}
	for _, tc := range cases {
		base, err := pricing.ToBase(dec(tc.amount), "USD", dec(tc.rate))
		require.NoError(t, err)
		back, err := pricing.ToDisplay(base.Amount, pricing.DisplayContext{Currency: "USD", Rate: dec(tc.rate)})
		require.NoError(t, err)
		assert.InDelta(t, dec(tc.amount).InexactFloat64(), back.InexactFloat64(), 1e-6,
			"amount=%s rate=%s", tc.amount, tc.rate)
	}
}

func TestConvertForDisplay_Cases(t *testing.T) {
	usdRate := dec("0.01162")

	tests := []struct {
		name          string
		amount        string
		orderCurrency string
		orderRate     decimal.Decimal
		display       pricing.DisplayContext
		want          float64
		estimated     bool
	}{
		{
			// Scenario A: USD order viewed in INR divides by the order rate.
			name: "usd order to inr", amount: "32", orderCurrency: "USD", orderRate: usdRate,
			display: pricing.DisplayINR, want: 2753.87,
		},
		{
			// Scenario B: INR order viewed in USD multiplies by the live rate.
			name: "inr order to usd", amount: "1000", orderCurrency: "INR",
			display: pricing.DisplayContext{Currency: "USD", Rate: usdRate}, want: 11.62,
		},
		{
			// Scenario D: no currency on the order means INR, shown unchanged.
			name: "missing currency to inr", amount: "500", orderCurrency: "",
			display: pricing.DisplayINR, want: 500,
		},
		{
			name: "same currency no conversion", amount: "32", orderCurrency: "USD", orderRate: usdRate,
			display: pricing.DisplayContext{Currency: "USD", Rate: dec("0.013")}, want: 32,
		},
		{
			// Cross rate chains through INR: 32 USD -> 2753.87 INR -> GBP.
			name: "usd order to gbp", amount: "32", orderCurrency: "USD", orderRate: usdRate,
			display: pricing.DisplayContext{Currency: "GBP", Rate: dec("0.0096")}, want: 26.44,
		},
		{
			// Scenario E: zero order rate falls back to the approximate table.
			name: "zero order rate estimates", amount: "11.62", orderCurrency: "USD", orderRate: decimal.Zero,
			display: pricing.DisplayINR, want: 1000, estimated: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			conv, err := pricing.ConvertForDisplay(dec(tc.amount), tc.orderCurrency, tc.orderRate, tc.display)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, conv.Amount.InexactFloat64(), 0.01)
			assert.Equal(t, tc.estimated, conv.Estimated)
		})
	}
}

func TestDisplayOrderPrice_FormatsInDisplayCurrency(t *testing.T) {
	got, err := pricing.DisplayOrderPrice(dec("32"), "USD", dec("0.01162"), pricing.DisplayINR)
	require.NoError(t, err)
	assert.Equal(t, "₹2,753.87", got)

	got, err = pricing.DisplayOrderPrice(dec("1000"), "INR", decimal.Zero,
		pricing.DisplayContext{Currency: "USD", Rate: dec("0.01162")})
	require.NoError(t, err)
	assert.Equal(t, "$11.62", got)
}

func TestParseAmount(t *testing.T) {
	got, err := pricing.ParseAmount(129.99)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("129.99")))

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -1} {
		_, err := pricing.ParseAmount(bad)
		assert.ErrorIs(t, err, pricing.ErrInvalidAmount, "input %v", bad)
	}

	got, err = pricing.ParseAmount(0)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(115000), pricing.MinorUnits(dec("1150")))
	assert.Equal(t, int64(1162), pricing.MinorUnits(dec("11.62")))
	// Rounds half away from zero before submission.
	assert.Equal(t, int64(100), pricing.MinorUnits(dec("0.995")))
	assert.Equal(t, int64(0), pricing.MinorUnits(decimal.Zero))
}

func TestSupportedCurrency(t *testing.T) {
	for _, code := range []string{"INR", "USD", "EUR", "GBP"} {
		assert.True(t, pricing.SupportedCurrency(code), code)
	}
	assert.False(t, pricing.SupportedCurrency("JPY"))
	assert.False(t, pricing.SupportedCurrency(""))
}

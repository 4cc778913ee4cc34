// Package pricing implements the order pricing and currency normalization
// rules shared by checkout, the admin order list, invoices and reporting.
//
// All functions are pure: they operate on decimals and an explicit
// DisplayContext, never on ambient state. INR is the base currency; every
// order stores the INR->currency rate captured at purchase time, which is the
// only thing that lets us reconstruct the INR value of an order after live
// rates have moved.
package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// BaseCurrencyCode is the official settlement and tax currency.
const BaseCurrencyCode = "INR"

// Placeholder is rendered wherever an amount could not be parsed or computed.
// Invalid input never reaches arithmetic; it is caught at the boundary and
// display sites show this instead.
const Placeholder = "N/A"

// ErrMissingRate indicates that a cross-currency conversion was requested but
// no usable rate exists, not even an approximate fallback.
var ErrMissingRate = errors.New("missing exchange rate")

// ErrInvalidAmount indicates a NaN, infinite or negative amount where one is
// not permitted.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrUnsupportedCurrency indicates a currency code outside the supported set.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// approxRatePerINR is the hard-coded last-resort INR->currency rate table used
// when an order lacks a recorded rate. The values are approximations; results
// derived from them are flagged as estimates.
var approxRatePerINR = map[string]decimal.Decimal{
	"USD": decimal.RequireFromString("0.01162"),
	"EUR": decimal.RequireFromString("0.011"),
	"GBP": decimal.RequireFromString("0.0096"),
}

// DisplayContext is the viewer's currency selection together with the live
// INR->currency rate it was resolved against. The two travel as one value so
// a conversion can never observe a currency from one moment and a rate from
// another.
type DisplayContext struct {
	Currency string
	Rate     decimal.Decimal
}

// DisplayINR is the default display context: amounts shown in INR, no conversion.
var DisplayINR = DisplayContext{Currency: BaseCurrencyCode, Rate: decimal.NewFromInt(1)}

// Conversion is the outcome of a currency conversion. Estimated is true when
// a hard-coded approximate rate was substituted for a missing order rate.
type Conversion struct {
	Amount    decimal.Decimal
	Estimated bool
}

// ParseAmount converts a raw float (as received from JSON or an upstream API)
// into a decimal, rejecting NaN, infinities and negative values. This is the
// single place the NaN policy is enforced.
func ParseAmount(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: not a finite number", ErrInvalidAmount)
	}
	if f < 0 {
		return decimal.Zero, fmt.Errorf("%w: negative amount %v", ErrInvalidAmount, f)
	}
	return decimal.NewFromFloat(f), nil
}

// ToBase converts an amount denominated in orderCurrency into INR using the
// order's recorded INR->orderCurrency rate.
//
// An empty or INR order currency passes through unchanged. A zero or negative
// recorded rate falls back to the approximate static table and marks the
// result estimated; if the currency has no fallback either, ErrMissingRate is
// returned. Division by zero is therefore impossible.
func ToBase(amount decimal.Decimal, orderCurrency string, orderRate decimal.Decimal) (Conversion, error) {
	if orderCurrency == "" || orderCurrency == BaseCurrencyCode {
		return Conversion{Amount: amount}, nil
	}
	if orderRate.IsPositive() {
		return Conversion{Amount: amount.Div(orderRate)}, nil
	}
	approx, ok := approxRatePerINR[orderCurrency]
	if !ok {
		return Conversion{}, fmt.Errorf("%w: no recorded or fallback rate for %s", ErrMissingRate, orderCurrency)
	}
	return Conversion{Amount: amount.Div(approx), Estimated: true}, nil
}

// ToDisplay converts an INR amount into the viewer's selected currency.
// An INR (or empty) display currency is the identity; anything else requires
// a positive live rate in the context.
func ToDisplay(amountINR decimal.Decimal, display DisplayContext) (decimal.Decimal, error) {
	if display.Currency == "" || display.Currency == BaseCurrencyCode {
		return amountINR, nil
	}
	if !display.Rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: no display rate for %s", ErrMissingRate, display.Currency)
	}
	return amountINR.Mul(display.Rate), nil
}

// ConvertForDisplay converts an order amount from its origin currency into the
// viewer's display currency, composing ToBase and ToDisplay:
//
//  1. origin == display: no conversion
//  2. INR -> X: multiply by the display rate
//  3. X -> INR: divide by the order rate
//  4. X -> Y: chain through INR (order rate, then display rate)
//  5. missing origin currency: treated as INR
func ConvertForDisplay(amount decimal.Decimal, orderCurrency string, orderRate decimal.Decimal, display DisplayContext) (Conversion, error) {
	origin := orderCurrency
	if origin == "" {
		origin = BaseCurrencyCode
	}
	target := display.Currency
	if target == "" {
		target = BaseCurrencyCode
	}

	if origin == target {
		return Conversion{Amount: amount}, nil
	}

	base, err := ToBase(amount, origin, orderRate)
	if err != nil {
		return Conversion{}, err
	}
	displayed, err := ToDisplay(base.Amount, DisplayContext{Currency: target, Rate: display.Rate})
	if err != nil {
		return Conversion{}, err
	}
	return Conversion{Amount: displayed, Estimated: base.Estimated}, nil
}

// DisplayOrderPrice converts an order amount into the display currency and
// formats it. This is the single formatting path for the admin order list,
// checkout confirmation and order history surfaces.
func DisplayOrderPrice(amount decimal.Decimal, orderCurrency string, orderRate decimal.Decimal, display DisplayContext) (string, error) {
	conv, err := ConvertForDisplay(amount, orderCurrency, orderRate, display)
	if err != nil {
		return "", err
	}
	target := display.Currency
	if target == "" {
		target = BaseCurrencyCode
	}
	return Format(conv.Amount, target), nil
}

// MinorUnits converts an amount to the currency's smallest unit (paise,
// cents) for payment-gateway submission, rounding half away from zero.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// SupportedCurrency reports whether code is in the supported set.
func SupportedCurrency(code string) bool {
	if code == BaseCurrencyCode {
		return true
	}
	_, ok := approxRatePerINR[code]
	return ok
}

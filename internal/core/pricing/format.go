package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// currencySymbols maps supported codes to their display symbol.
var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// Format renders an amount with exactly two fraction digits and the
// currency's symbol. INR uses en-IN digit grouping (last three digits, then
// groups of two); everything else uses en-US grouping. An unsupported code
// degrades to a plain grouped number with no symbol rather than failing: a
// formatting glitch must never take down a page.
//
// Negative amounts render with a leading minus; zero renders as-is. The
// function is deterministic, so repeated calls on the same input yield
// identical strings.
func Format(amount decimal.Decimal, currencyCode string) string {
	negative := amount.IsNegative()
	fixed := amount.Abs().StringFixed(2)

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	var grouped string
	if currencyCode == BaseCurrencyCode {
		grouped = groupIndian(intPart)
	} else {
		grouped = groupWestern(intPart)
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	if symbol, ok := currencySymbols[currencyCode]; ok {
		b.WriteString(symbol)
	}
	b.WriteString(grouped)
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// groupWestern inserts a comma every three digits: 1234567 -> 1,234,567.
func groupWestern(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	rem := n % 3
	if rem > 0 {
		b.WriteString(digits[:rem])
	}
	for i := rem; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// groupIndian groups the last three digits, then pairs: 12345678 -> 1,23,45,678.
func groupIndian(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	head := digits[:n-3]
	tail := digits[n-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}

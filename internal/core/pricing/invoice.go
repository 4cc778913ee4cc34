package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/petalhub/florist_backend/internal/core/domain"
)

// GST policy: 2.5% CGST + 2.5% SGST = 5% combined. Fixed by statute for the
// product category, not configurable per order.
var (
	cgstRate = decimal.RequireFromString("0.025")
	sgstRate = decimal.RequireFromString("0.025")
)

// defaultShippingFee applies when an order carries no explicit shipping fee.
var defaultShippingFee = decimal.NewFromInt(100)

// DefaultShippingFee returns the flat INR shipping fee applied to orders that
// carry no explicit fee.
func DefaultShippingFee() decimal.Decimal {
	return defaultShippingFee
}

// InvoiceTotals is the GST invoice breakdown for an order. Every field is
// denominated in INR regardless of the currency the order was paid in:
// tax and invoice totals are always computed in the official currency.
// Estimated is true when any component relied on an approximate fallback rate.
type InvoiceTotals struct {
	Subtotal   decimal.Decimal
	CGST       decimal.Decimal
	SGST       decimal.Decimal
	Shipping   decimal.Decimal
	GrandTotal decimal.Decimal
	Estimated  bool
}

// CombinedTax returns the single combined GST line (CGST + SGST).
func (t InvoiceTotals) CombinedTax() decimal.Decimal {
	return t.CGST.Add(t.SGST)
}

// ComputeInvoiceTotals derives the INR invoice breakdown from an order's
// monetary snapshot: the item subtotal and shipping fee are converted to INR
// with the order-time rate, then the fixed GST split is applied.
func ComputeInvoiceTotals(order domain.Order) (InvoiceTotals, error) {
	lineSum := decimal.Zero
	for _, item := range order.Items {
		lineSum = lineSum.Add(item.FinalPrice)
	}

	subtotal, err := ToBase(lineSum, order.Currency, order.CurrencyRate)
	if err != nil {
		return InvoiceTotals{}, err
	}

	shippingFee := defaultShippingFee
	if order.ShippingFee != nil {
		shippingFee = *order.ShippingFee
	}
	shipping, err := ToBase(shippingFee, order.Currency, order.CurrencyRate)
	if err != nil {
		return InvoiceTotals{}, err
	}

	cgst := subtotal.Amount.Mul(cgstRate)
	sgst := subtotal.Amount.Mul(sgstRate)

	return InvoiceTotals{
		Subtotal:   subtotal.Amount,
		CGST:       cgst,
		SGST:       sgst,
		Shipping:   shipping.Amount,
		GrandTotal: subtotal.Amount.Add(cgst).Add(sgst).Add(shipping.Amount),
		Estimated:  subtotal.Estimated || shipping.Estimated,
	}, nil
}

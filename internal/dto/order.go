package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/petalhub/florist_backend/internal/core/domain"
	"github.com/petalhub/florist_backend/internal/core/pricing"
)

// CreateOrderItemRequest is one cart line at checkout.
type CreateOrderItemRequest struct {
	ProductID string `json:"productID" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest defines the data needed to place an order.
// Currency is the currency the customer is paying in; empty means INR.
type CreateOrderRequest struct {
	Items        []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Currency     string                   `json:"currency" binding:"omitempty,currencycode"`
	PromoCode    string                   `json:"promoCode"`
	ShippingFee  *float64                 `json:"shippingFee" binding:"omitempty,gte=0"`
	DeliveryDate *string                  `json:"deliveryDate" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateOrderStatusRequest moves an order through its lifecycle.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING CONFIRMED SHIPPED DELIVERED CANCELLED"`
}

// OrderItemResponse is a single order line in API responses.
type OrderItemResponse struct {
	OrderItemID     string          `json:"orderItemID"`
	ProductID       string          `json:"productID"`
	ProductName     string          `json:"productName"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	Quantity        int             `json:"quantity"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	FinalPrice      decimal.Decimal `json:"finalPrice"`
}

// OrderResponse is the API view of an order. DisplayTotal is the order total
// converted into the viewer's display currency and formatted; Estimated is
// true when that conversion relied on an approximate fallback rate.
type OrderResponse struct {
	OrderID      string              `json:"orderID"`
	UserID       string              `json:"userID"`
	Status       domain.OrderStatus  `json:"status"`
	Currency     string              `json:"currency"`
	CurrencyRate decimal.Decimal     `json:"currencyRate"`
	Items        []OrderItemResponse `json:"items"`
	ShippingFee  *decimal.Decimal    `json:"shippingFee,omitempty"`
	PromoCode    string              `json:"promoCode,omitempty"`
	Discount     decimal.Decimal     `json:"discount"`
	TotalAmount  decimal.Decimal     `json:"totalAmount"`
	DisplayTotal string              `json:"displayTotal"`
	Estimated    bool                `json:"estimated,omitempty"`
	DeliveryDate *string             `json:"deliveryDate,omitempty"`
	PaymentRef   string              `json:"paymentRef,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// ListOrdersResponse is a paginated order listing.
type ListOrdersResponse struct {
	Orders    []OrderResponse `json:"orders"`
	NextToken string          `json:"nextToken,omitempty"`
}

// ToOrderResponse converts a domain.Order into its API view, rendering the
// total in the viewer's display currency. A conversion failure degrades to
// the "N/A" placeholder; it never fails the whole response.
func ToOrderResponse(order *domain.Order, display pricing.DisplayContext) OrderResponse {
	items := make([]OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemResponse{
			OrderItemID:     item.OrderItemID,
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			UnitPrice:       item.UnitPrice,
			Quantity:        item.Quantity,
			DiscountPercent: item.DiscountPercent,
			FinalPrice:      item.FinalPrice,
		}
	}

	displayTotal := pricing.Placeholder
	estimated := false
	if conv, err := pricing.ConvertForDisplay(order.TotalAmount, order.Currency, order.CurrencyRate, display); err == nil {
		target := display.Currency
		if target == "" {
			target = pricing.BaseCurrencyCode
		}
		displayTotal = pricing.Format(conv.Amount, target)
		estimated = conv.Estimated
	}

	return OrderResponse{
		OrderID:      order.OrderID,
		UserID:       order.UserID,
		Status:       order.Status,
		Currency:     order.Currency,
		CurrencyRate: order.CurrencyRate,
		Items:        items,
		ShippingFee:  order.ShippingFee,
		PromoCode:    order.PromoCode,
		Discount:     order.Discount,
		TotalAmount:  order.TotalAmount,
		DisplayTotal: displayTotal,
		Estimated:    estimated,
		DeliveryDate: order.DeliveryDate,
		PaymentRef:   order.PaymentRef,
		CreatedAt:    order.CreatedAt,
	}
}

// ToListOrdersResponse converts a page of orders.
func ToListOrdersResponse(orders []domain.Order, nextToken string, display pricing.DisplayContext) ListOrdersResponse {
	res := ListOrdersResponse{
		Orders:    make([]OrderResponse, len(orders)),
		NextToken: nextToken,
	}
	for i := range orders {
		res.Orders[i] = ToOrderResponse(&orders[i], display)
	}
	return res
}

// InvoiceResponse is the GST invoice breakdown for an order. Invoices are
// always denominated in INR, whatever currency the order was paid in.
type InvoiceResponse struct {
	OrderID    string          `json:"orderID"`
	Currency   string          `json:"currency"` // always "INR"
	Subtotal   decimal.Decimal `json:"subtotal"`
	CGST       decimal.Decimal `json:"cgst"`
	SGST       decimal.Decimal `json:"sgst"`
	Shipping   decimal.Decimal `json:"shipping"`
	GrandTotal decimal.Decimal `json:"grandTotal"`

	SubtotalDisplay   string `json:"subtotalDisplay"`
	CGSTDisplay       string `json:"cgstDisplay"`
	SGSTDisplay       string `json:"sgstDisplay"`
	ShippingDisplay   string `json:"shippingDisplay"`
	GrandTotalDisplay string `json:"grandTotalDisplay"`

	Estimated bool `json:"estimated,omitempty"`
}

// ToInvoiceResponse renders invoice totals with INR formatting.
func ToInvoiceResponse(orderID string, totals pricing.InvoiceTotals) InvoiceResponse {
	return InvoiceResponse{
		OrderID:           orderID,
		Currency:          pricing.BaseCurrencyCode,
		Subtotal:          totals.Subtotal,
		CGST:              totals.CGST,
		SGST:              totals.SGST,
		Shipping:          totals.Shipping,
		GrandTotal:        totals.GrandTotal,
		SubtotalDisplay:   pricing.Format(totals.Subtotal, pricing.BaseCurrencyCode),
		CGSTDisplay:       pricing.Format(totals.CGST, pricing.BaseCurrencyCode),
		SGSTDisplay:       pricing.Format(totals.SGST, pricing.BaseCurrencyCode),
		ShippingDisplay:   pricing.Format(totals.Shipping, pricing.BaseCurrencyCode),
		GrandTotalDisplay: pricing.Format(totals.GrandTotal, pricing.BaseCurrencyCode),
		Estimated:         totals.Estimated,
	}
}

package domain

import "github.com/shopspring/decimal"

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// validStatusTransitions encodes the allowed order lifecycle moves.
var validStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderShipped, OrderCancelled},
	OrderShipped:   {OrderDelivered},
}

// CanTransitionTo reports whether an order in status s may move to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderItem is a single line of an order. All monetary fields are denominated
// in the order's Currency as captured at purchase time.
type OrderItem struct {
	OrderItemID     string          `json:"orderItemID"`
	ProductID       string          `json:"productID"`
	ProductName     string          `json:"productName"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	Quantity        int             `json:"quantity"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	FinalPrice      decimal.Decimal `json:"finalPrice"`
}

// Order captures an order together with its monetary snapshot. Currency and
// CurrencyRate are immutable after creation: CurrencyRate is the INR->Currency
// rate recorded at the moment of purchase and is what makes the INR-equivalent
// value reconstructable regardless of later rate movement.
type Order struct {
	OrderID      string      `json:"orderID"`
	UserID       string      `json:"userID"`
	Status       OrderStatus `json:"status"`
	Currency     string      `json:"currency"` // empty means INR (legacy orders)
	CurrencyRate decimal.Decimal `json:"currencyRate"` // zero means not recorded
	Items        []OrderItem `json:"items"`
	ShippingFee  *decimal.Decimal `json:"shippingFee,omitempty"` // nil means the default applies
	PromoCode    string          `json:"promoCode,omitempty"`
	Discount     decimal.Decimal `json:"discount"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	DeliveryDate *string         `json:"deliveryDate,omitempty"` // YYYY-MM-DD, as chosen at checkout
	PaymentRef   string          `json:"paymentRef,omitempty"`
	AuditFields
}

package dto

import "github.com/petalhub/florist_backend/internal/core/ports/providers"

// PaymentIntentResponse returns the gateway handle for a created payment.
// AmountMinor is in the smallest currency unit (paise, cents), as required by
// the payment processor.
type PaymentIntentResponse struct {
	PaymentIntentID string `json:"paymentIntentID"`
	ClientSecret    string `json:"clientSecret"`
	AmountMinor     int64  `json:"amountMinor"`
	Currency        string `json:"currency"`
	Status          string `json:"status"`
}

// ToPaymentIntentResponse converts a provider payment intent to its API view.
func ToPaymentIntentResponse(pi *providers.PaymentIntent) PaymentIntentResponse {
	return PaymentIntentResponse{
		PaymentIntentID: pi.ID,
		ClientSecret:    pi.ClientSecret,
		AmountMinor:     pi.AmountMinor,
		Currency:        pi.Currency,
		Status:          pi.Status,
	}
}

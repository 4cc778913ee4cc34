package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/petalhub/florist_backend/internal/core/domain"
)

// CreatePromoCodeRequest defines the data needed to create a promo code.
type CreatePromoCodeRequest struct {
	Code            string    `json:"code" binding:"required,uppercase,min=3,max=32"`
	DiscountPercent float64   `json:"discountPercent" binding:"required,gt=0,lte=100"`
	MaxDiscount     float64   `json:"maxDiscount" binding:"gte=0"`
	ExpiresAt       time.Time `json:"expiresAt" binding:"required"`
	UsageLimit      int       `json:"usageLimit" binding:"gte=0"`
}

// ValidatePromoRequest checks a code against a cart subtotal (INR).
type ValidatePromoRequest struct {
	Code     string  `json:"code" binding:"required"`
	Subtotal float64 `json:"subtotal" binding:"required,gt=0"`
}

// ValidatePromoResponse reports the discount a code would yield.
type ValidatePromoResponse struct {
	Valid    bool            `json:"valid"`
	Discount decimal.Decimal `json:"discount"`
	Message  string          `json:"message,omitempty"`
}

// PromoCodeResponse is the API view of a promo code.
type PromoCodeResponse struct {
	PromoCodeID     string          `json:"promoCodeID"`
	Code            string          `json:"code"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	MaxDiscount     decimal.Decimal `json:"maxDiscount"`
	ExpiresAt       time.Time       `json:"expiresAt"`
	UsageLimit      int             `json:"usageLimit"`
	TimesUsed       int             `json:"timesUsed"`
	IsActive        bool            `json:"isActive"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ToPromoCodeResponse converts a domain.PromoCode to its API view.
func ToPromoCodeResponse(p *domain.PromoCode) PromoCodeResponse {
	return PromoCodeResponse{
		PromoCodeID:     p.PromoCodeID,
		Code:            p.Code,
		DiscountPercent: p.DiscountPercent,
		MaxDiscount:     p.MaxDiscount,
		ExpiresAt:       p.ExpiresAt,
		UsageLimit:      p.UsageLimit,
		TimesUsed:       p.TimesUsed,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
	}
}

// ToListPromoCodeResponse converts a slice of promo codes.
func ToListPromoCodeResponse(promos []domain.PromoCode) []PromoCodeResponse {
	res := make([]PromoCodeResponse, len(promos))
	for i := range promos {
		res[i] = ToPromoCodeResponse(&promos[i])
	}
	return res
}

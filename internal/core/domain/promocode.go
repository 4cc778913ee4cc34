package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PromoCode is a percentage discount applied at checkout.
type PromoCode struct {
	PromoCodeID     string          `json:"promoCodeID"`
	Code            string          `json:"code"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	// MaxDiscount caps the absolute discount in INR. Zero means uncapped.
	MaxDiscount decimal.Decimal `json:"maxDiscount"`
	ExpiresAt   time.Time       `json:"expiresAt"`
	UsageLimit  int             `json:"usageLimit"` // zero means unlimited
	TimesUsed   int             `json:"timesUsed"`
	IsActive    bool            `json:"isActive"`
	AuditFields
}

// IsUsable reports whether the promo can still be applied at the given time.
func (p PromoCode) IsUsable(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if now.After(p.ExpiresAt) {
		return false
	}
	if p.UsageLimit > 0 && p.TimesUsed >= p.UsageLimit {
		return false
	}
	return true
}

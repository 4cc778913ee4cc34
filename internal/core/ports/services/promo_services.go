package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/petalhub/florist_backend/internal/core/domain"
	"github.com/petalhub/florist_backend/internal/dto"
)

// PromoReaderSvc defines read operations for promo codes
type PromoReaderSvc interface {
	// ListPromoCodes retrieves all promo codes.
	ListPromoCodes(ctx context.Context) ([]domain.PromoCode, error)

	// ValidatePromo reports the discount a code would yield on an INR subtotal
	// without consuming a use.
	ValidatePromo(ctx context.Context, code string, subtotal decimal.Decimal) (decimal.Decimal, *domain.PromoCode, error)
}

// PromoWriterSvc defines write operations for promo codes
type PromoWriterSvc interface {
	// CreatePromoCode persists a new promo code.
	CreatePromoCode(ctx context.Context, req dto.CreatePromoCodeRequest, creatorUserID string) (*domain.PromoCode, error)

	// ApplyPromo validates a code against a subtotal and consumes one use.
	ApplyPromo(ctx context.Context, code string, subtotal decimal.Decimal) (decimal.Decimal, *domain.PromoCode, error)

	// DeactivatePromoCode turns a promo off.
	DeactivatePromoCode(ctx context.Context, promoCodeID string, updaterUserID string) error
}

// PromoSvcFacade combines all promo-code service interfaces
type PromoSvcFacade interface {
	PromoReaderSvc
	PromoWriterSvc
}

package repositories

import (
	"context"

	"github.com/petalhub/florist_backend/internal/core/domain"
)

// PromoCodeReader defines read operations for promo codes
type PromoCodeReader interface {
	// FindPromoCodeByCode retrieves a promo by its public code.
	FindPromoCodeByCode(ctx context.Context, code string) (*domain.PromoCode, error)

	// ListPromoCodes retrieves all promo codes.
	ListPromoCodes(ctx context.Context) ([]domain.PromoCode, error)
}

// PromoCodeWriter defines write operations for promo codes
type PromoCodeWriter interface {
	// SavePromoCode persists a new promo code.
	SavePromoCode(ctx context.Context, promo domain.PromoCode) error

	// IncrementUsage bumps the usage counter after a successful application.
	IncrementUsage(ctx context.Context, promoCodeID string) error

	// DeactivatePromoCode turns a promo off without deleting it.
	DeactivatePromoCode(ctx context.Context, promoCodeID string, updatedBy string) error
}

// PromoCodeRepositoryFacade combines all promo-code repository interfaces
type PromoCodeRepositoryFacade interface {
	PromoCodeReader
	PromoCodeWriter
}

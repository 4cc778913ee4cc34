package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/petalhub/florist_backend/internal/apperrors"
	"github.com/petalhub/florist_backend/internal/core/domain"
	portsrepo "github.com/petalhub/florist_backend/internal/core/ports/repositories"
	portssvc "github.com/petalhub/florist_backend/internal/core/ports/services"
	"github.com/petalhub/florist_backend/internal/dto"
)

var oneHundred = decimal.NewFromInt(100)

type promoService struct {
	BaseService
	promoRepo portsrepo.PromoCodeRepositoryFacade
}

// NewPromoService creates a new instance of promoService.
func NewPromoService(promoRepo portsrepo.PromoCodeRepositoryFacade) portssvc.PromoSvcFacade {
	return &promoService{promoRepo: promoRepo}
}

func (s *promoService) CreatePromoCode(ctx context.Context, req dto.CreatePromoCodeRequest, creatorUserID string) (*domain.PromoCode, error) {
	if !req.ExpiresAt.After(time.Now()) {
		return nil, fmt.Errorf("%w: expiry must be in the future", apperrors.ErrValidation)
	}

	now := time.Now()
	promo := domain.PromoCode{
		PromoCodeID:     uuid.NewString(),
		Code:            strings.ToUpper(req.Code),
		DiscountPercent: decimal.NewFromFloat(req.DiscountPercent),
		MaxDiscount:     decimal.NewFromFloat(req.MaxDiscount),
		ExpiresAt:       req.ExpiresAt,
		UsageLimit:      req.UsageLimit,
		TimesUsed:       0,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.promoRepo.SavePromoCode(ctx, promo); err != nil {
		s.LogError(ctx, err, "failed to save promo code", "code", promo.Code)
		return nil, fmt.Errorf("failed to create promo code: %w", err)
	}

	return &promo, nil
}

func (s *promoService) ListPromoCodes(ctx context.Context) ([]domain.PromoCode, error) {
	promos, err := s.promoRepo.ListPromoCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list promo codes: %w", err)
	}
	if promos == nil {
		return []domain.PromoCode{}, nil
	}
	return promos, nil
}

// ValidatePromo reports the discount a code would yield on an INR subtotal
// without consuming a use.
func (s *promoService) ValidatePromo(ctx context.Context, code string, subtotal decimal.Decimal) (decimal.Decimal, *domain.PromoCode, error) {
	promo, err := s.lookupUsable(ctx, code)
	if err != nil {
		return decimal.Zero, nil, err
	}
	return discountFor(promo, subtotal), promo, nil
}

// ApplyPromo validates a code against a subtotal and consumes one use.
func (s *promoService) ApplyPromo(ctx context.Context, code string, subtotal decimal.Decimal) (decimal.Decimal, *domain.PromoCode, error) {
	promo, err := s.lookupUsable(ctx, code)
	if err != nil {
		return decimal.Zero, nil, err
	}

	if err := s.promoRepo.IncrementUsage(ctx, promo.PromoCodeID); err != nil {
		s.LogError(ctx, err, "failed to increment promo usage", "promo_code_id", promo.PromoCodeID)
		return decimal.Zero, nil, fmt.Errorf("failed to apply promo code: %w", err)
	}
	promo.TimesUsed++

	return discountFor(promo, subtotal), promo, nil
}

func (s *promoService) DeactivatePromoCode(ctx context.Context, promoCodeID string, updaterUserID string) error {
	if err := s.promoRepo.DeactivatePromoCode(ctx, promoCodeID, updaterUserID); err != nil {
		return fmt.Errorf("failed to deactivate promo code %s: %w", promoCodeID, err)
	}
	return nil
}

func (s *promoService) lookupUsable(ctx context.Context, code string) (*domain.PromoCode, error) {
	promo, err := s.promoRepo.FindPromoCodeByCode(ctx, strings.ToUpper(code))
	if err != nil {
		return nil, fmt.Errorf("failed to look up promo code: %w", err)
	}
	if !promo.IsUsable(time.Now()) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrPromoNotApplicable, promo.Code)
	}
	return promo, nil
}

// discountFor computes the INR discount a promo yields on a subtotal,
// honoring the absolute cap when one is set.
func discountFor(promo *domain.PromoCode, subtotal decimal.Decimal) decimal.Decimal {
	discount := subtotal.Mul(promo.DiscountPercent).Div(oneHundred).Round(2)
	if promo.MaxDiscount.IsPositive() && discount.GreaterThan(promo.MaxDiscount) {
		discount = promo.MaxDiscount
	}
	return discount
}

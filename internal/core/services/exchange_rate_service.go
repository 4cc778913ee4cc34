package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/petalhub/florist_backend/internal/apperrors"
	"github.com/petalhub/florist_backend/internal/core/domain"
	"github.com/petalhub/florist_backend/internal/core/pricing"
	portsprov "github.com/petalhub/florist_backend/internal/core/ports/providers"
	portsrepo "github.com/petalhub/florist_backend/internal/core/ports/repositories"
	portssvc "github.com/petalhub/florist_backend/internal/core/ports/services"
	"github.com/petalhub/florist_backend/internal/dto"
)

// rateFreshness is how old a stored rate may be before the live source is
// consulted instead.
const rateFreshness = 24 * time.Hour

type exchangeRateService struct {
	BaseService
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
	cache        portsprov.RateCache
	live         portsprov.LiveRateSource
	cacheTTL     time.Duration
}

// NewExchangeRateService creates a new instance of exchangeRateService.
// cache and live may be nil; resolution then falls through to stored and
// approximate rates.
func NewExchangeRateService(
	rateRepo portsrepo.ExchangeRateRepositoryFacade,
	currencyRepo portsrepo.CurrencyReader,
	cache portsprov.RateCache,
	live portsprov.LiveRateSource,
	cacheTTL time.Duration,
) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{
		rateRepo:     rateRepo,
		currencyRepo: currencyRepo,
		cache:        cache,
		live:         live,
		cacheTTL:     cacheTTL,
	}
}

func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	if req.FromCurrencyCode == req.ToCurrencyCode {
		return nil, fmt.Errorf("%w: from and to currency must differ", apperrors.ErrValidation)
	}
	if !req.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: rate must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: req.FromCurrencyCode,
		ToCurrencyCode:   req.ToCurrencyCode,
		Rate:             req.Rate,
		DateEffective:    req.DateEffective,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "failed to save exchange rate", "from", req.FromCurrencyCode, "to", req.ToCurrencyCode)
		return nil, fmt.Errorf("failed to create exchange rate: %w", err)
	}

	// A newly stored INR rate supersedes whatever the cache holds.
	if s.cache != nil && rate.FromCurrencyCode == pricing.BaseCurrencyCode {
		if err := s.cache.SetRate(ctx, rate.ToCurrencyCode, rate.Rate, s.cacheTTL); err != nil {
			s.LogWarn(ctx, "failed to refresh rate cache", "currency", rate.ToCurrencyCode, "error", err.Error())
		}
	}

	return &rate, nil
}

func (s *exchangeRateService) GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindExchangeRate(ctx, fromCode, toCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate %s->%s: %w", fromCode, toCode, err)
	}
	return rate, nil
}

// ResolveDisplayContext resolves the live INR->currency rate for a viewer's
// selected display currency. Sources are tried in order of trust: cache,
// fresh stored rate, live source, stale stored rate, and finally the
// currency's approximate rate. The resolved rate is cached for later requests.
func (s *exchangeRateService) ResolveDisplayContext(ctx context.Context, currencyCode string) (pricing.DisplayContext, error) {
	if currencyCode == "" || currencyCode == pricing.BaseCurrencyCode {
		return pricing.DisplayINR, nil
	}

	if s.cache != nil {
		rate, ok, err := s.cache.GetRate(ctx, currencyCode)
		if err != nil {
			s.LogWarn(ctx, "rate cache lookup failed", "currency", currencyCode, "error", err.Error())
		} else if ok {
			return pricing.DisplayContext{Currency: currencyCode, Rate: rate}, nil
		}
	}

	stored, err := s.rateRepo.FindExchangeRate(ctx, pricing.BaseCurrencyCode, currencyCode)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return pricing.DisplayContext{}, fmt.Errorf("failed to look up stored rate for %s: %w", currencyCode, err)
	}
	if stored != nil && time.Since(stored.DateEffective) < rateFreshness {
		s.cacheRate(ctx, currencyCode, stored.Rate)
		return pricing.DisplayContext{Currency: currencyCode, Rate: stored.Rate}, nil
	}

	if s.live != nil {
		rate, liveErr := s.live.FetchRate(ctx, pricing.BaseCurrencyCode, currencyCode)
		if liveErr == nil {
			s.cacheRate(ctx, currencyCode, rate)
			return pricing.DisplayContext{Currency: currencyCode, Rate: rate}, nil
		}
		s.LogWarn(ctx, "live rate fetch failed", "currency", currencyCode, "error", liveErr.Error())
	}

	// A stale stored rate beats an approximation.
	if stored != nil {
		s.LogWarn(ctx, "using stale stored rate", "currency", currencyCode, "date_effective", stored.DateEffective)
		return pricing.DisplayContext{Currency: currencyCode, Rate: stored.Rate}, nil
	}

	currency, currErr := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if currErr == nil && currency.ApproxRatePerINR.IsPositive() {
		s.LogWarn(ctx, "falling back to approximate rate", "currency", currencyCode)
		return pricing.DisplayContext{Currency: currencyCode, Rate: currency.ApproxRatePerINR}, nil
	}

	return pricing.DisplayContext{}, fmt.Errorf("%w: no rate source for %s", apperrors.ErrRateUnavailable, currencyCode)
}

func (s *exchangeRateService) cacheRate(ctx context.Context, currencyCode string, rate decimal.Decimal) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetRate(ctx, currencyCode, rate, s.cacheTTL); err != nil {
		s.LogWarn(ctx, "failed to cache rate", "currency", currencyCode, "error", err.Error())
	}
}

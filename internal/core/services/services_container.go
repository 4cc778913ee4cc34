package services

import (
	portsprov "github.com/petalhub/florist_backend/internal/core/ports/providers"
	portsrepo "github.com/petalhub/florist_backend/internal/core/ports/repositories"
	portssvc "github.com/petalhub/florist_backend/internal/core/ports/services"
	"github.com/petalhub/florist_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	rateCache portsprov.RateCache,
	liveRates portsprov.LiveRateSource,
	paymentProvider portsprov.PaymentProvider,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, repos.CurrencyRepo, rateCache, liveRates, cfg.RateCacheTTL)
	container.Product = NewProductService(repos.ProductRepo)
	container.Promo = NewPromoService(repos.PromoRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Notification = NewNotificationService(repos.NotificationRepo)

	// Order service sits on top of the pricing-aware services.
	container.Order = NewOrderService(repos.OrderRepo, repos.ProductRepo, container.Promo, container.ExchangeRate, container.Notification)
	container.Reporting = NewReportingService(repos.OrderRepo, repos.ReportingRepo)
	container.Payment = NewPaymentService(repos.OrderRepo, paymentProvider)

	container.Token = NewTokenService(cfg)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	return container
}

// Compile-time checks that the implementations satisfy their facades.
var (
	_ portssvc.OrderSvcFacade        = (*orderService)(nil)
	_ portssvc.ProductSvcFacade      = (*productService)(nil)
	_ portssvc.PromoSvcFacade        = (*promoService)(nil)
	_ portssvc.CurrencySvcFacade     = (*currencyService)(nil)
	_ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)
	_ portssvc.UserSvcFacade         = (*userService)(nil)
	_ portssvc.NotificationSvcFacade = (*notificationService)(nil)
	_ portssvc.ReportingSvcFacade    = (*reportingService)(nil)
	_ portssvc.PaymentSvcFacade      = (*paymentService)(nil)
)

package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Order        OrderSvcFacade
	Product      ProductSvcFacade
	Promo        PromoSvcFacade
	Currency     CurrencySvcFacade
	ExchangeRate ExchangeRateSvcFacade
	User         UserSvcFacade
	Token        TokenSvcFacade
	GoogleOAuth  GoogleOAuthSvcFacade
	Notification NotificationSvcFacade
	Reporting    ReportingSvcFacade
	Payment      PaymentSvcFacade
}

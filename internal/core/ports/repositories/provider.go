package repositories

// RepositoryProvider groups all repository facades so wiring code can pass
// them around as one value.
type RepositoryProvider struct {
	OrderRepo        OrderRepositoryFacade
	ProductRepo      ProductRepositoryFacade
	PromoRepo        PromoCodeRepositoryFacade
	CurrencyRepo     CurrencyRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
	UserRepo         UserRepositoryFacade
	NotificationRepo NotificationRepositoryFacade
	ReportingRepo    ReportingReader
}

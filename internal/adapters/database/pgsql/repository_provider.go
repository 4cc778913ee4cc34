package pgsql

import (
	portsrepo "github.com/petalhub/florist_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository onto one pool.
func NewRepositoryProvider(pool PGXPool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		OrderRepo:        NewPgxOrderRepository(pool),
		ProductRepo:      NewPgxProductRepository(pool),
		PromoRepo:        NewPgxPromoCodeRepository(pool),
		CurrencyRepo:     NewPgxCurrencyRepository(pool),
		ExchangeRateRepo: NewPgxExchangeRateRepository(pool),
		UserRepo:         NewPgxUserRepository(pool),
		NotificationRepo: NewPgxNotificationRepository(pool),
		ReportingRepo:    NewPgxReportingRepository(pool),
	}
}

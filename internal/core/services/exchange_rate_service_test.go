package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/petalhub/florist_backend/internal/apperrors"
	"github.com/petalhub/florist_backend/internal/core/domain"
	"github.com/petalhub/florist_backend/internal/core/pricing"
	portssvc "github.com/petalhub/florist_backend/internal/core/ports/services"
	"github.com/petalhub/florist_backend/internal/core/services"
	"github.com/petalhub/florist_backend/internal/dto"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Mock RateCache ---
type MockRateCache struct {
	mock.Mock
}

func (m *MockRateCache) GetRate(ctx context.Context, currencyCode string) (decimal.Decimal, bool, error) {
	args := m.Called(ctx, currencyCode)
	return args.Get(0).(decimal.Decimal), args.Bool(1), args.Error(2)
}

func (m *MockRateCache) SetRate(ctx context.Context, currencyCode string, rate decimal.Decimal, ttl time.Duration) error {
	args := m.Called(ctx, currencyCode, rate, ttl)
	return args.Error(0)
}

// --- Mock LiveRateSource ---
type MockLiveRateSource struct {
	mock.Mock
}

func (m *MockLiveRateSource) FetchRate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error) {
	args := m.Called(ctx, fromCode, toCode)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite ---
type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRateRepo     *MockExchangeRateRepository
	mockCurrencyRepo *MockCurrencyRepository
	mockCache        *MockRateCache
	mockLive         *MockLiveRateSource
	service          portssvc.ExchangeRateSvcFacade
}

const testCacheTTL = 15 * time.Minute

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.mockCache = new(MockRateCache)
	suite.mockLive = new(MockLiveRateSource)
	suite.service = services.NewExchangeRateService(suite.mockRateRepo, suite.mockCurrencyRepo, suite.mockCache, suite.mockLive, testCacheTTL)
}

func (suite *ExchangeRateServiceTestSuite) TestResolveDisplayContext_INRShortCircuits() {
	ctx := context.Background()

	display, err := suite.service.ResolveDisplayContext(ctx, "INR")

	suite.Require().NoError(err)
	suite.Equal(pricing.DisplayINR, display)

	display, err = suite.service.ResolveDisplayContext(ctx, "")
	suite.Require().NoError(err)
	suite.Equal(pricing.DisplayINR, display)

	suite.mockCache.AssertNotCalled(suite.T(), "GetRate", mock.Anything, mock.Anything)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindExchangeRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestResolveDisplayContext_CacheHit() {
	ctx := context.Background()
	cached := decimal.RequireFromString("0.0117")

	suite.mockCache.On("GetRate", ctx, "USD").Return(cached, true, nil).Once()

	display, err := suite.service.ResolveDisplayContext(ctx, "USD")

	suite.Require().NoError(err)
	suite.Equal("USD", display.Currency)
	suite.True(display.Rate.Equal(cached))
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindExchangeRate", mock.Anything, mock.Anything, mock.Anything)
	suite.mockLive.AssertNotCalled(suite.T(), "FetchRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestResolveDisplayContext_FreshStoredRate() {
	ctx := context.Background()
	stored := &domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: "INR",
		ToCurrencyCode:   "USD",
		Rate:             decimal.RequireFromString("0.0116"),
		DateEffective:    time.Now().Add(-time.Hour),
	}

	suite.mockCache.On("GetRate", ctx, "USD").Return(decimal.Zero, false, nil).Once()
	suite.mockRateRepo.On("FindExchangeRate", ctx, "INR", "USD").Return(stored, nil).Once()
	suite.mockCache.On("SetRate", ctx, "USD", stored.Rate, testCacheTTL).Return(nil).Once()

	display, err := suite.service.ResolveDisplayContext(ctx, "USD")

	suite.Require().NoError(err)
	suite.True(display.Rate.Equal(stored.Rate))
	suite.mockLive.AssertNotCalled(suite.T(), "FetchRate", mock.Anything, mock.Anything, mock.Anything)
	suite.mockCache.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestResolveDisplayContext_LiveFetchWhenNoStoredRate() {
	ctx := context.Background()
	liveRate := decimal.RequireFromString("0.0118")

	suite.mockCache.On("GetRate", ctx, "USD").Return(decimal.Zero, false, nil).Once()
	suite.mockRateRepo.On("FindExchangeRate", ctx, "INR", "USD").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLive.On("FetchRate", ctx, "INR", "USD").Return(liveRate, nil).Once()
	suite.mockCache.On("SetRate", ctx, "USD", liveRate, testCacheTTL).Return(nil).Once()

	display, err := suite.service.ResolveDisplayContext(ctx, "USD")

	suite.Require().NoError(err)
	suite.True(display.Rate.Equal(liveRate))
	suite.mockCache.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestResolveDisplayContext_StaleStoredBeatsApprox() {
	ctx := context.Background()
	stored := &domain.ExchangeRate{
		FromCurrencyCode: "INR",
		ToCurrencyCode:   "USD",
		Rate:             decimal.RequireFromString("0.0115"),
		DateEffective:    time.Now().Add(-72 * time.Hour),
	}

	suite.mockCache.On("GetRate", ctx, "USD").Return(decimal.Zero, false, nil).Once()
	suite.mockRateRepo.On("FindExchangeRate", ctx, "INR", "USD").Return(stored, nil).Once()
	suite.mockLive.On("FetchRate", ctx, "INR", "USD").Return(decimal.Zero, assert.AnError).Once()

	display, err := suite.service.ResolveDisplayContext(ctx, "USD")

	suite.Require().NoError(err)
	suite.True(display.Rate.Equal(stored.Rate))
	suite.mockCurrencyRepo.AssertNotCalled(suite.T(), "FindCurrencyByCode", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestResolveDisplayContext_ApproxFallback() {
	ctx := context.Background()
	currency := &domain.Currency{
		CurrencyCode:     "USD",
		ApproxRatePerINR: decimal.RequireFromString("0.01162"),
	}

	suite.mockCache.On("GetRate", ctx, "USD").Return(decimal.Zero, false, nil).Once()
	suite.mockRateRepo.On("FindExchangeRate", ctx, "INR", "USD").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLive.On("FetchRate", ctx, "INR", "USD").Return(decimal.Zero, assert.AnError).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(currency, nil).Once()

	display, err := suite.service.ResolveDisplayContext(ctx, "USD")

	suite.Require().NoError(err)
	suite.True(display.Rate.Equal(currency.ApproxRatePerINR))
}

func (suite *ExchangeRateServiceTestSuite) TestResolveDisplayContext_Unavailable() {
	ctx := context.Background()

	suite.mockCache.On("GetRate", ctx, "XYZ").Return(decimal.Zero, false, nil).Once()
	suite.mockRateRepo.On("FindExchangeRate", ctx, "INR", "XYZ").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLive.On("FetchRate", ctx, "INR", "XYZ").Return(decimal.Zero, assert.AnError).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "XYZ").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ResolveDisplayContext(ctx, "XYZ")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_SameCurrency() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{
		FromCurrencyCode: "INR",
		ToCurrencyCode:   "INR",
		Rate:             decimal.NewFromInt(1),
		DateEffective:    time.Now(),
	}

	rate, err := suite.service.CreateExchangeRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_NonPositiveRate() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{
		FromCurrencyCode: "INR",
		ToCurrencyCode:   "USD",
		Rate:             decimal.Zero,
		DateEffective:    time.Now(),
	}

	rate, err := suite.service.CreateExchangeRate(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_SavesAndRefreshesCache() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateExchangeRateRequest{
		FromCurrencyCode: "INR",
		ToCurrencyCode:   "USD",
		Rate:             decimal.RequireFromString("0.0119"),
		DateEffective:    time.Now(),
	}

	suite.mockRateRepo.On("SaveExchangeRate", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.FromCurrencyCode == "INR" && r.ToCurrencyCode == "USD" && r.Rate.Equal(req.Rate) && r.CreatedBy == creatorUserID
	})).Return(nil).Once()
	suite.mockCache.On("SetRate", ctx, "USD", req.Rate, testCacheTTL).Return(nil).Once()

	rate, err := suite.service.CreateExchangeRate(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.NotEmpty(rate.ExchangeRateID)
	suite.mockRateRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}

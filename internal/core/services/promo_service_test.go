package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/petalhub/florist_backend/internal/apperrors"
	"github.com/petalhub/florist_backend/internal/core/domain"
	portssvc "github.com/petalhub/florist_backend/internal/core/ports/services"
	"github.com/petalhub/florist_backend/internal/core/services"
	"github.com/petalhub/florist_backend/internal/dto"
)

// --- Mock PromoCodeRepository ---
type MockPromoCodeRepository struct {
	mock.Mock
}

func (m *MockPromoCodeRepository) FindPromoCodeByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PromoCode), args.Error(1)
}

func (m *MockPromoCodeRepository) ListPromoCodes(ctx context.Context) ([]domain.PromoCode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PromoCode), args.Error(1)
}

func (m *MockPromoCodeRepository) SavePromoCode(ctx context.Context, promo domain.PromoCode) error {
	args := m.Called(ctx, promo)
	return args.Error(0)
}

func (m *MockPromoCodeRepository) IncrementUsage(ctx context.Context, promoCodeID string) error {
	args := m.Called(ctx, promoCodeID)
	return args.Error(0)
}

func (m *MockPromoCodeRepository) DeactivatePromoCode(ctx context.Context, promoCodeID string, updatedBy string) error {
	args := m.Called(ctx, promoCodeID, updatedBy)
	return args.Error(0)
}

// --- Test Suite ---
type PromoServiceTestSuite struct {
	suite.Suite
	mockRepo *MockPromoCodeRepository
	service  portssvc.PromoSvcFacade
}

func (suite *PromoServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPromoCodeRepository)
	suite.service = services.NewPromoService(suite.mockRepo)
}

func usablePromo(percent, maxDiscount string) *domain.PromoCode {
	return &domain.PromoCode{
		PromoCodeID:     uuid.NewString(),
		Code:            "BLOOM10",
		DiscountPercent: decimal.RequireFromString(percent),
		MaxDiscount:     decimal.RequireFromString(maxDiscount),
		ExpiresAt:       time.Now().Add(24 * time.Hour),
		UsageLimit:      100,
		TimesUsed:       5,
		IsActive:        true,
	}
}

func (suite *PromoServiceTestSuite) TestValidatePromo_Success() {
	ctx := context.Background()
	promo := usablePromo("10", "0")

	suite.mockRepo.On("FindPromoCodeByCode", ctx, "BLOOM10").Return(promo, nil).Once()

	discount, got, err := suite.service.ValidatePromo(ctx, "bloom10", decimal.NewFromInt(1000))

	suite.Require().NoError(err)
	suite.Require().NotNil(got)
	suite.True(discount.Equal(decimal.NewFromInt(100)), "got %s", discount)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PromoServiceTestSuite) TestValidatePromo_CapApplies() {
	ctx := context.Background()
	promo := usablePromo("10", "50")

	suite.mockRepo.On("FindPromoCodeByCode", ctx, "BLOOM10").Return(promo, nil).Once()

	discount, _, err := suite.service.ValidatePromo(ctx, "BLOOM10", decimal.NewFromInt(1000))

	suite.Require().NoError(err)
	suite.True(discount.Equal(decimal.NewFromInt(50)), "got %s", discount)
}

func (suite *PromoServiceTestSuite) TestValidatePromo_Expired() {
	ctx := context.Background()
	promo := usablePromo("10", "0")
	promo.ExpiresAt = time.Now().Add(-time.Hour)

	suite.mockRepo.On("FindPromoCodeByCode", ctx, "BLOOM10").Return(promo, nil).Once()

	_, _, err := suite.service.ValidatePromo(ctx, "BLOOM10", decimal.NewFromInt(1000))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPromoNotApplicable)
}

func (suite *PromoServiceTestSuite) TestValidatePromo_UsageExhausted() {
	ctx := context.Background()
	promo := usablePromo("10", "0")
	promo.UsageLimit = 5
	promo.TimesUsed = 5

	suite.mockRepo.On("FindPromoCodeByCode", ctx, "BLOOM10").Return(promo, nil).Once()

	_, _, err := suite.service.ValidatePromo(ctx, "BLOOM10", decimal.NewFromInt(1000))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPromoNotApplicable)
}

func (suite *PromoServiceTestSuite) TestValidatePromo_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindPromoCodeByCode", ctx, "NOPE").Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.ValidatePromo(ctx, "NOPE", decimal.NewFromInt(1000))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PromoServiceTestSuite) TestApplyPromo_ConsumesUse() {
	ctx := context.Background()
	promo := usablePromo("25", "0")

	suite.mockRepo.On("FindPromoCodeByCode", ctx, "BLOOM10").Return(promo, nil).Once()
	suite.mockRepo.On("IncrementUsage", ctx, promo.PromoCodeID).Return(nil).Once()

	discount, got, err := suite.service.ApplyPromo(ctx, "BLOOM10", decimal.NewFromInt(400))

	suite.Require().NoError(err)
	suite.True(discount.Equal(decimal.NewFromInt(100)), "got %s", discount)
	suite.Equal(6, got.TimesUsed)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PromoServiceTestSuite) TestApplyPromo_ExpiredDoesNotConsume() {
	ctx := context.Background()
	promo := usablePromo("25", "0")
	promo.IsActive = false

	suite.mockRepo.On("FindPromoCodeByCode", ctx, "BLOOM10").Return(promo, nil).Once()

	_, _, err := suite.service.ApplyPromo(ctx, "BLOOM10", decimal.NewFromInt(400))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPromoNotApplicable)
	suite.mockRepo.AssertNotCalled(suite.T(), "IncrementUsage", mock.Anything, mock.Anything)
}

func (suite *PromoServiceTestSuite) TestCreatePromoCode_ExpiryInPast() {
	ctx := context.Background()
	req := dto.CreatePromoCodeRequest{
		Code:            "OLD",
		DiscountPercent: 10,
		ExpiresAt:       time.Now().Add(-time.Hour),
	}

	promo, err := suite.service.CreatePromoCode(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(promo)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePromoCode", mock.Anything, mock.Anything)
}

func (suite *PromoServiceTestSuite) TestCreatePromoCode_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreatePromoCodeRequest{
		Code:            "spring20",
		DiscountPercent: 20,
		MaxDiscount:     500,
		ExpiresAt:       time.Now().Add(30 * 24 * time.Hour),
		UsageLimit:      50,
	}

	suite.mockRepo.On("SavePromoCode", ctx, mock.MatchedBy(func(p domain.PromoCode) bool {
		return p.Code == "SPRING20" && p.IsActive && p.TimesUsed == 0 && p.CreatedBy == creatorUserID
	})).Return(nil).Once()

	promo, err := suite.service.CreatePromoCode(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(promo)
	suite.Equal("SPRING20", promo.Code)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestPromoServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PromoServiceTestSuite))
}

package services_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/petalhub/florist_backend/internal/apperrors"
	"github.com/petalhub/florist_backend/internal/core/domain"
	"github.com/petalhub/florist_backend/internal/core/pricing"
	portsrepo "github.com/petalhub/florist_backend/internal/core/ports/repositories"
	portssvc "github.com/petalhub/florist_backend/internal/core/ports/services"
	"github.com/petalhub/florist_backend/internal/core/services"
	"github.com/petalhub/florist_backend/internal/dto"
)

// --- Mock OrderRepository ---
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListOrders(ctx context.Context, filter portsrepo.OrderListFilter, limit int, nextToken string) ([]domain.Order, string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.Order), args.String(1), args.Error(2)
}

func (m *MockOrderRepository) ListOrdersCreatedBetween(ctx context.Context, from, to time.Time) ([]domain.Order, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, updatedBy string) error {
	args := m.Called(ctx, orderID, status, updatedBy)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateOrderPaymentRef(ctx context.Context, orderID string, paymentRef string, updatedBy string) error {
	args := m.Called(ctx, orderID, paymentRef, updatedBy)
	return args.Error(0)
}

// --- Mock ProductRepository ---
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, category string, activeOnly bool, limit int, nextToken string) ([]domain.Product, string, error) {
	args := m.Called(ctx, category, activeOnly, limit, nextToken)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.Product), args.String(1), args.Error(2)
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DecrementStock(ctx context.Context, productID string, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

// --- Mock PromoWriterSvc ---
type MockPromoSvc struct {
	mock.Mock
}

func (m *MockPromoSvc) CreatePromoCode(ctx context.Context, req dto.CreatePromoCodeRequest, creatorUserID string) (*domain.PromoCode, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PromoCode), args.Error(1)
}

func (m *MockPromoSvc) ApplyPromo(ctx context.Context, code string, subtotal decimal.Decimal) (decimal.Decimal, *domain.PromoCode, error) {
	args := m.Called(ctx, code, subtotal)
	if args.Get(1) == nil {
		return args.Get(0).(decimal.Decimal), nil, args.Error(2)
	}
	return args.Get(0).(decimal.Decimal), args.Get(1).(*domain.PromoCode), args.Error(2)
}

func (m *MockPromoSvc) DeactivatePromoCode(ctx context.Context, promoCodeID string, updaterUserID string) error {
	args := m.Called(ctx, promoCodeID, updaterUserID)
	return args.Error(0)
}

// --- Mock ExchangeRateReaderSvc ---
type MockRateSvc struct {
	mock.Mock
}

func (m *MockRateSvc) GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockRateSvc) ResolveDisplayContext(ctx context.Context, currencyCode string) (pricing.DisplayContext, error) {
	args := m.Called(ctx, currencyCode)
	return args.Get(0).(pricing.DisplayContext), args.Error(1)
}

// --- Mock NotificationSvc ---
type MockNotificationSvc struct {
	mock.Mock
}

func (m *MockNotificationSvc) ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationSvc) MarkRead(ctx context.Context, notificationID string, userID string) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}

func (m *MockNotificationSvc) Notify(ctx context.Context, n domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// --- Test Suite ---
type OrderServiceTestSuite struct {
	suite.Suite
	mockOrderRepo    *MockOrderRepository
	mockProductRepo  *MockProductRepository
	mockPromoSvc     *MockPromoSvc
	mockRateSvc      *MockRateSvc
	mockNotification *MockNotificationSvc
	service          portssvc.OrderSvcFacade
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.mockOrderRepo = new(MockOrderRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockPromoSvc = new(MockPromoSvc)
	suite.mockRateSvc = new(MockRateSvc)
	suite.mockNotification = new(MockNotificationSvc)
	suite.service = services.NewOrderService(
		suite.mockOrderRepo,
		suite.mockProductRepo,
		suite.mockPromoSvc,
		suite.mockRateSvc,
		suite.mockNotification,
	)
}

func testProduct(price string, stock int) *domain.Product {
	return &domain.Product{
		ProductID: uuid.NewString(),
		Name:      "Rose Bouquet",
		Category:  "bouquets",
		Price:     decimal.RequireFromString(price),
		Stock:     stock,
		IsActive:  true,
	}
}

func (suite *OrderServiceTestSuite) TestCreateOrder_INRDefaults() {
	ctx := context.Background()
	userID := uuid.NewString()
	product := testProduct("500", 10)

	suite.mockRateSvc.On("ResolveDisplayContext", ctx, "INR").Return(pricing.DisplayINR, nil).Once()
	suite.mockProductRepo.On("FindProductByID", ctx, product.ProductID).Return(product, nil).Once()
	suite.mockOrderRepo.On("SaveOrder", ctx, mock.MatchedBy(func(o domain.Order) bool {
		// 2 x 500 + default shipping 100, no discount
		return o.Currency == "INR" &&
			o.CurrencyRate.Equal(decimal.NewFromInt(1)) &&
			o.TotalAmount.Equal(decimal.NewFromInt(1100)) &&
			o.ShippingFee == nil &&
			o.Status == domain.OrderPending
	})).Return(nil).Once()
	suite.mockProductRepo.On("DecrementStock", ctx, product.ProductID, 2).Return(nil).Once()
	suite.mockNotification.On("Notify", ctx, mock.MatchedBy(func(n domain.Notification) bool {
		return n.Type == domain.NotificationOrderPlaced
	})).Return(nil).Once()

	req := dto.CreateOrderRequest{
		Items: []dto.CreateOrderItemRequest{{ProductID: product.ProductID, Quantity: 2}},
	}
	order, err := suite.service.CreateOrder(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(order)
	suite.Equal(userID, order.UserID)
	suite.Len(order.Items, 1)
	suite.True(order.Items[0].UnitPrice.Equal(decimal.NewFromInt(500)))
	suite.True(order.Items[0].FinalPrice.Equal(decimal.NewFromInt(1000)))
	suite.mockOrderRepo.AssertExpectations(suite.T())
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreateOrder_ForeignCurrencySnapshotsRate() {
	ctx := context.Background()
	userID := uuid.NewString()
	product := testProduct("500", 10)
	rate := decimal.RequireFromString("0.0116")
	display := pricing.DisplayContext{Currency: "USD", Rate: rate}

	suite.mockRateSvc.On("ResolveDisplayContext", ctx, "USD").Return(display, nil).Once()
	suite.mockProductRepo.On("FindProductByID", ctx, product.ProductID).Return(product, nil).Once()
	suite.mockOrderRepo.On("SaveOrder", ctx, mock.AnythingOfType("domain.Order")).Return(nil).Once()
	suite.mockProductRepo.On("DecrementStock", ctx, product.ProductID, 2).Return(nil).Once()
	suite.mockNotification.On("Notify", ctx, mock.Anything).Return(nil).Once()

	req := dto.CreateOrderRequest{
		Items:    []dto.CreateOrderItemRequest{{ProductID: product.ProductID, Quantity: 2}},
		Currency: "USD",
	}
	order, err := suite.service.CreateOrder(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Equal("USD", order.Currency)
	suite.True(order.CurrencyRate.Equal(rate))
	// unit 500 * 0.0116 = 5.8, line 11.6, shipping 100 * 0.0116 = 1.16
	suite.True(order.Items[0].UnitPrice.Equal(decimal.RequireFromString("5.8")), "got %s", order.Items[0].UnitPrice)
	suite.True(order.TotalAmount.Equal(decimal.RequireFromString("12.76")), "got %s", order.TotalAmount)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_PromoAppliedOnINRSubtotal() {
	ctx := context.Background()
	userID := uuid.NewString()
	product := testProduct("500", 10)
	promo := &domain.PromoCode{PromoCodeID: uuid.NewString(), Code: "BLOOM10"}

	suite.mockRateSvc.On("ResolveDisplayContext", ctx, "INR").Return(pricing.DisplayINR, nil).Once()
	suite.mockProductRepo.On("FindProductByID", ctx, product.ProductID).Return(product, nil).Once()
	suite.mockPromoSvc.On("ApplyPromo", ctx, "BLOOM10", mock.MatchedBy(func(s decimal.Decimal) bool {
		return s.Equal(decimal.NewFromInt(1000))
	})).Return(decimal.NewFromInt(100), promo, nil).Once()
	suite.mockOrderRepo.On("SaveOrder", ctx, mock.AnythingOfType("domain.Order")).Return(nil).Once()
	suite.mockProductRepo.On("DecrementStock", ctx, product.ProductID, 2).Return(nil).Once()
	suite.mockNotification.On("Notify", ctx, mock.Anything).Return(nil).Once()

	req := dto.CreateOrderRequest{
		Items:     []dto.CreateOrderItemRequest{{ProductID: product.ProductID, Quantity: 2}},
		PromoCode: "BLOOM10",
	}
	order, err := suite.service.CreateOrder(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Equal("BLOOM10", order.PromoCode)
	suite.True(order.Discount.Equal(decimal.NewFromInt(100)))
	// 1000 - 100 + 100 shipping
	suite.True(order.TotalAmount.Equal(decimal.NewFromInt(1000)), "got %s", order.TotalAmount)
	suite.mockPromoSvc.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreateOrder_InsufficientStock() {
	ctx := context.Background()
	product := testProduct("500", 1)

	suite.mockRateSvc.On("ResolveDisplayContext", ctx, "INR").Return(pricing.DisplayINR, nil).Once()
	suite.mockProductRepo.On("FindProductByID", ctx, product.ProductID).Return(product, nil).Once()

	req := dto.CreateOrderRequest{
		Items: []dto.CreateOrderItemRequest{{ProductID: product.ProductID, Quantity: 2}},
	}
	order, err := suite.service.CreateOrder(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(order)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "SaveOrder", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_RateUnavailable() {
	ctx := context.Background()

	suite.mockRateSvc.On("ResolveDisplayContext", ctx, "XYZ").Return(pricing.DisplayContext{}, apperrors.ErrRateUnavailable).Once()

	req := dto.CreateOrderRequest{
		Items:    []dto.CreateOrderItemRequest{{ProductID: uuid.NewString(), Quantity: 1}},
		Currency: "XYZ",
	}
	order, err := suite.service.CreateOrder(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(order)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "FindProductByID", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestUpdateOrderStatus_InvalidTransition() {
	ctx := context.Background()
	order := &domain.Order{OrderID: uuid.NewString(), Status: domain.OrderDelivered}

	suite.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()

	updated, err := suite.service.UpdateOrderStatus(ctx, order.OrderID, domain.OrderCancelled, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestUpdateOrderStatus_CancellationNotifies() {
	ctx := context.Background()
	updaterID := uuid.NewString()
	order := &domain.Order{OrderID: uuid.NewString(), Status: domain.OrderPending}

	suite.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()
	suite.mockOrderRepo.On("UpdateOrderStatus", ctx, order.OrderID, domain.OrderCancelled, updaterID).Return(nil).Once()
	suite.mockNotification.On("Notify", ctx, mock.MatchedBy(func(n domain.Notification) bool {
		return n.Type == domain.NotificationOrderCancelled && n.OrderID == order.OrderID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateOrderStatus(ctx, order.OrderID, domain.OrderCancelled, updaterID)

	suite.Require().NoError(err)
	suite.Equal(domain.OrderCancelled, updated.Status)
	suite.mockNotification.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestInvoiceForOrder_AlwaysINR() {
	ctx := context.Background()
	order := &domain.Order{
		OrderID:      uuid.NewString(),
		Status:       domain.OrderConfirmed,
		Currency:     "INR",
		CurrencyRate: decimal.NewFromInt(1),
		Items: []domain.OrderItem{
			{FinalPrice: decimal.NewFromInt(1000)},
		},
	}

	suite.mockOrderRepo.On("FindOrderByID", ctx, order.OrderID).Return(order, nil).Once()

	got, totals, err := suite.service.InvoiceForOrder(ctx, order.OrderID)

	suite.Require().NoError(err)
	suite.Equal(order.OrderID, got.OrderID)
	suite.True(totals.Subtotal.Equal(decimal.NewFromInt(1000)))
	suite.True(totals.CGST.Equal(decimal.NewFromInt(25)), "got %s", totals.CGST)
	suite.True(totals.SGST.Equal(decimal.NewFromInt(25)), "got %s", totals.SGST)
	suite.True(totals.Shipping.Equal(decimal.NewFromInt(100)))
	suite.True(totals.GrandTotal.Equal(decimal.NewFromInt(1150)), "got %s", totals.GrandTotal)
	suite.False(totals.Estimated)
}

func (suite *OrderServiceTestSuite) TestExportOrdersCSV_PagesAndFormats() {
	ctx := context.Background()
	filter := portsrepo.OrderListFilter{}
	now := time.Now()

	pageOne := []domain.Order{{
		OrderID:      "ord-1",
		UserID:       "user-1",
		Status:       domain.OrderConfirmed,
		Currency:     "USD",
		CurrencyRate: decimal.RequireFromString("0.0116"),
		TotalAmount:  decimal.RequireFromString("32"),
		AuditFields:  domain.AuditFields{CreatedAt: now},
	}}
	pageTwo := []domain.Order{{
		OrderID:     "ord-2",
		UserID:      "user-2",
		Status:      domain.OrderPending,
		Currency:    "",
		TotalAmount: decimal.RequireFromString("1100"),
		AuditFields: domain.AuditFields{CreatedAt: now},
	}}

	suite.mockOrderRepo.On("ListOrders", ctx, filter, 200, "").Return(pageOne, "tok", nil).Once()
	suite.mockOrderRepo.On("ListOrders", ctx, filter, 200, "tok").Return(pageTwo, "", nil).Once()

	var buf bytes.Buffer
	err := suite.service.ExportOrdersCSV(ctx, filter, pricing.DisplayINR, &buf)
	suite.Require().NoError(err)

	reader := csv.NewReader(&buf)
	header, err := reader.Read()
	suite.Require().NoError(err)
	suite.Equal("order_id", header[0])
	suite.Equal("display_total", header[8])

	rowOne, err := reader.Read()
	suite.Require().NoError(err)
	suite.Equal("ord-1", rowOne[0])
	suite.Equal("USD", rowOne[4])
	// 32 / 0.0116 INR-normalized
	suite.Equal("2758.62", rowOne[7])

	rowTwo, err := reader.Read()
	suite.Require().NoError(err)
	suite.Equal("ord-2", rowTwo[0])
	suite.Equal("INR", rowTwo[4])
	suite.Equal("1100.00", rowTwo[7])
	suite.Equal("₹1,100.00", rowTwo[8])

	_, err = reader.Read()
	suite.Equal(io.EOF, err)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/petalhub/florist_backend/internal/apperrors"
	"github.com/petalhub/florist_backend/internal/core/domain"
	"github.com/petalhub/florist_backend/internal/core/pricing"
	portsrepo "github.com/petalhub/florist_backend/internal/core/ports/repositories"
	portssvc "github.com/petalhub/florist_backend/internal/core/ports/services"
	"github.com/petalhub/florist_backend/internal/dto"
)

// exportPageSize is the page size used when streaming orders to CSV.
const exportPageSize = 200

type orderService struct {
	BaseService
	orderRepo       portsrepo.OrderRepositoryFacade
	productRepo     portsrepo.ProductRepositoryFacade
	promoSvc        portssvc.PromoWriterSvc
	rateSvc         portssvc.ExchangeRateReaderSvc
	notificationSvc portssvc.NotificationSvcFacade
}

// NewOrderService creates a new instance of orderService.
func NewOrderService(
	orderRepo portsrepo.OrderRepositoryFacade,
	productRepo portsrepo.ProductRepositoryFacade,
	promoSvc portssvc.PromoWriterSvc,
	rateSvc portssvc.ExchangeRateReaderSvc,
	notificationSvc portssvc.NotificationSvcFacade,
) portssvc.OrderSvcFacade {
	return &orderService{
		orderRepo:       orderRepo,
		productRepo:     productRepo,
		promoSvc:        promoSvc,
		rateSvc:         rateSvc,
		notificationSvc: notificationSvc,
	}
}

// CreateOrder places an order from a checkout request. The INR->currency rate
// resolved here is stored on the order and never updated afterwards; it is
// what makes the order's INR value reconstructable after rates move.
func (s *orderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest, userID string) (*domain.Order, error) {
	currency := req.Currency
	if currency == "" {
		currency = pricing.BaseCurrencyCode
	}

	display, err := s.rateSvc.ResolveDisplayContext(ctx, currency)
	if err != nil {
		return nil, fmt.Errorf("cannot place order in %s: %w", currency, err)
	}
	rate := display.Rate

	now := time.Now()
	items := make([]domain.OrderItem, 0, len(req.Items))
	subtotalINR := decimal.Zero
	subtotal := decimal.Zero

	for _, line := range req.Items {
		product, err := s.productRepo.FindProductByID(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to load product %s: %w", line.ProductID, err)
		}
		if !product.IsActive {
			return nil, fmt.Errorf("%w: product %s is not available", apperrors.ErrValidation, product.Name)
		}
		if product.Stock < line.Quantity {
			return nil, fmt.Errorf("%w: product %s has %d in stock", apperrors.ErrInsufficientStock, product.Name, product.Stock)
		}

		// Catalog prices are INR; the order snapshot is kept in the order's
		// own currency.
		unitPrice := product.Price.Mul(rate)
		finalPrice := unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))

		items = append(items, domain.OrderItem{
			OrderItemID:     uuid.NewString(),
			ProductID:       product.ProductID,
			ProductName:     product.Name,
			UnitPrice:       unitPrice,
			Quantity:        line.Quantity,
			DiscountPercent: decimal.Zero,
			FinalPrice:      finalPrice,
		})

		subtotalINR = subtotalINR.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		subtotal = subtotal.Add(finalPrice)
	}

	// Promo discounts are defined against the INR subtotal and converted into
	// the order currency afterwards.
	discount := decimal.Zero
	promoCode := ""
	if req.PromoCode != "" {
		discountINR, promo, err := s.promoSvc.ApplyPromo(ctx, req.PromoCode, subtotalINR)
		if err != nil {
			return nil, err
		}
		discount = discountINR.Mul(rate)
		promoCode = promo.Code
	}

	var shippingFee *decimal.Decimal
	effectiveShipping := pricing.DefaultShippingFee().Mul(rate)
	if req.ShippingFee != nil {
		fee, err := pricing.ParseAmount(*req.ShippingFee)
		if err != nil {
			return nil, fmt.Errorf("%w: shipping fee: %s", apperrors.ErrValidation, err.Error())
		}
		shippingFee = &fee
		effectiveShipping = fee
	}

	total := subtotal.Sub(discount).Add(effectiveShipping)

	order := domain.Order{
		OrderID:      uuid.NewString(),
		UserID:       userID,
		Status:       domain.OrderPending,
		Currency:     currency,
		CurrencyRate: rate,
		Items:        items,
		ShippingFee:  shippingFee,
		PromoCode:    promoCode,
		Discount:     discount,
		TotalAmount:  total,
		DeliveryDate: req.DeliveryDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.orderRepo.SaveOrder(ctx, order); err != nil {
		s.LogError(ctx, err, "failed to save order", "user_id", userID)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for _, item := range order.Items {
		if err := s.productRepo.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.LogError(ctx, err, "failed to decrement stock", "product_id", item.ProductID, "order_id", order.OrderID)
		}
	}

	s.notify(ctx, domain.Notification{
		Type:    domain.NotificationOrderPlaced,
		Message: fmt.Sprintf("Order %s placed for %s", order.OrderID, pricing.Format(order.TotalAmount, order.Currency)),
		OrderID: order.OrderID,
	})

	s.LogInfo(ctx, "order created", "order_id", order.OrderID, "currency", order.Currency, "total", order.TotalAmount.String())
	return &order, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, filter portsrepo.OrderListFilter, limit int, nextToken string) ([]domain.Order, string, error) {
	orders, token, err := s.orderRepo.ListOrders(ctx, filter, limit, nextToken)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list orders: %w", err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, token, nil
}

// UpdateOrderStatus moves an order through its lifecycle, enforcing valid
// transitions.
func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, updatedBy string) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: cannot move order from %s to %s", apperrors.ErrValidation, order.Status, status)
	}

	if err := s.orderRepo.UpdateOrderStatus(ctx, orderID, status, updatedBy); err != nil {
		s.LogError(ctx, err, "failed to update order status", "order_id", orderID)
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	order.Status = status
	order.LastUpdatedAt = time.Now()
	order.LastUpdatedBy = updatedBy

	if status == domain.OrderCancelled {
		s.notify(ctx, domain.Notification{
			Type:    domain.NotificationOrderCancelled,
			Message: fmt.Sprintf("Order %s was cancelled", order.OrderID),
			OrderID: order.OrderID,
		})
	}

	return order, nil
}

// InvoiceForOrder computes the INR GST invoice breakdown for an order.
func (s *orderService) InvoiceForOrder(ctx context.Context, orderID string) (*domain.Order, pricing.InvoiceTotals, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, pricing.InvoiceTotals{}, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}

	totals, err := pricing.ComputeInvoiceTotals(*order)
	if err != nil {
		return nil, pricing.InvoiceTotals{}, fmt.Errorf("failed to compute invoice for order %s: %w", orderID, err)
	}

	return order, totals, nil
}

var exportHeader = []string{
	"order_id", "created_at", "user_id", "status", "currency", "currency_rate",
	"total_amount", "total_inr", "display_total", "estimated",
}

// ExportOrdersCSV streams matching orders as CSV. The total is rendered three
// ways per row: in the order's own currency, INR-normalized through the
// order-time rate, and formatted in the requested display currency.
func (s *orderService) ExportOrdersCSV(ctx context.Context, filter portsrepo.OrderListFilter, display pricing.DisplayContext, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	nextToken := ""
	for {
		orders, token, err := s.orderRepo.ListOrders(ctx, filter, exportPageSize, nextToken)
		if err != nil {
			return fmt.Errorf("failed to list orders for export: %w", err)
		}

		for i := range orders {
			if err := cw.Write(s.exportRow(&orders[i], display)); err != nil {
				return fmt.Errorf("failed to write csv row: %w", err)
			}
		}

		if token == "" {
			break
		}
		nextToken = token
	}

	cw.Flush()
	return cw.Error()
}

func (s *orderService) exportRow(order *domain.Order, display pricing.DisplayContext) []string {
	currency := order.Currency
	if currency == "" {
		currency = pricing.BaseCurrencyCode
	}

	totalINR := pricing.Placeholder
	if conv, err := pricing.ToBase(order.TotalAmount, order.Currency, order.CurrencyRate); err == nil {
		totalINR = conv.Amount.StringFixed(2)
	}

	displayTotal := pricing.Placeholder
	estimated := false
	if conv, err := pricing.ConvertForDisplay(order.TotalAmount, order.Currency, order.CurrencyRate, display); err == nil {
		target := display.Currency
		if target == "" {
			target = pricing.BaseCurrencyCode
		}
		displayTotal = pricing.Format(conv.Amount, target)
		estimated = conv.Estimated
	}

	return []string{
		order.OrderID,
		order.CreatedAt.UTC().Format(time.RFC3339),
		order.UserID,
		string(order.Status),
		currency,
		order.CurrencyRate.String(),
		order.TotalAmount.StringFixed(2),
		totalINR,
		displayTotal,
		strconv.FormatBool(estimated),
	}
}

// notify records a back-office notification, logging instead of failing the
// caller when the write does not go through.
func (s *orderService) notify(ctx context.Context, n domain.Notification) {
	if s.notificationSvc == nil {
		return
	}
	if err := s.notificationSvc.Notify(ctx, n); err != nil && !errors.Is(err, context.Canceled) {
		s.LogWarn(ctx, "failed to record notification", "type", string(n.Type), "error", err.Error())
	}
}

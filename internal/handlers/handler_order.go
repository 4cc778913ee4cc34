package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/petalhub/florist_backend/internal/core/domain"
	portsrepo "github.com/petalhub/florist_backend/internal/core/ports/repositories"
	portssvc "github.com/petalhub/florist_backend/internal/core/ports/services"
	"github.com/petalhub/florist_backend/internal/dto"
	"github.com/petalhub/florist_backend/internal/middleware"
)

// orderHandler handles HTTP requests for orders.
type orderHandler struct {
	orderService   portssvc.OrderSvcFacade
	paymentService portssvc.PaymentSvcFacade
	rateService    portssvc.ExchangeRateReaderSvc
	userService    portssvc.UserReaderSvc
}

func newOrderHandler(os portssvc.OrderSvcFacade, ps portssvc.PaymentSvcFacade, rs portssvc.ExchangeRateReaderSvc, us portssvc.UserReaderSvc) *orderHandler {
	return &orderHandler{
		orderService:   os,
		paymentService: ps,
		rateService:    rs,
		userService:    us,
	}
}

// registerOrderRoutes registers order routes under the authed group.
// The export route sits behind gzip since CSV responses compress well.
func registerOrderRoutes(rg *gin.RouterGroup, gzipped gin.HandlerFunc, services *portssvc.ServiceContainer) {
	h := newOrderHandler(services.Order, services.Payment, services.ExchangeRate, services.User)

	orders := rg.Group("/orders")
	{
		orders.POST("", h.createOrder)
		orders.GET("", h.listOrders)
		orders.GET("/export", gzipped, h.exportOrders)
		orders.GET("/:orderID", h.getOrder)
		orders.GET("/:orderID/invoice", h.getInvoice)
		orders.PATCH("/:orderID/status", h.updateOrderStatus)
		orders.POST("/:orderID/payment-intent", h.createPaymentIntent)
	}
}

// createOrder godoc
// @Summary Place an order
// @Description Places an order from a cart, snapshotting the exchange rate for the chosen currency.
// @Tags orders
// @Accept json
// @Produce json
// @Param order body dto.CreateOrderRequest true "Order details"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Insufficient stock"
// @Failure 422 {object} ErrorResponse "Promo not applicable or rate unavailable"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders [post]
func (h *orderHandler) createOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createOrder", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create order")
		return
	}

	logger.Info("Order placed",
		slog.String("order_id", order.OrderID),
		slog.String("currency", order.Currency))
	c.JSON(http.StatusCreated, dto.ToOrderResponse(order, resolveDisplayContext(c, h.rateService)))
}

// getOrder godoc
// @Summary Get an order
// @Description Retrieves an order. Customers can only read their own orders.
// @Tags orders
// @Produce json
// @Param orderID path string true "Order ID"
// @Param currency query string false "Display currency code (default INR)"
// @Success 200 {object} dto.OrderResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{orderID} [get]
func (h *orderHandler) getOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("orderID"))
	if err != nil {
		respondError(c, logger, err, "Failed to get order")
		return
	}
	if order.UserID != userID && !h.isAdmin(c, userID) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order, resolveDisplayContext(c, h.rateService)))
}

// listOrders godoc
// @Summary List orders
// @Description Lists the caller's orders newest first. Admins may list any user's orders via the userID filter.
// @Tags orders
// @Produce json
// @Param status query string false "Filter by status"
// @Param userID query string false "Filter by user (admin only)"
// @Param currency query string false "Display currency code (default INR)"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListOrdersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders [get]
func (h *orderHandler) listOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid limit parameter"})
		return
	}

	filter := portsrepo.OrderListFilter{
		UserID: userID,
		Status: domain.OrderStatus(c.Query("status")),
	}
	if requested := c.Query("userID"); requested != "" && requested != userID {
		if !h.isAdmin(c, userID) {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
			return
		}
		filter.UserID = requested
	}

	orders, nextToken, err := h.orderService.ListOrders(c.Request.Context(), filter, limit, c.Query("nextToken"))
	if err != nil {
		respondError(c, logger, err, "Failed to list orders")
		return
	}

	c.JSON(http.StatusOK, dto.ToListOrdersResponse(orders, nextToken, resolveDisplayContext(c, h.rateService)))
}

// updateOrderStatus godoc
// @Summary Update order status
// @Description Moves an order through its lifecycle (admin operation).
// @Tags orders
// @Accept json
// @Produce json
// @Param orderID path string true "Order ID"
// @Param status body dto.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} ErrorResponse "Invalid transition"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{orderID}/status [patch]
func (h *orderHandler) updateOrderStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireAdmin(c, h.userService)
	if !ok {
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateOrderStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), c.Param("orderID"), domain.OrderStatus(req.Status), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update order status")
		return
	}

	logger.Info("Order status updated",
		slog.String("order_id", order.OrderID),
		slog.String("status", string(order.Status)))
	c.JSON(http.StatusOK, dto.ToOrderResponse(order, resolveDisplayContext(c, h.rateService)))
}

// getInvoice godoc
// @Summary Get the GST invoice for an order
// @Description Returns the invoice breakdown. Invoices are always denominated in INR.
// @Tags orders
// @Produce json
// @Param orderID path string true "Order ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{orderID}/invoice [get]
func (h *orderHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	order, totals, err := h.orderService.InvoiceForOrder(c.Request.Context(), c.Param("orderID"))
	if err != nil {
		respondError(c, logger, err, "Failed to compute invoice")
		return
	}
	if order.UserID != userID && !h.isAdmin(c, userID) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(order.OrderID, totals))
}

// exportOrders godoc
// @Summary Export orders as CSV
// @Description Streams matching orders as CSV (admin operation), amounts in the requested display currency.
// @Tags orders
// @Produce text/csv
// @Param status query string false "Filter by status"
// @Param userID query string false "Filter by user"
// @Param currency query string false "Display currency code (default INR)"
// @Success 200 {string} string "CSV payload"
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/export [get]
func (h *orderHandler) exportOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if _, ok := requireAdmin(c, h.userService); !ok {
		return
	}

	filter := portsrepo.OrderListFilter{
		UserID: c.Query("userID"),
		Status: domain.OrderStatus(c.Query("status")),
	}
	display := resolveDisplayContext(c, h.rateService)

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="orders.csv"`)
	if err := h.orderService.ExportOrdersCSV(c.Request.Context(), filter, display, c.Writer); err != nil {
		// Headers are already out; all we can do is log and abort the stream.
		logger.Error("Order CSV export failed", slog.String("error", err.Error()))
		c.Abort()
	}
}

// createPaymentIntent godoc
// @Summary Create a payment intent for an order
// @Description Registers a gateway payment for a pending order's total in its snapshot currency.
// @Tags orders
// @Produce json
// @Param orderID path string true "Order ID"
// @Success 201 {object} dto.PaymentIntentResponse
// @Failure 400 {object} ErrorResponse "Order not payable"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{orderID}/payment-intent [post]
func (h *orderHandler) createPaymentIntent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	intent, err := h.paymentService.CreatePaymentIntentForOrder(c.Request.Context(), c.Param("orderID"), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create payment intent")
		return
	}

	logger.Info("Payment intent created",
		slog.String("order_id", c.Param("orderID")),
		slog.String("payment_intent_id", intent.ID))
	c.JSON(http.StatusCreated, dto.ToPaymentIntentResponse(intent))
}

// isAdmin reports whether the user has the admin flag. Lookup failures count
// as not-admin.
func (h *orderHandler) isAdmin(c *gin.Context, userID string) bool {
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	return err == nil && user.IsAdmin
}

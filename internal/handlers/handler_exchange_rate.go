package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	portssvc "github.com/petalhub/florist_backend/internal/core/ports/services"
	"github.com/petalhub/florist_backend/internal/core/pricing"
	"github.com/petalhub/florist_backend/internal/dto"
	"github.com/petalhub/florist_backend/internal/middleware"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	rateService portssvc.ExchangeRateSvcFacade
	userService portssvc.UserReaderSvc
}

func newExchangeRateHandler(rs portssvc.ExchangeRateSvcFacade, us portssvc.UserReaderSvc) *exchangeRateHandler {
	return &exchangeRateHandler{
		rateService: rs,
		userService: us,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newExchangeRateHandler(services.ExchangeRate, services.User)

	rates := rg.Group("/exchange-rates")
	{
		rates.POST("", h.createExchangeRate)
		rates.GET("", h.getExchangeRate)
		rates.GET("/display/:code", h.getDisplayRate)
	}
}

// createExchangeRate godoc
// @Summary Create an exchange rate
// @Description Stores a new exchange rate (admin operation)
// @Tags exchange-rates
// @Accept json
// @Produce json
// @Param rate body dto.CreateExchangeRateRequest true "Exchange rate details"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates [post]
func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireAdmin(c, h.userService)
	if !ok {
		return
	}

	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	rate, err := h.rateService.CreateExchangeRate(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create exchange rate")
		return
	}

	logger.Info("Exchange rate created",
		slog.String("from", rate.FromCurrencyCode),
		slog.String("to", rate.ToCurrencyCode))
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// getExchangeRate godoc
// @Summary Get a stored exchange rate
// @Description Retrieves the latest stored rate between two currencies
// @Tags exchange-rates
// @Produce json
// @Param from query string true "From currency code"
// @Param to query string true "To currency code"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from := strings.ToUpper(c.Query("from"))
	to := strings.ToUpper(c.Query("to"))
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Both 'from' and 'to' query parameters are required"})
		return
	}

	rate, err := h.rateService.GetExchangeRate(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, logger, err, "Failed to get exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// getDisplayRate godoc
// @Summary Resolve a display rate
// @Description Resolves the current INR rate for a display currency through the cache, store and live source chain
// @Tags exchange-rates
// @Produce json
// @Param code path string true "Display currency code"
// @Success 200 {object} map[string]any
// @Failure 422 {object} ErrorResponse "Rate unavailable"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates/display/{code} [get]
func (h *exchangeRateHandler) getDisplayRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	code := strings.ToUpper(c.Param("code"))
	display, err := h.rateService.ResolveDisplayContext(c.Request.Context(), code)
	if err != nil {
		respondError(c, logger, err, "Failed to resolve display rate")
		return
	}

	target := display.Currency
	if target == "" {
		target = pricing.BaseCurrencyCode
	}
	c.JSON(http.StatusOK, gin.H{
		"currency": target,
		"rate":     display.Rate,
	})
}

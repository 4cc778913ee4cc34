package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/petalhub/florist_backend/internal/apperrors"
	portssvc "github.com/petalhub/florist_backend/internal/core/ports/services"
	"github.com/petalhub/florist_backend/internal/dto"
	"github.com/petalhub/florist_backend/internal/middleware"
)

// promoHandler handles HTTP requests for promo codes.
type promoHandler struct {
	promoService portssvc.PromoSvcFacade
	userService  portssvc.UserReaderSvc
}

func newPromoHandler(ps portssvc.PromoSvcFacade, us portssvc.UserReaderSvc) *promoHandler {
	return &promoHandler{
		promoService: ps,
		userService:  us,
	}
}

// registerPromoRoutes registers promo routes under the authed group.
func registerPromoRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newPromoHandler(services.Promo, services.User)

	promos := rg.Group("/promos")
	{
		promos.POST("", h.createPromoCode)
		promos.GET("", h.listPromoCodes)
		promos.POST("/validate", h.validatePromo)
		promos.DELETE("/:promoCodeID", h.deactivatePromoCode)
	}
}

// createPromoCode godoc
// @Summary Create a promo code
// @Description Adds a promo code (admin operation).
// @Tags promos
// @Accept json
// @Produce json
// @Param promo body dto.CreatePromoCodeRequest true "Promo details"
// @Success 201 {object} dto.PromoCodeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /promos [post]
func (h *promoHandler) createPromoCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireAdmin(c, h.userService)
	if !ok {
		return
	}

	var req dto.CreatePromoCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createPromoCode", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	promo, err := h.promoService.CreatePromoCode(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create promo code")
		return
	}

	logger.Info("Promo code created", slog.String("code", promo.Code))
	c.JSON(http.StatusCreated, dto.ToPromoCodeResponse(promo))
}

// listPromoCodes godoc
// @Summary List promo codes
// @Description Lists all promo codes (admin operation).
// @Tags promos
// @Produce json
// @Success 200 {array} dto.PromoCodeResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /promos [get]
func (h *promoHandler) listPromoCodes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if _, ok := requireAdmin(c, h.userService); !ok {
		return
	}

	promos, err := h.promoService.ListPromoCodes(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list promo codes")
		return
	}

	c.JSON(http.StatusOK, dto.ToListPromoCodeResponse(promos))
}

// validatePromo godoc
// @Summary Validate a promo code
// @Description Reports the discount a code would yield on an INR cart subtotal, without consuming a use.
// @Tags promos
// @Accept json
// @Produce json
// @Param promo body dto.ValidatePromoRequest true "Code and cart subtotal"
// @Success 200 {object} dto.ValidatePromoResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /promos/validate [post]
func (h *promoHandler) validatePromo(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ValidatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for validatePromo", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	discount, _, err := h.promoService.ValidatePromo(c.Request.Context(), req.Code, decimal.NewFromFloat(req.Subtotal))
	if err != nil {
		// An unusable code is a normal answer here, not an error response.
		if errors.Is(err, apperrors.ErrPromoNotApplicable) || errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusOK, dto.ValidatePromoResponse{Valid: false, Discount: decimal.Zero, Message: err.Error()})
			return
		}
		respondError(c, logger, err, "Failed to validate promo code")
		return
	}

	c.JSON(http.StatusOK, dto.ValidatePromoResponse{Valid: true, Discount: discount})
}

// deactivatePromoCode godoc
// @Summary Deactivate a promo code
// @Description Turns a promo code off (admin operation).
// @Tags promos
// @Produce json
// @Param promoCodeID path string true "Promo code ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /promos/{promoCodeID} [delete]
func (h *promoHandler) deactivatePromoCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireAdmin(c, h.userService)
	if !ok {
		return
	}

	if err := h.promoService.DeactivatePromoCode(c.Request.Context(), c.Param("promoCodeID"), userID); err != nil {
		respondError(c, logger, err, "Failed to deactivate promo code")
		return
	}

	c.Status(http.StatusNoContent)
}

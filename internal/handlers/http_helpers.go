package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/petalhub/florist_backend/internal/apperrors"
	"github.com/petalhub/florist_backend/internal/core/pricing"
	portssvc "github.com/petalhub/florist_backend/internal/core/ports/services"
	"github.com/petalhub/florist_backend/internal/middleware"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps service errors onto HTTP statuses. Anything that is not a
// known sentinel becomes a 500 with a generic message so internals never leak.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientStock):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrPromoNotApplicable):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrRateUnavailable):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}

// requireAdmin resolves the authenticated user and checks the admin flag.
// It writes the error response itself; callers bail out when ok is false.
func requireAdmin(c *gin.Context, userSvc portssvc.UserReaderSvc) (string, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}

	user, err := userSvc.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to load user")
		return "", false
	}
	if !user.IsAdmin {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Admin access required"})
		return "", false
	}
	return userID, true
}

// resolveDisplayContext reads the viewer's display currency from the
// ?currency= query parameter and resolves a consistent rate for it. A
// resolution failure degrades to INR so read endpoints keep working; the
// caller renders "N/A" only where conversion itself fails.
func resolveDisplayContext(c *gin.Context, rateSvc portssvc.ExchangeRateReaderSvc) pricing.DisplayContext {
	code := strings.ToUpper(strings.TrimSpace(c.Query("currency")))
	display, err := rateSvc.ResolveDisplayContext(c.Request.Context(), code)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Warn("Failed to resolve display currency, falling back to INR",
			slog.String("currency", code), slog.String("error", err.Error()))
		return pricing.DisplayINR
	}
	return display
}

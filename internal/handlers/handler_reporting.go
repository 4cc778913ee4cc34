package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/petalhub/florist_backend/internal/core/ports/services"
	"github.com/petalhub/florist_backend/internal/dto"
	"github.com/petalhub/florist_backend/internal/middleware"
)

const defaultTopProductsLimit = 10

// reportingHandler serves the admin dashboard aggregates.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
	userService      portssvc.UserReaderSvc
}

func newReportingHandler(rs portssvc.ReportingSvcFacade, us portssvc.UserReaderSvc) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		userService:      us,
	}
}

// registerReportingRoutes registers the reporting routes under the authed
// group. All analytics responses sit behind gzip.
func registerReportingRoutes(rg *gin.RouterGroup, gzipped gin.HandlerFunc, services *portssvc.ServiceContainer) {
	h := newReportingHandler(services.Reporting, services.User)

	reports := rg.Group("/reports", gzipped)
	{
		reports.GET("/revenue-summary", h.getRevenueSummary)
		reports.GET("/top-products", h.getTopProducts)
		reports.GET("/status-counts", h.getStatusCounts)
	}
}

// parseReportWindow reads the from/to query parameters, defaulting to the
// trailing 30 days. The window is half-open: [from, to).
func parseReportWindow(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now().UTC()
	fromStr := c.DefaultQuery("from", now.AddDate(0, 0, -30).Format("2006-01-02"))
	toStr := c.DefaultQuery("to", now.AddDate(0, 0, 1).Format("2006-01-02"))

	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid 'from' date format. Use YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid 'to' date format. Use YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	if !to.After(from) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "'to' must be after 'from'"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// getRevenueSummary godoc
// @Summary Revenue summary
// @Description Aggregates INR-normalized revenue over a date window (admin operation).
// @Tags reports
// @Produce json
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end, exclusive (YYYY-MM-DD)"
// @Success 200 {object} dto.RevenueSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/revenue-summary [get]
func (h *reportingHandler) getRevenueSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if _, ok := requireAdmin(c, h.userService); !ok {
		return
	}

	from, to, ok := parseReportWindow(c)
	if !ok {
		return
	}

	summary, err := h.reportingService.RevenueSummary(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, logger, err, "Failed to compute revenue summary")
		return
	}

	logger.Debug("Revenue summary computed",
		slog.Time("from", from), slog.Time("to", to),
		slog.Int("order_count", summary.OrderCount))
	c.JSON(http.StatusOK, dto.ToRevenueSummaryResponse(summary))
}

// getTopProducts godoc
// @Summary Best-selling products
// @Description Returns the top products by units sold over a date window (admin operation).
// @Tags reports
// @Produce json
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end, exclusive (YYYY-MM-DD)"
// @Param limit query int false "Number of products"
// @Success 200 {array} dto.ProductSalesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/top-products [get]
func (h *reportingHandler) getTopProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if _, ok := requireAdmin(c, h.userService); !ok {
		return
	}

	from, to, ok := parseReportWindow(c)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultTopProductsLimit)))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid limit parameter"})
		return
	}

	sales, err := h.reportingService.TopProducts(c.Request.Context(), from, to, limit)
	if err != nil {
		respondError(c, logger, err, "Failed to compute top products")
		return
	}

	c.JSON(http.StatusOK, dto.ToProductSalesResponse(sales))
}

// getStatusCounts godoc
// @Summary Order counts per status
// @Description Returns the current order count per lifecycle status (admin operation).
// @Tags reports
// @Produce json
// @Success 200 {array} dto.StatusCountResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/status-counts [get]
func (h *reportingHandler) getStatusCounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if _, ok := requireAdmin(c, h.userService); !ok {
		return
	}

	counts, err := h.reportingService.StatusCounts(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to compute status counts")
		return
	}

	c.JSON(http.StatusOK, dto.ToStatusCountResponse(counts))
}

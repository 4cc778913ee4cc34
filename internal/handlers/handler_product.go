package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/petalhub/florist_backend/internal/core/ports/services"
	"github.com/petalhub/florist_backend/internal/dto"
	"github.com/petalhub/florist_backend/internal/middleware"
)

const defaultPageSize = 20

// productHandler handles HTTP requests for the catalog.
type productHandler struct {
	productService portssvc.ProductSvcFacade
	rateService    portssvc.ExchangeRateReaderSvc
	userService    portssvc.UserReaderSvc
}

func newProductHandler(ps portssvc.ProductSvcFacade, rs portssvc.ExchangeRateReaderSvc, us portssvc.UserReaderSvc) *productHandler {
	return &productHandler{
		productService: ps,
		rateService:    rs,
		userService:    us,
	}
}

// registerCatalogRoutes registers the public, unauthenticated catalog reads.
func registerCatalogRoutes(rg *gin.Engine, services *portssvc.ServiceContainer) {
	h := newProductHandler(services.Product, services.ExchangeRate, services.User)

	products := rg.Group("/api/v1/products")
	{
		products.GET("", h.listProducts)
		products.GET("/:productID", h.getProduct)
	}
}

// registerProductAdminRoutes registers catalog writes under the authed group.
func registerProductAdminRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newProductHandler(services.Product, services.ExchangeRate, services.User)

	products := rg.Group("/products")
	{
		products.POST("", h.createProduct)
		products.PUT("/:productID", h.updateProduct)
	}
}

// listProducts godoc
// @Summary List catalog products
// @Description Lists products newest first, prices rendered in the requested display currency.
// @Tags products
// @Produce json
// @Param category query string false "Filter by category"
// @Param currency query string false "Display currency code (default INR)"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListProductsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products [get]
func (h *productHandler) listProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid limit parameter"})
		return
	}

	products, nextToken, err := h.productService.ListProducts(
		c.Request.Context(), c.Query("category"), true, limit, c.Query("nextToken"))
	if err != nil {
		respondError(c, logger, err, "Failed to list products")
		return
	}

	display := resolveDisplayContext(c, h.rateService)
	c.JSON(http.StatusOK, dto.ToListProductsResponse(products, nextToken, display))
}

// getProduct godoc
// @Summary Get a product
// @Description Retrieves a single product, price rendered in the requested display currency.
// @Tags products
// @Produce json
// @Param productID path string true "Product ID"
// @Param currency query string false "Display currency code (default INR)"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/{productID} [get]
func (h *productHandler) getProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("productID"))
	if err != nil {
		respondError(c, logger, err, "Failed to get product")
		return
	}

	display := resolveDisplayContext(c, h.rateService)
	c.JSON(http.StatusOK, dto.ToProductResponse(product, display))
}

// createProduct godoc
// @Summary Create a product
// @Description Adds a product to the catalog (admin operation). Price is in INR.
// @Tags products
// @Accept json
// @Produce json
// @Param product body dto.CreateProductRequest true "Product details"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /products [post]
func (h *productHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireAdmin(c, h.userService)
	if !ok {
		return
	}

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create product")
		return
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID))
	c.JSON(http.StatusCreated, dto.ToProductResponse(product, resolveDisplayContext(c, h.rateService)))
}

// updateProduct godoc
// @Summary Update a product
// @Description Replaces the mutable fields of a product (admin operation).
// @Tags products
// @Accept json
// @Produce json
// @Param productID path string true "Product ID"
// @Param product body dto.UpdateProductRequest true "Product details"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /products/{productID} [put]
func (h *productHandler) updateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireAdmin(c, h.userService)
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("productID"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update product")
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product, resolveDisplayContext(c, h.rateService)))
}

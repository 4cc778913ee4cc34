package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/petalhub/florist_backend/internal/core/domain"
	"github.com/petalhub/florist_backend/internal/core/pricing"
)

// CreateProductRequest defines the data needed to add a catalog product.
// Price is in INR.
type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	ImageURL    string  `json:"imageURL" binding:"omitempty,url"`
	Stock       int     `json:"stock" binding:"gte=0"`
}

// UpdateProductRequest replaces the mutable fields of a product.
type UpdateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	ImageURL    string  `json:"imageURL" binding:"omitempty,url"`
	Stock       int     `json:"stock" binding:"gte=0"`
	IsActive    bool    `json:"isActive"`
}

// ProductResponse is the API view of a product. DisplayPrice is the INR price
// converted into the viewer's display currency.
type ProductResponse struct {
	ProductID    string          `json:"productID"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	DisplayPrice string          `json:"displayPrice"`
	ImageURL     string          `json:"imageURL"`
	Stock        int             `json:"stock"`
	IsActive     bool            `json:"isActive"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ListProductsResponse is a paginated catalog listing.
type ListProductsResponse struct {
	Products  []ProductResponse `json:"products"`
	NextToken string            `json:"nextToken,omitempty"`
}

// ToProductResponse converts a domain.Product into its API view.
func ToProductResponse(p *domain.Product, display pricing.DisplayContext) ProductResponse {
	displayPrice := pricing.Placeholder
	if converted, err := pricing.ToDisplay(p.Price, display); err == nil {
		target := display.Currency
		if target == "" {
			target = pricing.BaseCurrencyCode
		}
		displayPrice = pricing.Format(converted, target)
	}
	return ProductResponse{
		ProductID:    p.ProductID,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		Price:        p.Price,
		DisplayPrice: displayPrice,
		ImageURL:     p.ImageURL,
		Stock:        p.Stock,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
	}
}

// ToListProductsResponse converts a page of products.
func ToListProductsResponse(products []domain.Product, nextToken string, display pricing.DisplayContext) ListProductsResponse {
	res := ListProductsResponse{
		Products:  make([]ProductResponse, len(products)),
		NextToken: nextToken,
	}
	for i := range products {
		res.Products[i] = ToProductResponse(&products[i], display)
	}
	return res
}

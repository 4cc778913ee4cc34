package services

import (
	"context"

	"github.com/petalhub/florist_backend/internal/core/domain"
	"github.com/petalhub/florist_backend/internal/dto"
)

// ProductReaderSvc defines read operations for the catalog
type ProductReaderSvc interface {
	// GetProduct retrieves a product by ID.
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)

	// ListProducts retrieves a catalog page, optionally filtered by category.
	ListProducts(ctx context.Context, category string, activeOnly bool, limit int, nextToken string) ([]domain.Product, string, error)
}

// ProductWriterSvc defines write operations for the catalog
type ProductWriterSvc interface {
	// CreateProduct adds a product to the catalog.
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error)

	// UpdateProduct replaces the mutable fields of a product.
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, updaterUserID string) (*domain.Product, error)
}

// ProductSvcFacade combines all product-related service interfaces
type ProductSvcFacade interface {
	ProductReaderSvc
	ProductWriterSvc
}

package repositories

import (
	"context"

	"github.com/petalhub/florist_backend/internal/core/domain"
)

// ProductReader defines read operations for the catalog
type ProductReader interface {
	// FindProductByID retrieves a product by its ID.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// ListProducts retrieves catalog products newest-first with keyset pagination.
	// When activeOnly is set, inactive products are excluded (storefront view).
	ListProducts(ctx context.Context, category string, activeOnly bool, limit int, nextToken string) ([]domain.Product, string, error)
}

// ProductWriter defines write operations for the catalog
type ProductWriter interface {
	// SaveProduct persists a new product.
	SaveProduct(ctx context.Context, product domain.Product) error

	// UpdateProduct replaces the mutable fields of an existing product.
	UpdateProduct(ctx context.Context, product domain.Product) error

	// DecrementStock reduces stock for a product, failing if it would go negative.
	DecrementStock(ctx context.Context, productID string, quantity int) error
}

// ProductRepositoryFacade combines all product-related repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}

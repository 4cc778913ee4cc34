package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/petalhub/florist_backend/internal/apperrors"
	"github.com/petalhub/florist_backend/internal/core/domain"
	"github.com/petalhub/florist_backend/internal/core/pricing"
	portsrepo "github.com/petalhub/florist_backend/internal/core/ports/repositories"
	portssvc "github.com/petalhub/florist_backend/internal/core/ports/services"
	"github.com/petalhub/florist_backend/internal/dto"
)

type productService struct {
	BaseService
	productRepo portsrepo.ProductRepositoryFacade
}

// NewProductService creates a new instance of productService.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade) portssvc.ProductSvcFacade {
	return &productService{productRepo: productRepo}
}

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorUserID string) (*domain.Product, error) {
	price, err := pricing.ParseAmount(req.Price)
	if err != nil {
		return nil, fmt.Errorf("%w: price: %s", apperrors.ErrValidation, err.Error())
	}

	now := time.Now()
	product := domain.Product{
		ProductID:   uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       price,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		s.LogError(ctx, err, "failed to save product", "product_name", req.Name)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return &product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, updaterUserID string) (*domain.Product, error) {
	price, err := pricing.ParseAmount(req.Price)
	if err != nil {
		return nil, fmt.Errorf("%w: price: %s", apperrors.ErrValidation, err.Error())
	}

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Category = req.Category
	product.Price = price
	product.ImageURL = req.ImageURL
	product.Stock = req.Stock
	product.IsActive = req.IsActive
	product.LastUpdatedAt = time.Now()
	product.LastUpdatedBy = updaterUserID

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		s.LogError(ctx, err, "failed to update product", "product_id", productID)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

func (s *productService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", productID, err)
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, category string, activeOnly bool, limit int, nextToken string) ([]domain.Product, string, error) {
	products, token, err := s.productRepo.ListProducts(ctx, category, activeOnly, limit, nextToken)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, token, nil
}

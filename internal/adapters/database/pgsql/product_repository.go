package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/petalhub/florist_backend/internal/apperrors"
	"github.com/petalhub/florist_backend/internal/core/domain"
	portsrepo "github.com/petalhub/florist_backend/internal/core/ports/repositories"
	"github.com/petalhub/florist_backend/internal/utils/pagination"
)

const productColumns = `product_id, name, description, category, price, image_url, stock, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxProductRepository struct {
	pool PGXPool
}

// NewPgxProductRepository creates a new repository for catalog data.
func NewPgxProductRepository(pool PGXPool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{pool: pool}
}

func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.pool.Exec(ctx, query,
		product.ProductID, product.Name, product.Description, product.Category, product.Price,
		product.ImageURL, product.Stock, product.IsActive,
		product.CreatedAt, product.CreatedBy, product.LastUpdatedAt, product.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	query := `
		UPDATE products SET
			name = $2, description = $3, category = $4, price = $5, image_url = $6,
			stock = $7, is_active = $8, last_updated_at = $9, last_updated_by = $10
		WHERE product_id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		product.ProductID, product.Name, product.Description, product.Category, product.Price,
		product.ImageURL, product.Stock, product.IsActive, product.LastUpdatedAt, product.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", product.ProductID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DecrementStock reduces stock for a product. The guard in the WHERE clause
// keeps stock from going negative under concurrent checkouts.
func (r *PgxProductRepository) DecrementStock(ctx context.Context, productID string, quantity int) error {
	query := `
		UPDATE products SET stock = stock - $2
		WHERE product_id = $1 AND stock >= $2
	`
	tag, err := r.pool.Exec(ctx, query, productID, quantity)
	if err != nil {
		return fmt.Errorf("failed to decrement stock for product %s: %w", productID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %s", apperrors.ErrInsufficientStock, productID)
	}
	return nil
}

func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1`
	var product domain.Product
	err := r.pool.QueryRow(ctx, query, productID).Scan(
		&product.ProductID, &product.Name, &product.Description, &product.Category, &product.Price,
		&product.ImageURL, &product.Stock, &product.IsActive,
		&product.CreatedAt, &product.CreatedBy, &product.LastUpdatedAt, &product.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	return &product, nil
}

// ListProducts retrieves catalog products newest-first with keyset pagination.
func (r *PgxProductRepository) ListProducts(ctx context.Context, category string, activeOnly bool, limit int, nextToken string) ([]domain.Product, string, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []any{}
	argPos := 1

	if category != "" {
		query += fmt.Sprintf(" AND category = $%d", argPos)
		args = append(args, category)
		argPos++
	}
	if activeOnly {
		query += " AND is_active = TRUE"
	}
	if nextToken != "" {
		createdAt, id, err := pagination.DecodeToken(nextToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += fmt.Sprintf(" AND (created_at, product_id) < ($%d, $%d)", argPos, argPos+1)
		args = append(args, createdAt, id)
		argPos += 2
	}

	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(" ORDER BY created_at DESC, product_id DESC LIMIT $%d", argPos)
	args = append(args, limit+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Product, error) {
		var product domain.Product
		err := row.Scan(
			&product.ProductID, &product.Name, &product.Description, &product.Category, &product.Price,
			&product.ImageURL, &product.Stock, &product.IsActive,
			&product.CreatedAt, &product.CreatedBy, &product.LastUpdatedAt, &product.LastUpdatedBy,
		)
		return product, err
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to scan products: %w", err)
	}

	token := ""
	if len(products) > limit {
		products = products[:limit]
		last := products[len(products)-1]
		token = pagination.EncodeToken(last.CreatedAt, last.ProductID)
	}
	return products, token, nil
}

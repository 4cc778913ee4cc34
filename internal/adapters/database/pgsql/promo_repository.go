package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/petalhub/florist_backend/internal/apperrors"
	"github.com/petalhub/florist_backend/internal/core/domain"
	portsrepo "github.com/petalhub/florist_backend/internal/core/ports/repositories"
)

const promoColumns = `promo_code_id, code, discount_percent, max_discount, expires_at, usage_limit, times_used, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxPromoCodeRepository struct {
	pool PGXPool
}

// NewPgxPromoCodeRepository creates a new repository for promo code data.
func NewPgxPromoCodeRepository(pool PGXPool) portsrepo.PromoCodeRepositoryFacade {
	return &PgxPromoCodeRepository{pool: pool}
}

func (r *PgxPromoCodeRepository) SavePromoCode(ctx context.Context, promo domain.PromoCode) error {
	query := `
		INSERT INTO promo_codes (` + promoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.pool.Exec(ctx, query,
		promo.PromoCodeID, promo.Code, promo.DiscountPercent, promo.MaxDiscount,
		promo.ExpiresAt, promo.UsageLimit, promo.TimesUsed, promo.IsActive,
		promo.CreatedAt, promo.CreatedBy, promo.LastUpdatedAt, promo.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: promo code %s", apperrors.ErrDuplicate, promo.Code)
		}
		return fmt.Errorf("failed to save promo code: %w", err)
	}
	return nil
}

func (r *PgxPromoCodeRepository) FindPromoCodeByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	query := `SELECT ` + promoColumns + ` FROM promo_codes WHERE code = $1`
	var promo domain.PromoCode
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&promo.PromoCodeID, &promo.Code, &promo.DiscountPercent, &promo.MaxDiscount,
		&promo.ExpiresAt, &promo.UsageLimit, &promo.TimesUsed, &promo.IsActive,
		&promo.CreatedAt, &promo.CreatedBy, &promo.LastUpdatedAt, &promo.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find promo code: %w", err)
	}
	return &promo, nil
}

func (r *PgxPromoCodeRepository) ListPromoCodes(ctx context.Context) ([]domain.PromoCode, error) {
	query := `SELECT ` + promoColumns + ` FROM promo_codes ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query promo codes: %w", err)
	}
	defer rows.Close()

	promos, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PromoCode, error) {
		var promo domain.PromoCode
		err := row.Scan(
			&promo.PromoCodeID, &promo.Code, &promo.DiscountPercent, &promo.MaxDiscount,
			&promo.ExpiresAt, &promo.UsageLimit, &promo.TimesUsed, &promo.IsActive,
			&promo.CreatedAt, &promo.CreatedBy, &promo.LastUpdatedAt, &promo.LastUpdatedBy,
		)
		return promo, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan promo codes: %w", err)
	}
	return promos, nil
}

// IncrementUsage bumps the usage counter. The guard keeps a limited promo from
// being applied past its limit under concurrent checkouts.
func (r *PgxPromoCodeRepository) IncrementUsage(ctx context.Context, promoCodeID string) error {
	query := `
		UPDATE promo_codes SET times_used = times_used + 1
		WHERE promo_code_id = $1 AND (usage_limit = 0 OR times_used < usage_limit)
	`
	tag, err := r.pool.Exec(ctx, query, promoCodeID)
	if err != nil {
		return fmt.Errorf("failed to increment promo usage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: usage limit reached", apperrors.ErrPromoNotApplicable)
	}
	return nil
}

func (r *PgxPromoCodeRepository) DeactivatePromoCode(ctx context.Context, promoCodeID string, updatedBy string) error {
	query := `
		UPDATE promo_codes SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE promo_code_id = $1
	`
	tag, err := r.pool.Exec(ctx, query, promoCodeID, time.Now(), updatedBy)
	if err != nil {
		return fmt.Errorf("failed to deactivate promo code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

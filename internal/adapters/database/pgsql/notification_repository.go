package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/petalhub/florist_backend/internal/apperrors"
	"github.com/petalhub/florist_backend/internal/core/domain"
	portsrepo "github.com/petalhub/florist_backend/internal/core/ports/repositories"
)

type PgxNotificationRepository struct {
	pool PGXPool
}

// NewPgxNotificationRepository creates a new repository for notification data.
func NewPgxNotificationRepository(pool PGXPool) portsrepo.NotificationRepositoryFacade {
	return &PgxNotificationRepository{pool: pool}
}

func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, n domain.Notification) error {
	query := `
		INSERT INTO notifications (notification_id, user_id, type, message, order_id, read_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		n.NotificationID, n.UserID, n.Type, n.Message, n.OrderID, n.ReadAt, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	return nil
}

// ListNotifications retrieves notifications for a recipient, newest first.
// Broadcast notifications (empty user_id) are included for every recipient.
func (r *PgxNotificationRepository) ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit int) ([]domain.Notification, error) {
	query := `
		SELECT notification_id, user_id, type, message, order_id, read_at, created_at
		FROM notifications
		WHERE (user_id = $1 OR user_id = '')
	`
	if unreadOnly {
		query += " AND read_at IS NULL"
	}
	query += " ORDER BY created_at DESC LIMIT $2"

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Notification, error) {
		var n domain.Notification
		err := row.Scan(&n.NotificationID, &n.UserID, &n.Type, &n.Message, &n.OrderID, &n.ReadAt, &n.CreatedAt)
		return n, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan notifications: %w", err)
	}
	return notifications, nil
}

func (r *PgxNotificationRepository) MarkNotificationRead(ctx context.Context, notificationID string, userID string) error {
	query := `
		UPDATE notifications SET read_at = $3
		WHERE notification_id = $1 AND (user_id = $2 OR user_id = '')
	`
	tag, err := r.pool.Exec(ctx, query, notificationID, userID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

package repositories

import (
	"context"

	"github.com/petalhub/florist_backend/internal/core/domain"
)

// NotificationReader defines read operations for notifications
type NotificationReader interface {
	// ListNotifications retrieves notifications for a recipient, newest first.
	// When unreadOnly is set, read notifications are excluded.
	ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit int) ([]domain.Notification, error)
}

// NotificationWriter defines write operations for notifications
type NotificationWriter interface {
	// SaveNotification persists a new notification.
	SaveNotification(ctx context.Context, n domain.Notification) error

	// MarkNotificationRead stamps a notification as read.
	MarkNotificationRead(ctx context.Context, notificationID string, userID string) error
}

// NotificationRepositoryFacade combines all notification repository interfaces
type NotificationRepositoryFacade interface {
	NotificationReader
	NotificationWriter
}

package services

import (
	"context"

	"github.com/petalhub/florist_backend/internal/core/domain"
)

// NotificationSvcFacade manages the back-office notification feed.
type NotificationSvcFacade interface {
	// ListNotifications retrieves notifications for a recipient, newest first.
	ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit int) ([]domain.Notification, error)

	// MarkRead stamps a notification as read.
	MarkRead(ctx context.Context, notificationID string, userID string) error

	// Notify records a new notification.
	Notify(ctx context.Context, n domain.Notification) error
}

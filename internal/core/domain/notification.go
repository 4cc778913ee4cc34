package domain

import "time"

// NotificationType classifies back-office notifications.
type NotificationType string

const (
	NotificationOrderPlaced    NotificationType = "ORDER_PLACED"
	NotificationOrderCancelled NotificationType = "ORDER_CANCELLED"
	NotificationLowStock       NotificationType = "LOW_STOCK"
)

// Notification is a back-office event shown in the admin notification feed.
type Notification struct {
	NotificationID string           `json:"notificationID"`
	UserID         string           `json:"userID"` // recipient; empty means broadcast to admins
	Type           NotificationType `json:"type"`
	Message        string           `json:"message"`
	OrderID        string           `json:"orderID,omitempty"`
	ReadAt         *time.Time       `json:"readAt,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
}

package dto

import (
	"time"

	"github.com/petalhub/florist_backend/internal/core/domain"
)

// NotificationResponse is the API view of a back-office notification.
type NotificationResponse struct {
	NotificationID string     `json:"notificationID"`
	Type           string     `json:"type"`
	Message        string     `json:"message"`
	OrderID        string     `json:"orderID,omitempty"`
	ReadAt         *time.Time `json:"readAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// ToNotificationResponse converts a domain.Notification to its API view.
func ToNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		Type:           string(n.Type),
		Message:        n.Message,
		OrderID:        n.OrderID,
		ReadAt:         n.ReadAt,
		CreatedAt:      n.CreatedAt,
	}
}

// ToListNotificationResponse converts a slice of notifications.
func ToListNotificationResponse(notifications []domain.Notification) []NotificationResponse {
	res := make([]NotificationResponse, len(notifications))
	for i := range notifications {
		res[i] = ToNotificationResponse(&notifications[i])
	}
	return res
}

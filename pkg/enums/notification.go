package enums

import "fmt"

// NotificationType maps to the notification_type enum in Postgres.
type NotificationType string

const (
	NotificationTypeRequestApproved NotificationType = "request_approved"
	NotificationTypeRequestRejected NotificationType = "request_rejected"
	NotificationTypeQuoteReceived   NotificationType = "quote_received"
	NotificationTypeQuoteExpired    NotificationType = "quote_expired"
	NotificationTypeOrderReceived   NotificationType = "order_received"
	NotificationTypeLowStock        NotificationType = "low_stock"
)

var validNotificationTypes = []NotificationType{
	NotificationTypeRequestApproved,
	NotificationTypeRequestRejected,
	NotificationTypeQuoteReceived,
	NotificationTypeQuoteExpired,
	NotificationTypeOrderReceived,
	NotificationTypeLowStock,
}

// IsValid checks whether the given type matches the canonical enum.
func (n NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationType converts raw strings into NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}

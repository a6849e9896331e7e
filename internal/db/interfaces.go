package db

import (
	"context"

	"playpal-backend-go/internal/models"
)

// UserRepository defines the user document operations the notification
// workflows need.
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	// ClearFCMToken removes the fcmToken field. The document itself is kept.
	ClearFCMToken(ctx context.Context, userID string) error
}

// NotificationRepository appends in-app notification records.
type NotificationRepository interface {
	// Add creates a new record under users/{userID}/notifications and
	// returns its generated ID.
	Add(ctx context.Context, userID string, n *models.InAppNotification) (string, error)
}

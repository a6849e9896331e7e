package db

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"

	"playpal-backend-go/internal/models"
)

const notificationsCollection = "notifications"

// firestoreNotificationRepository implements NotificationRepository using Firestore.
type firestoreNotificationRepository struct {
	client *firestore.Client
}

// NewFirestoreNotificationRepository creates a new instance of firestoreNotificationRepository.
func NewFirestoreNotificationRepository(client *firestore.Client) NotificationRepository {
	return &firestoreNotificationRepository{client: client}
}

// Add appends n to users/{userID}/notifications. CreatedAt is filled in by
// Firestore through the serverTimestamp tag, Read is always written false.
func (r *firestoreNotificationRepository) Add(ctx context.Context, userID string, n *models.InAppNotification) (string, error) {
	if userID == "" {
		return "", errors.New("userID cannot be empty for Add operation")
	}
	if n == nil {
		return "", errors.New("notification cannot be nil for Add operation")
	}

	record := *n
	record.Read = false

	docRef, _, err := r.client.Collection(usersCollection).Doc(userID).
		Collection(notificationsCollection).Add(ctx, record)
	if err != nil {
		return "", fmt.Errorf("failed to add notification for user '%s': %w", userID, err)
	}
	n.ID = docRef.ID
	return docRef.ID, nil
}

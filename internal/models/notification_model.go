package models

import "time"

// Notification types, also used as the `type` key of push data.
const (
	NotificationTypeMatchApproved   = "matchApproved"
	NotificationTypePaymentDecision = "paymentDecision"
)

// InAppNotification is an entry of users/{uid}/notifications, rendered by the
// app's notification bell. Records are append-only from this backend.
type InAppNotification struct {
	ID        string    `json:"id" firestore:"-"` // Document ID, auto-generated
	Type      string    `json:"type" firestore:"type"`
	MatchID   string    `json:"matchId" firestore:"matchId"`
	Status    string    `json:"status" firestore:"status"`
	Title     string    `json:"title" firestore:"title"`
	Body      string    `json:"body" firestore:"body"`
	DeepLink  string    `json:"deepLink" firestore:"deepLink"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	Read      bool      `json:"read" firestore:"read"`
}

package core

import (
	"context"

	"playpal-backend-go/internal/models"
)

// MatchChange is an update observed on matches/{matchId}.
type MatchChange struct {
	MatchID       string
	Before        *models.Match // nil when the snapshot is absent
	After         *models.Match
	TransitionKey string
}

// PaymentChange is an update observed on matches/{matchId}/payments/{userId}.
type PaymentChange struct {
	MatchID       string
	UserID        string
	Before        *models.Payment
	After         *models.Payment
	TransitionKey string
}

// NotificationService reacts to document updates with push and in-app
// notifications.
type NotificationService interface {
	HandleMatchUpdate(ctx context.Context, change MatchChange) (Report, error)
	HandlePaymentUpdate(ctx context.Context, change PaymentChange) (Report, error)
}

// VerificationService marks test accounts as email-verified.
type VerificationService interface {
	// VerifyTestUser returns the email of the updated account.
	VerifyTestUser(ctx context.Context, uid string) (string, error)
}

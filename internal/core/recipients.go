package core

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"playpal-backend-go/internal/db"
)

// Recipient pairs a user with the delivery token read from their profile.
type Recipient struct {
	UserID string
	Token  string
}

// RecipientResolver maps user IDs to FCM tokens. It only reads.
type RecipientResolver struct {
	users db.UserRepository
}

// NewRecipientResolver creates a RecipientResolver over the users collection.
func NewRecipientResolver(users db.UserRepository) *RecipientResolver {
	return &RecipientResolver{users: users}
}

// tokenOf returns the user's token, or "" when the user document or the
// field is missing.
func (r *RecipientResolver) tokenOf(ctx context.Context, userID string) (string, error) {
	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	if user == nil {
		return "", nil
	}
	return user.FCMToken, nil
}

// ResolveBroadcast reads every user concurrently and waits for all of them.
// Users without a token are dropped; the rest keep the order of userIDs.
// Any read failure other than a missing document fails the whole call.
func (r *RecipientResolver) ResolveBroadcast(ctx context.Context, userIDs []string) ([]Recipient, error) {
	tokens := make([]string, len(userIDs))

	g, gctx := errgroup.WithContext(ctx)
	for i, uid := range userIDs {
		g.Go(func() error {
			token, err := r.tokenOf(gctx, uid)
			if err != nil {
				return fmt.Errorf("resolve token for user '%s': %w", uid, err)
			}
			tokens[i] = token
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	recipients := make([]Recipient, 0, len(userIDs))
	for i, uid := range userIDs {
		if tokens[i] == "" {
			continue
		}
		recipients = append(recipients, Recipient{UserID: uid, Token: tokens[i]})
	}
	return recipients, nil
}

// ResolveSingle resolves one user. ok is false when the user has no token.
func (r *RecipientResolver) ResolveSingle(ctx context.Context, userID string) (Recipient, bool, error) {
	token, err := r.tokenOf(ctx, userID)
	if err != nil {
		return Recipient{}, false, fmt.Errorf("resolve token for user '%s': %w", userID, err)
	}
	if token == "" {
		return Recipient{UserID: userID}, false, nil
	}
	return Recipient{UserID: userID, Token: token}, true, nil
}

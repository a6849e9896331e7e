package core

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"playpal-backend-go/internal/db"
)

// TokenJanitor removes tokens the gateway reported as permanently invalid.
type TokenJanitor struct {
	users  db.UserRepository
	logger *zap.Logger
}

// NewTokenJanitor creates a TokenJanitor.
func NewTokenJanitor(users db.UserRepository, logger *zap.Logger) *TokenJanitor {
	return &TokenJanitor{users: users, logger: logger}
}

// Sweep clears the fcmToken of every recipient whose result is TokenInvalid.
// Deletes run in parallel and are all awaited. A failed delete is logged
// and otherwise ignored. It returns how many tokens were cleared.
func (j *TokenJanitor) Sweep(ctx context.Context, results []DeliveryResult) int {
	var (
		wg      sync.WaitGroup
		cleared atomic.Int32
		seen    = make(map[string]struct{})
	)
	for _, r := range results {
		if !r.TokenInvalid() {
			continue
		}
		uid := r.Recipient.UserID
		// A user appears once even if listed twice in the match.
		if _, dup := seen[uid]; dup {
			continue
		}
		seen[uid] = struct{}{}

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := j.users.ClearFCMToken(ctx, uid); err != nil {
				j.logger.Warn("Failed to clear stale FCM token",
					zap.String("user_id", uid), zap.Error(err))
				return
			}
			cleared.Add(1)
			j.logger.Info("Cleared stale FCM token",
				zap.String("user_id", uid), zap.String("code", r.Code))
		}()
	}
	wg.Wait()
	return int(cleared.Load())
}

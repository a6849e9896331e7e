package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"playpal-backend-go/internal/db"
	"playpal-backend-go/internal/models"
)

// notificationService implements the NotificationService interface.
type notificationService struct {
	resolver      *RecipientResolver
	dispatcher    *Dispatcher
	janitor       *TokenJanitor
	notifications db.NotificationRepository
	guard         TransitionGuard
	scheme        string
	logger        *zap.Logger
}

// NewNotificationService creates a NotificationService. A nil guard
// disables duplicate suppression.
func NewNotificationService(
	users db.UserRepository,
	notifications db.NotificationRepository,
	gateway Gateway,
	guard TransitionGuard,
	deepLinkScheme string,
	logger *zap.Logger,
) NotificationService {
	if guard == nil {
		guard = NoopGuard{}
	}
	return &notificationService{
		resolver:      NewRecipientResolver(users),
		dispatcher:    NewDispatcher(gateway, logger),
		janitor:       NewTokenJanitor(users, logger),
		notifications: notifications,
		guard:         guard,
		scheme:        deepLinkScheme,
		logger:        logger,
	}
}

// claim asks the guard for the transition. An empty key is always granted
// without consulting the guard. Guard failures are logged and treated as
// granted. The returned release func is safe to call when nothing was claimed.
func (s *notificationService) claim(ctx context.Context, key string, logger *zap.Logger) (bool, func()) {
	noop := func() {}
	if key == "" {
		// Events without updateTime cannot be deduplicated.
		return true, noop
	}
	ok, err := s.guard.Claim(ctx, key)
	if err != nil {
		logger.Warn("Transition guard unavailable, continuing without it", zap.Error(err))
		return true, noop
	}
	if !ok {
		return false, noop
	}
	return true, func() {
		if err := s.guard.Release(ctx, key); err != nil {
			logger.Warn("Failed to release transition claim", zap.String("key", key), zap.Error(err))
		}
	}
}

// HandleMatchUpdate notifies every member with a token when a match becomes
// approved, then clears tokens the gateway rejected as invalid.
func (s *notificationService) HandleMatchUpdate(ctx context.Context, change MatchChange) (Report, error) {
	report := Report{InvocationID: uuid.NewString()}
	logger := s.logger.With(
		zap.String("invocation_id", report.InvocationID),
		zap.String("match_id", change.MatchID),
	)

	// Only a status change into approved is announced.
	report.Classification = DetectMatchTransition(change.Before, change.After)
	if report.Classification == NoChange {
		logger.Debug("Match update is not an approval")
		return report, nil
	}

	members := change.After.Members
	if len(members) == 0 {
		logger.Info("Approved match has no members")
		return report, nil
	}

	// Claim before reading users so a redelivery does no work at all.
	claimed, release := s.claim(ctx, change.TransitionKey, logger)
	if !claimed {
		report.Duplicate = true
		logger.Info("Match approval already handled", zap.String("transition", change.TransitionKey))
		return report, nil
	}

	recipients, err := s.resolver.ResolveBroadcast(ctx, members)
	if err != nil {
		// Nothing was sent yet, so a retry of this event may try again.
		release()
		return report, fmt.Errorf("resolve recipients for match '%s': %w", change.MatchID, err)
	}
	report.Recipients = len(recipients)
	if len(recipients) == 0 {
		logger.Info("No member of the match has a delivery token", zap.Int("members", len(members)))
		return report, nil
	}

	payload, err := BuildPayload(report.Classification, Subject{
		MatchID:    change.MatchID,
		MatchTitle: change.After.MatchTitle,
	}, s.scheme)
	if err != nil {
		return report, err
	}

	// One multicast for all members. The claim is kept even when the call
	// fails, since some messages may already have gone out.
	results, err := s.dispatcher.Broadcast(ctx, recipients, payload)
	if err != nil {
		return report, fmt.Errorf("dispatch match approval '%s': %w", change.MatchID, err)
	}
	report.tally(results)
	report.TokensCleared = s.janitor.Sweep(ctx, results)

	logger.Info("Match approval notified",
		zap.Int("recipients", report.Recipients),
		zap.Int("delivered", report.Delivered),
		zap.Int("failed", report.Failed),
		zap.Int("tokens_cleared", report.TokensCleared))
	return report, nil
}

// HandlePaymentUpdate notifies the paying user when an admin verifies or
// rejects their payment and records an in-app notification. The record is
// written whether or not the push went through.
func (s *notificationService) HandlePaymentUpdate(ctx context.Context, change PaymentChange) (Report, error) {
	report := Report{InvocationID: uuid.NewString()}
	logger := s.logger.With(
		zap.String("invocation_id", report.InvocationID),
		zap.String("match_id", change.MatchID),
		zap.String("user_id", change.UserID),
	)

	report.Classification = DetectPaymentTransition(change.Before, change.After)
	if report.Classification == NoChange {
		logger.Debug("Payment update is not a decision")
		return report, nil
	}

	claimed, release := s.claim(ctx, change.TransitionKey, logger)
	if !claimed {
		report.Duplicate = true
		logger.Info("Payment decision already handled", zap.String("transition", change.TransitionKey))
		return report, nil
	}

	// The payment document ID is the paying user's UID.
	recipient, ok, err := s.resolver.ResolveSingle(ctx, change.UserID)
	if err != nil {
		release()
		return report, err
	}
	if !ok {
		logger.Info("User has no delivery token, skipping payment notification")
		return report, nil
	}
	report.Recipients = 1

	payload, err := BuildPayload(report.Classification, Subject{
		MatchID:      change.MatchID,
		AdminComment: change.After.AdminComment,
	}, s.scheme)
	if err != nil {
		return report, err
	}

	// A failed push does not stop the in-app record below.
	result, sendErr := s.dispatcher.SendTo(ctx, recipient, payload)
	if sendErr != nil {
		logger.Error("Payment notification dispatch failed", zap.Error(sendErr))
		sendErr = fmt.Errorf("dispatch payment decision: %w", sendErr)
	} else {
		report.tally([]DeliveryResult{result})
		report.TokensCleared = s.janitor.Sweep(ctx, []DeliveryResult{result})
	}

	notification := &models.InAppNotification{
		Type:     models.NotificationTypePaymentDecision,
		MatchID:  change.MatchID,
		Status:   payload.Data["status"],
		Title:    payload.Title,
		Body:     payload.Body,
		DeepLink: payload.DeepLink(),
		Read:     false,
	}
	id, writeErr := s.notifications.Add(ctx, change.UserID, notification)
	if writeErr != nil {
		logger.Error("Failed to write in-app notification", zap.Error(writeErr))
		writeErr = fmt.Errorf("write in-app notification: %w", writeErr)
	}
	report.NotificationID = id

	logger.Info("Payment decision notified",
		zap.Stringer("classification", report.Classification),
		zap.Int("delivered", report.Delivered),
		zap.Int("tokens_cleared", report.TokensCleared),
		zap.String("notification_id", report.NotificationID))
	return report, errors.Join(sendErr, writeErr)
}

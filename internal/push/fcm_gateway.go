// Package push adapts Firebase Cloud Messaging to core.Gateway.
package push

import (
	"context"
	"errors"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"

	"playpal-backend-go/internal/core"
)

// MaxTokensPerCall is the FCM limit for one multicast request.
const MaxTokensPerCall = 500

// MulticastSender is the part of *messaging.Client the gateway uses.
type MulticastSender interface {
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

// FCMGateway sends payloads with FCM multicast requests.
type FCMGateway struct {
	sender MulticastSender
	logger *zap.Logger
}

// NewFCMGateway creates an FCMGateway.
func NewFCMGateway(sender MulticastSender, logger *zap.Logger) *FCMGateway {
	return &FCMGateway{sender: sender, logger: logger}
}

// toMessage renders p for the given tokens.
func toMessage(tokens []string, p core.Payload) *messaging.MulticastMessage {
	msg := &messaging.MulticastMessage{
		Tokens: tokens,
		Data:   p.Data,
		Notification: &messaging.Notification{
			Title: p.Title,
			Body:  p.Body,
		},
	}
	if p.AndroidPriority != "" {
		msg.Android = &messaging.AndroidConfig{Priority: p.AndroidPriority}
	}
	if p.APNSSound != "" {
		msg.APNS = &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: p.APNSSound},
			},
		}
	}
	return msg
}

// Failure codes for SDK error classes that never clear a token.
const (
	CodeInvalidArgument      = "messaging/invalid-argument"
	CodeMismatchedCredential = "messaging/mismatched-credential"
	CodeQuotaExceeded        = "messaging/quota-exceeded"
	CodeServerUnavailable    = "messaging/server-unavailable"
	CodeThirdPartyAuthError  = "messaging/third-party-auth-error"
	CodeInternalError        = "messaging/internal-error"
)

// errorCode maps an FCM send error onto a stable code string.
//
// Only UNREGISTERED is unambiguous about the token. FCM also answers
// INVALID_ARGUMENT for a malformed message (too large, bad field), and a
// malformed message fails every token of the batch alike. INVALID_ARGUMENT is
// therefore reported as an invalid token only when another token of the same
// batch was accepted, which proves the message itself was fine. Otherwise it
// gets CodeInvalidArgument and the token is left alone.
func errorCode(err error, batchAccepted bool) string {
	switch {
	case err == nil:
		return ""
	case messaging.IsUnregistered(err):
		return core.CodeRegistrationTokenNotRegistered
	case messaging.IsInvalidArgument(err):
		if batchAccepted {
			return core.CodeInvalidRegistrationToken
		}
		return CodeInvalidArgument
	case messaging.IsSenderIDMismatch(err):
		return CodeMismatchedCredential
	case messaging.IsQuotaExceeded(err):
		return CodeQuotaExceeded
	case messaging.IsUnavailable(err):
		return CodeServerUnavailable
	case messaging.IsThirdPartyAuthError(err):
		return CodeThirdPartyAuthError
	case messaging.IsInternal(err):
		return CodeInternalError
	default:
		return ""
	}
}

// SendMulticast sends p to tokens in chunks of MaxTokensPerCall. A chunk whose
// request fails marks all of its tokens failed with that error; the call only
// returns an error when every chunk failed.
func (g *FCMGateway) SendMulticast(ctx context.Context, tokens []string, p core.Payload) ([]core.SendResult, error) {
	results := make([]core.SendResult, 0, len(tokens))
	var firstErr error
	failedChunks, chunks := 0, 0

	for start := 0; start < len(tokens); start += MaxTokensPerCall {
		end := min(start+MaxTokensPerCall, len(tokens))
		chunk := tokens[start:end]
		chunks++

		// err is set only when the batch could not be sent at all. Per-token
		// failures come back in resp.Responses.
		resp, err := g.sender.SendEachForMulticast(ctx, toMessage(chunk, p))
		if err == nil && (resp == nil || len(resp.Responses) != len(chunk)) {
			err = core.ErrResultMismatch
		}
		if err != nil {
			g.logger.Warn("FCM multicast request failed",
				zap.Int("tokens", len(chunk)), zap.Error(err))
			failedChunks++
			if firstErr == nil {
				firstErr = err
			}
			for range chunk {
				results = append(results, core.SendResult{Code: errorCode(err, false), Err: err})
			}
			continue
		}

		// A single accepted token rules out a message-wide rejection.
		accepted := false
		for _, r := range resp.Responses {
			if r.Success {
				accepted = true
				break
			}
		}

		for _, r := range resp.Responses {
			if r.Success {
				results = append(results, core.SendResult{MessageID: r.MessageID})
				continue
			}
			sendErr := r.Error
			if sendErr == nil {
				sendErr = errors.New("fcm reported failure without an error")
			}
			results = append(results, core.SendResult{Code: errorCode(sendErr, accepted), Err: sendErr})
		}
		g.logger.Debug("FCM multicast sent",
			zap.Int("tokens", len(chunk)),
			zap.Int("success", resp.SuccessCount),
			zap.Int("failure", resp.FailureCount))
	}

	if chunks > 0 && failedChunks == chunks {
		return nil, firstErr
	}
	return results, nil
}

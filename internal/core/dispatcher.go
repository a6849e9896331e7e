package core

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Gateway error codes that mean the token will never work again.
const (
	CodeInvalidRegistrationToken       = "messaging/invalid-registration-token"
	CodeRegistrationTokenNotRegistered = "messaging/registration-token-not-registered"
)

// ErrResultMismatch is returned when the gateway reports a different number
// of results than tokens sent.
var ErrResultMismatch = errors.New("gateway result count does not match token count")

// SendResult is the gateway's verdict for one token. Err is nil on success;
// Code classifies the failure when the gateway knows it.
type SendResult struct {
	MessageID string
	Code      string
	Err       error
}

// Gateway sends one payload to many tokens in a single best-effort attempt.
// Results are positionally aligned with tokens. A returned error means the
// call as a whole failed and no per-token results are available.
type Gateway interface {
	SendMulticast(ctx context.Context, tokens []string, p Payload) ([]SendResult, error)
}

// DeliveryResult is a SendResult attributed back to its recipient.
type DeliveryResult struct {
	Recipient Recipient
	SendResult
}

// Delivered reports whether the gateway accepted the message.
func (r DeliveryResult) Delivered() bool {
	return r.Err == nil
}

// TokenInvalid reports whether the failure means the token should be removed.
func (r DeliveryResult) TokenInvalid() bool {
	if r.Err == nil {
		return false
	}
	return r.Code == CodeInvalidRegistrationToken || r.Code == CodeRegistrationTokenNotRegistered
}

// Dispatcher sends payloads through a Gateway. It never retries.
type Dispatcher struct {
	gateway Gateway
	logger  *zap.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(gateway Gateway, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{gateway: gateway, logger: logger}
}

// Broadcast sends p to every recipient in one gateway call and maps each
// result to the recipient at the same index.
func (d *Dispatcher) Broadcast(ctx context.Context, recipients []Recipient, p Payload) ([]DeliveryResult, error) {
	if len(recipients) == 0 {
		return nil, nil
	}

	tokens := make([]string, len(recipients))
	for i, r := range recipients {
		tokens[i] = r.Token
	}

	// Single attempt. Retrying is left to the platform's event redelivery.
	sent, err := d.gateway.SendMulticast(ctx, tokens, p)
	if err != nil {
		return nil, fmt.Errorf("send to %d token(s): %w", len(tokens), err)
	}
	// Results are matched by index, so a short answer cannot be attributed.
	if len(sent) != len(recipients) {
		return nil, fmt.Errorf("%w: sent %d, got %d", ErrResultMismatch, len(recipients), len(sent))
	}

	results := make([]DeliveryResult, len(recipients))
	for i := range recipients {
		results[i] = DeliveryResult{Recipient: recipients[i], SendResult: sent[i]}
		if sent[i].Err != nil {
			d.logger.Debug("Delivery failed",
				zap.String("user_id", recipients[i].UserID),
				zap.String("code", sent[i].Code),
				zap.Error(sent[i].Err))
		}
	}
	return results, nil
}

// SendTo sends p to a single recipient.
func (d *Dispatcher) SendTo(ctx context.Context, recipient Recipient, p Payload) (DeliveryResult, error) {
	results, err := d.Broadcast(ctx, []Recipient{recipient}, p)
	if err != nil {
		return DeliveryResult{}, err
	}
	return results[0], nil
}

package core

import (
	"errors"
	"fmt"

	"playpal-backend-go/internal/models"
)

// Push titles, one per notable classification.
const (
	TitleMatchApproved   = "Match Confirmed 🎉"
	TitlePaymentVerified = "Payment Verified ✅"
	TitlePaymentRejected = "Payment Rejected ❌"
)

// Delivery hints sent with every notification.
const (
	AndroidPriorityHigh = "high"
	APNSSoundDefault    = "default"
)

// ErrNothingToNotify is returned when a payload is requested for NoChange.
var ErrNothingToNotify = errors.New("classification does not produce a notification")

// Payload is a push notification independent of the gateway's wire format.
type Payload struct {
	Title           string
	Body            string
	Data            map[string]string
	AndroidPriority string
	APNSSound       string
}

// DeepLink returns the deep link carried in Data.
func (p Payload) DeepLink() string {
	return p.Data["deepLink"]
}

// Subject is the match/payment context a payload is rendered from.
type Subject struct {
	MatchID      string
	MatchTitle   string
	AdminComment string
}

// MatchDeepLink builds scheme://match/{matchId}.
func MatchDeepLink(scheme, matchID string) string {
	return fmt.Sprintf("%s://match/%s", scheme, matchID)
}

// PaymentsDeepLink builds scheme://match/{matchId}?tab=payments.
func PaymentsDeepLink(scheme, matchID string) string {
	return MatchDeepLink(scheme, matchID) + "?tab=payments"
}

// BuildPayload renders the notification for a notable classification.
func BuildPayload(class Classification, subject Subject, scheme string) (Payload, error) {
	p := Payload{
		AndroidPriority: AndroidPriorityHigh,
		APNSSound:       APNSSoundDefault,
	}

	switch class {
	case MatchApproved:
		p.Title = TitleMatchApproved
		if subject.MatchTitle != "" {
			p.Body = fmt.Sprintf("Your match \"%s\" is confirmed. Get ready!", subject.MatchTitle)
		} else {
			p.Body = "Your match is confirmed. Get ready!"
		}
		p.Data = map[string]string{
			"type":     models.NotificationTypeMatchApproved,
			"matchId":  subject.MatchID,
			"deepLink": MatchDeepLink(scheme, subject.MatchID),
		}
	case PaymentVerified, PaymentRejected:
		status := models.PaymentStatusVerified
		p.Title = TitlePaymentVerified
		p.Body = "Your payment was verified. See details."
		if class == PaymentRejected {
			status = models.PaymentStatusRejected
			p.Title = TitlePaymentRejected
			p.Body = "Your payment was rejected"
			if subject.AdminComment != "" {
				p.Body += ": " + subject.AdminComment
			}
		}
		p.Data = map[string]string{
			"type":     models.NotificationTypePaymentDecision,
			"status":   status,
			"matchId":  subject.MatchID,
			"deepLink": PaymentsDeepLink(scheme, subject.MatchID),
		}
	default:
		return Payload{}, fmt.Errorf("%w: %s", ErrNothingToNotify, class)
	}
	return p, nil
}

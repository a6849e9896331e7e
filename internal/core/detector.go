package core

import "playpal-backend-go/internal/models"

// Classification is the outcome of comparing two snapshots of a document.
type Classification int

const (
	NoChange Classification = iota
	MatchApproved
	PaymentVerified
	PaymentRejected
)

func (c Classification) String() string {
	switch c {
	case MatchApproved:
		return "MatchApproved"
	case PaymentVerified:
		return "PaymentVerified"
	case PaymentRejected:
		return "PaymentRejected"
	default:
		return "NoChange"
	}
}

// isApprovedStatus accepts the legacy "confirmed" spelling as approved.
func isApprovedStatus(status string) bool {
	return status == models.MatchStatusApproved || status == models.MatchStatusConfirmed
}

// DetectMatchTransition fires MatchApproved only on the edge into an approved
// status. Leaving approved, or any update that keeps the status, is NoChange.
func DetectMatchTransition(before, after *models.Match) Classification {
	if before == nil || after == nil {
		return NoChange
	}
	if before.Status == after.Status || !isApprovedStatus(after.Status) {
		return NoChange
	}
	return MatchApproved
}

// NormalizePaymentStatus maps the two payment document shapes onto one status.
//
// Precedence:
//  1. a string `status` field is used verbatim;
//  2. otherwise a boolean `verified` equal to true means "verified";
//  3. anything else (false, missing, wrong type) means "pending".
func NormalizePaymentStatus(p *models.Payment) string {
	if p == nil {
		return models.PaymentStatusPending
	}
	if s, ok := p.Status.(string); ok {
		return s
	}
	if v, ok := p.Verified.(bool); ok && v {
		return models.PaymentStatusVerified
	}
	return models.PaymentStatusPending
}

// DetectPaymentTransition fires when the normalized status changes into
// verified or rejected.
func DetectPaymentTransition(before, after *models.Payment) Classification {
	if before == nil || after == nil {
		return NoChange
	}
	prev, next := NormalizePaymentStatus(before), NormalizePaymentStatus(after)
	if prev == next {
		return NoChange
	}
	switch next {
	case models.PaymentStatusVerified:
		return PaymentVerified
	case models.PaymentStatusRejected:
		return PaymentRejected
	default:
		return NoChange
	}
}

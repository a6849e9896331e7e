package models

// Payment statuses after normalization.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusVerified = "verified"
	PaymentStatusRejected = "rejected"
)

// Payment represents a matches/{matchId}/payments/{userId} document.
//
// Status and Verified are kept untyped on purpose: older app builds wrote only
// a boolean `verified`, newer ones write a string `status`, and either may hold
// a value of the wrong type. core.NormalizePaymentStatus is the only place that
// interprets them.
type Payment struct {
	MatchID      string      `json:"matchId" firestore:"-"`
	UserID       string      `json:"userId" firestore:"-"`
	Status       interface{} `json:"status,omitempty" firestore:"status,omitempty"`
	Verified     interface{} `json:"verified,omitempty" firestore:"verified,omitempty"`
	AdminComment string      `json:"adminComment,omitempty" firestore:"adminComment,omitempty"`
}

package models

// Match statuses. MatchStatusConfirmed is the legacy spelling of approved and
// is treated as equivalent to it.
const (
	MatchStatusUnapproved = "unapproved"
	MatchStatusApproved   = "approved"
	MatchStatusConfirmed  = "confirmed"
)

// Match represents a matches/{matchId} document.
type Match struct {
	ID         string   `json:"id" firestore:"-"` // Document ID, taken from the trigger path
	Status     string   `json:"status" firestore:"status"`
	MatchTitle string   `json:"matchTitle" firestore:"matchTitle"`
	Members    []string `json:"members" firestore:"members"` // Ordered user IDs
}

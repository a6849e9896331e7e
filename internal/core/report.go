package core

// Outcomes reported for one workflow run.
const (
	OutcomeNoop     = "noop"
	OutcomeNotified = "notified"
)

// Report summarizes one workflow run.
type Report struct {
	InvocationID   string         `json:"invocationId"`
	Classification Classification `json:"classification"`
	Duplicate      bool           `json:"duplicate,omitempty"` // transition already claimed by an earlier delivery
	Recipients     int            `json:"recipients"`
	Delivered      int            `json:"delivered"`
	Failed         int            `json:"failed"`
	TokensCleared  int            `json:"tokensCleared"`
	NotificationID string         `json:"notificationId,omitempty"`
}

// Outcome is "notified" when anything reached the user, else "noop".
func (r Report) Outcome() string {
	if r.Delivered > 0 || r.NotificationID != "" {
		return OutcomeNotified
	}
	return OutcomeNoop
}

func (r *Report) tally(results []DeliveryResult) {
	for _, res := range results {
		if res.Delivered() {
			r.Delivered++
		} else {
			r.Failed++
		}
	}
}

// MarshalText renders the classification by name in JSON.
func (c Classification) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

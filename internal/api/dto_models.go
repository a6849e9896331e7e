package api

import "playpal-backend-go/internal/core"

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// TriggerResponse is returned by the trigger endpoints. Report is omitted
// when the workflow failed and the failure was absorbed.
type TriggerResponse struct {
	Outcome      string       `json:"outcome"`
	InvocationID string       `json:"invocationId,omitempty"`
	Report       *core.Report `json:"report,omitempty"`
}

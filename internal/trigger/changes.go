package trigger

import (
	"fmt"

	"playpal-backend-go/internal/core"
	"playpal-backend-go/internal/models"
)

// MatchChange converts an event on matches/{matchId} into the workflow input.
// An absent snapshot stays nil.
func (e *Event) MatchChange() (core.MatchChange, error) {
	params, err := e.Params(MatchDocumentPattern)
	if err != nil {
		return core.MatchChange{}, err
	}
	change := core.MatchChange{
		MatchID:       params["matchId"],
		TransitionKey: e.TransitionKey(),
	}
	if change.Before, err = decodeMatch(e.OldValue, change.MatchID); err != nil {
		return core.MatchChange{}, fmt.Errorf("oldValue: %w", err)
	}
	if change.After, err = decodeMatch(e.Value, change.MatchID); err != nil {
		return core.MatchChange{}, fmt.Errorf("value: %w", err)
	}
	return change, nil
}

// PaymentChange converts an event on matches/{matchId}/payments/{userId}
// into the workflow input.
func (e *Event) PaymentChange() (core.PaymentChange, error) {
	params, err := e.Params(PaymentDocumentPattern)
	if err != nil {
		return core.PaymentChange{}, err
	}
	change := core.PaymentChange{
		MatchID:       params["matchId"],
		UserID:        params["userId"],
		TransitionKey: e.TransitionKey(),
	}
	if change.Before, err = decodePayment(e.OldValue, change.MatchID, change.UserID); err != nil {
		return core.PaymentChange{}, fmt.Errorf("oldValue: %w", err)
	}
	if change.After, err = decodePayment(e.Value, change.MatchID, change.UserID); err != nil {
		return core.PaymentChange{}, fmt.Errorf("value: %w", err)
	}
	return change, nil
}

func decodeMatch(v Value, matchID string) (*models.Match, error) {
	if !v.Exists() {
		return nil, nil
	}
	var m models.Match
	if err := v.DecodeInto(&m); err != nil {
		return nil, err
	}
	m.ID = matchID
	return &m, nil
}

func decodePayment(v Value, matchID, userID string) (*models.Payment, error) {
	if !v.Exists() {
		return nil, nil
	}
	var p models.Payment
	if err := v.DecodeInto(&p); err != nil {
		return nil, err
	}
	p.MatchID = matchID
	p.UserID = userID
	return &p, nil
}

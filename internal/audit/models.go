// Package audit captures structured events for every session state
// transition. Events are append-only and transport-agnostic so stores and
// sinks can fan out.
package audit

import (
	"context"
	"time"
)

// Action names a state-machine step worth a durable trace.
type Action string

const (
	ActionSessionStarted       Action = "session_started"
	ActionSessionEvaluated     Action = "session_evaluated"
	ActionIncomeProofSubmitted Action = "income_proof_submitted"
	ActionSanctionIssued       Action = "sanction_issued"
	ActionOrderRecorded        Action = "order_recorded"
)

// Event is emitted from the engine to capture key actions.
type Event struct {
	Timestamp  time.Time `json:"timestamp"`
	SessionID  string    `json:"session_id"`
	CustomerID string    `json:"customer_id"`
	Action     Action    `json:"action"`
	Decision   string    `json:"decision,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListBySession(ctx context.Context, sessionID string) ([]Event, error)
}

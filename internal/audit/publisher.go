package audit

import (
	"context"
	"time"
)

// Sink receives events after they are persisted. Best-effort: a failing sink
// never fails the business operation.
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Publisher appends events to the store and fans out to optional sinks. It is
// append-only; consumers read through the store.
type Publisher struct {
	store Store
	sinks []Sink
}

// NewPublisher constructs a publisher over the given store and sinks.
func NewPublisher(store Store, sinks ...Sink) *Publisher {
	return &Publisher{store: store, sinks: sinks}
}

// Emit persists the event, stamping the time if unset, then offers it to each
// sink. Sink errors are swallowed; the store write is the source of truth.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := p.store.Append(ctx, event); err != nil {
		return err
	}
	for _, sink := range p.sinks {
		_ = sink.Publish(ctx, event)
	}
	return nil
}

// List returns the audit trail for one session.
func (p *Publisher) List(ctx context.Context, sessionID string) ([]Event, error) {
	return p.store.ListBySession(ctx, sessionID)
}

package audit

import (
	"context"
	"log/slog"
)

// Worker decouples event emission from a slow sink. Publish enqueues onto a
// bounded inbox and never blocks the caller; Run drains the inbox into the
// wrapped sink until the context is cancelled. When the inbox is full the
// event is dropped, the store copy written by the publisher is still the
// source of truth.
type Worker struct {
	sink   Sink
	inbox  chan Event
	logger *slog.Logger
}

func NewWorker(sink Sink, buffer int, logger *slog.Logger) *Worker {
	return &Worker{
		sink:   sink,
		inbox:  make(chan Event, buffer),
		logger: logger,
	}
}

// Publish enqueues the event for background delivery.
func (w *Worker) Publish(_ context.Context, event Event) error {
	select {
	case w.inbox <- event:
	default:
		w.logger.Warn("audit inbox full, dropping event",
			"session_id", event.SessionID,
			"action", string(event.Action),
		)
	}
	return nil
}

// Run delivers queued events to the sink until ctx is cancelled. Delivery
// errors are logged and skipped; the worker keeps draining.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Publish(ctx, event); err != nil {
				w.logger.Warn("audit sink publish failed",
					"session_id", event.SessionID,
					"action", string(event.Action),
					"error", err,
				)
			}
		}
	}
}

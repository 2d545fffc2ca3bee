package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"loanflow/pkg/platform/circuit"
	"loanflow/pkg/platform/sentinel"
)

// BreakerDirectory guards a directory behind a circuit breaker. When the
// breaker is open, lookups fail fast with ErrUnavailable instead of hammering
// a struggling upstream; after the breaker's cool-down a single trial lookup
// goes through, so recovery needs no operator action. A NotFound answer
// counts as a healthy call.
type BreakerDirectory struct {
	next    Directory
	breaker *circuit.Breaker
	logger  *slog.Logger
}

// WithBreaker wraps the directory with a circuit breaker.
func WithBreaker(next Directory, breaker *circuit.Breaker, logger *slog.Logger) *BreakerDirectory {
	return &BreakerDirectory{next: next, breaker: breaker, logger: logger}
}

func (d *BreakerDirectory) FindByID(ctx context.Context, customerID string) (Customer, error) {
	return d.guard(ctx, func() (Customer, error) {
		return d.next.FindByID(ctx, customerID)
	})
}

func (d *BreakerDirectory) FindByPhone(ctx context.Context, phone string) (Customer, error) {
	return d.guard(ctx, func() (Customer, error) {
		return d.next.FindByPhone(ctx, phone)
	})
}

func (d *BreakerDirectory) guard(ctx context.Context, lookup func() (Customer, error)) (Customer, error) {
	if !d.breaker.Allow() {
		return Customer{}, fmt.Errorf("directory %s circuit open: %w", d.breaker.Name(), sentinel.ErrUnavailable)
	}

	customer, err := lookup()
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		if _, change := d.breaker.RecordFailure(); change.Opened {
			d.logger.WarnContext(ctx, "directory circuit opened", "breaker", d.breaker.Name())
		}
		return Customer{}, err
	}

	if _, change := d.breaker.RecordSuccess(); change.Closed {
		d.logger.InfoContext(ctx, "directory circuit closed", "breaker", d.breaker.Name())
	}
	return customer, err
}

package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	events []Event
	err    error
}

func (s *recordingSink) Publish(_ context.Context, event Event) error {
	s.events = append(s.events, event)
	return s.err
}

func TestEmitPersistsAndFansOut(t *testing.T) {
	store := NewInMemoryStore()
	sink := &recordingSink{}
	p := NewPublisher(store, sink)
	ctx := context.Background()

	err := p.Emit(ctx, Event{
		SessionID:  "sess_abc",
		CustomerID: "CUST001",
		Action:     ActionSessionStarted,
	})
	require.NoError(t, err)

	events, err := store.ListBySession(ctx, "sess_abc")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.False(t, events[0].Timestamp.IsZero(), "timestamp stamped on emit")

	require.Len(t, sink.events, 1)
	assert.Equal(t, ActionSessionStarted, sink.events[0].Action)
}

// A failing sink never fails the emit; the store write is the source of truth.
func TestEmitSurvivesSinkFailure(t *testing.T) {
	store := NewInMemoryStore()
	p := NewPublisher(store, &recordingSink{err: errors.New("broker down")})
	ctx := context.Background()

	err := p.Emit(ctx, Event{SessionID: "sess_abc", Action: ActionSessionEvaluated})
	require.NoError(t, err)

	events, err := store.ListBySession(ctx, "sess_abc")
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestListBySessionScopesTrail(t *testing.T) {
	store := NewInMemoryStore()
	p := NewPublisher(store)
	ctx := context.Background()

	require.NoError(t, p.Emit(ctx, Event{SessionID: "sess_a", Action: ActionSessionStarted}))
	require.NoError(t, p.Emit(ctx, Event{SessionID: "sess_a", Action: ActionSessionEvaluated}))
	require.NoError(t, p.Emit(ctx, Event{SessionID: "sess_b", Action: ActionSessionStarted}))

	events, err := p.List(ctx, "sess_a")
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

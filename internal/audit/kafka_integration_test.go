//go:build integration

package audit_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"loanflow/internal/audit"
	"loanflow/pkg/testutil/containers"
)

const testTopic = "loanflow.audit.test"

func TestKafkaSinkPublishesEvents(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	broker := containers.NewKafkaBroker(t)
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sink, err := audit.NewKafkaSink([]string{broker}, testTopic, logger)
	if err != nil {
		t.Fatalf("failed to create kafka sink: %v", err)
	}

	events := []audit.Event{
		{SessionID: "sess_itest", CustomerID: "CUST001", Action: audit.ActionSessionStarted, Timestamp: time.Now()},
		{SessionID: "sess_itest", CustomerID: "CUST001", Action: audit.ActionSessionEvaluated, Decision: "approved", Timestamp: time.Now()},
		{SessionID: "sess_itest", CustomerID: "CUST001", Action: audit.ActionSanctionIssued, Timestamp: time.Now()},
	}
	for _, event := range events {
		if err := sink.Publish(ctx, event); err != nil {
			t.Fatalf("failed to publish event: %v", err)
		}
	}
	if err := sink.Close(ctx); err != nil {
		t.Fatalf("failed to flush sink: %v", err)
	}

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker),
		kgo.ConsumeTopics(testTopic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	if err != nil {
		t.Fatalf("failed to create consumer: %v", err)
	}
	defer consumer.Close()

	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var records []*kgo.Record
	for len(records) < len(events) {
		fetches := consumer.PollFetches(fetchCtx)
		if err := fetches.Err(); err != nil {
			t.Fatalf("failed to fetch records: %v", err)
		}
		records = append(records, fetches.Records()...)
	}

	if len(records) != len(events) {
		t.Fatalf("expected %d records, got %d", len(events), len(records))
	}
	for i, record := range records {
		if string(record.Key) != "sess_itest" {
			t.Fatalf("record %d: expected key sess_itest, got %q", i, record.Key)
		}
		var got audit.Event
		if err := json.Unmarshal(record.Value, &got); err != nil {
			t.Fatalf("record %d: failed to decode payload: %v", i, err)
		}
		if got.Action != events[i].Action {
			t.Fatalf("record %d: expected action %s, got %s", i, events[i].Action, got.Action)
		}
		if got.CustomerID != "CUST001" {
			t.Fatalf("record %d: unexpected customer id %q", i, got.CustomerID)
		}
	}
}

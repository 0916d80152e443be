package worker

import (
	"context"
	"testing"

	"brronson/internal/logging"
	"brronson/internal/metrics"
	"brronson/internal/ops"
	"brronson/internal/queue"
	"brronson/internal/testsupport"
)

// A shutdown cancels the run context while a job may still be in flight.
// The finished job's outcome must be persisted anyway.
func TestExecutePersistsAfterContextCancel(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	engine := ops.NewEngine(cfg, logging.NewNop(), metrics.Nop{})
	w := New(cfg, store, engine, nil)

	job, err := store.Enqueue(context.Background(), ops.OpCompareDirectories, nil)
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	claimed, err := store.ClaimNextPending(context.Background())
	if err != nil {
		t.Fatalf("ClaimNextPending: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.execute(ctx, claimed)

	got, err := store.GetByID(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != queue.StatusCompleted {
		t.Fatalf("status = %s (%s), want completed", got.Status, got.ErrorMessage)
	}
	if len(got.Report) == 0 {
		t.Fatal("completed job carries no report")
	}
}

func TestExecutePersistsFailureAfterContextCancel(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	engine := ops.NewEngine(cfg, logging.NewNop(), metrics.Nop{})
	w := New(cfg, store, engine, nil)

	job, err := store.Enqueue(context.Background(), ops.OpPruneEmpty,
		[]byte(`{"batchSize":-1}`))
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	claimed, err := store.ClaimNextPending(context.Background())
	if err != nil {
		t.Fatalf("ClaimNextPending: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.execute(ctx, claimed)

	got, err := store.GetByID(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != queue.StatusFailed || got.ErrorMessage == "" {
		t.Fatalf("job = %+v, want failed with a message", got)
	}
}

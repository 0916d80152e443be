package queue_test

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"brronson/internal/queue"
)

func openStore(t *testing.T) *queue.Store {
	t.Helper()
	store, err := queue.OpenPath(filepath.Join(t.TempDir(), "jobs.db"))
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestEnqueueAndGet(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	job, err := store.Enqueue(ctx, "prune-empty", json.RawMessage(`{"batchSize":10}`))
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if job.ID == "" || job.Status != queue.StatusPending {
		t.Fatalf("job = %+v", job)
	}
	if job.StartedAt != nil || job.FinishedAt != nil {
		t.Fatal("fresh job must not carry start or finish timestamps")
	}

	got, err := store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Operation != "prune-empty" || string(got.Params) != `{"batchSize":10}` {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	if _, err := store.GetByID(ctx, "nope"); !errors.Is(err, queue.ErrNotFound) {
		t.Fatalf("missing job: got %v, want ErrNotFound", err)
	}
}

func TestClaimNextPendingOrder(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first, err := store.Enqueue(ctx, "prune-empty", nil)
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if _, err := store.Enqueue(ctx, "clean-unwanted", nil); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	claimed, err := store.ClaimNextPending(ctx)
	if err != nil {
		t.Fatalf("ClaimNextPending: %v", err)
	}
	if claimed.ID != first.ID {
		t.Fatalf("claimed %s, want oldest %s", claimed.ID, first.ID)
	}
	if claimed.Status != queue.StatusRunning || claimed.StartedAt == nil {
		t.Fatalf("claimed job = %+v", claimed)
	}

	if _, err := store.ClaimNextPending(ctx); err != nil {
		t.Fatalf("second claim: %v", err)
	}
	if _, err := store.ClaimNextPending(ctx); !errors.Is(err, queue.ErrNoPending) {
		t.Fatalf("drained queue: got %v, want ErrNoPending", err)
	}
}

func TestCompleteAndFail(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	job, err := store.Enqueue(ctx, "prune-empty", nil)
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if err := store.Complete(ctx, job.ID, json.RawMessage(`{"acted":3}`)); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	done, err := store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if done.Status != queue.StatusCompleted || string(done.Report) != `{"acted":3}` || done.FinishedAt == nil {
		t.Fatalf("completed job = %+v", done)
	}

	other, err := store.Enqueue(ctx, "clean-unwanted", nil)
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if err := store.Fail(ctx, other.ID, "root vanished"); err != nil {
		t.Fatalf("Fail: %v", err)
	}
	failed, err := store.GetByID(ctx, other.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if failed.Status != queue.StatusFailed || failed.ErrorMessage != "root vanished" {
		t.Fatalf("failed job = %+v", failed)
	}

	if err := store.Complete(ctx, "nope", nil); !errors.Is(err, queue.ErrNotFound) {
		t.Fatalf("finish missing job: got %v, want ErrNotFound", err)
	}
}

func TestListAndStats(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := store.Enqueue(ctx, "prune-empty", nil); err != nil {
			t.Fatalf("Enqueue: %v", err)
		}
	}
	claimed, err := store.ClaimNextPending(ctx)
	if err != nil {
		t.Fatalf("ClaimNextPending: %v", err)
	}
	if err := store.Complete(ctx, claimed.ID, nil); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	all, err := store.List(ctx, "", 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("list length = %d, want 3", len(all))
	}

	pending, err := store.List(ctx, queue.StatusPending, 1)
	if err != nil {
		t.Fatalf("List pending: %v", err)
	}
	if len(pending) != 1 || pending[0].Status != queue.StatusPending {
		t.Fatalf("pending = %+v", pending)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats[queue.StatusPending] != 2 || stats[queue.StatusCompleted] != 1 {
		t.Fatalf("stats = %v", stats)
	}
	// Every status appears even when zero.
	if _, ok := stats[queue.StatusFailed]; !ok {
		t.Fatal("stats missing zero-valued status")
	}
}

func TestRecoverStuck(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	job, err := store.Enqueue(ctx, "prune-empty", nil)
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if _, err := store.ClaimNextPending(ctx); err != nil {
		t.Fatalf("ClaimNextPending: %v", err)
	}

	recovered, err := store.RecoverStuck(ctx)
	if err != nil {
		t.Fatalf("RecoverStuck: %v", err)
	}
	if recovered != 1 {
		t.Fatalf("recovered = %d, want 1", recovered)
	}
	got, err := store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != queue.StatusPending || got.StartedAt != nil {
		t.Fatalf("recovered job = %+v", got)
	}
}

func TestPruneFinished(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	old, err := store.Enqueue(ctx, "prune-empty", nil)
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if err := store.Complete(ctx, old.ID, nil); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	keep, err := store.Enqueue(ctx, "clean-unwanted", nil)
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	// Zero cutoff means "finished before now", which covers the completed
	// job but never the still-pending one.
	time.Sleep(10 * time.Millisecond)
	pruned, err := store.PruneFinished(ctx, 0)
	if err != nil {
		t.Fatalf("PruneFinished: %v", err)
	}
	if pruned != 1 {
		t.Fatalf("pruned = %d, want 1", pruned)
	}
	if _, err := store.GetByID(ctx, old.ID); !errors.Is(err, queue.ErrNotFound) {
		t.Fatalf("old job survived: %v", err)
	}
	if _, err := store.GetByID(ctx, keep.ID); err != nil {
		t.Fatalf("pending job pruned: %v", err)
	}
}

package worker_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"brronson/internal/logging"
	"brronson/internal/metrics"
	"brronson/internal/ops"
	"brronson/internal/queue"
	"brronson/internal/testsupport"
	"brronson/internal/worker"
)

func newWorker(t *testing.T) (*worker.Worker, *queue.Store, string) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	cfg.Workflow.JobPollInterval = 1
	store := testsupport.MustOpenStore(t, cfg)
	engine := ops.NewEngine(cfg, logging.NewNop(), metrics.Nop{})
	return worker.New(cfg, store, engine, nil), store, cfg.Paths.TargetDir
}

func waitForTerminal(t *testing.T, store *queue.Store, id string) *queue.Job {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		job, err := store.GetByID(context.Background(), id)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if job.Status.Terminal() {
			return job
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("job %s never reached a terminal status", id)
	return nil
}

func TestWorkerCompletesQueuedJob(t *testing.T) {
	w, store, targetDir := newWorker(t)
	testsupport.MkdirAll(t, filepath.Join(targetDir, "empty"))

	job, err := store.Enqueue(context.Background(), ops.OpPruneEmpty,
		json.RawMessage(`{"batchSize":100,"dryRun":false}`))
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	w.Start(context.Background())
	defer w.Stop()

	done := waitForTerminal(t, store, job.ID)
	if done.Status != queue.StatusCompleted {
		t.Fatalf("status = %s (%s), want completed", done.Status, done.ErrorMessage)
	}
	var report ops.PruneReport
	if err := json.Unmarshal(done.Report, &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Acted != 1 {
		t.Fatalf("acted = %d, want 1", report.Acted)
	}
	if testsupport.Exists(filepath.Join(targetDir, "empty")) {
		t.Fatal("job ran but folder survives")
	}
}

func TestWorkerRecordsFailure(t *testing.T) {
	w, store, _ := newWorker(t)

	job, err := store.Enqueue(context.Background(), ops.OpPruneEmpty, json.RawMessage(`{"batchSize":0}`))
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	w.Start(context.Background())
	defer w.Stop()

	done := waitForTerminal(t, store, job.ID)
	if done.Status != queue.StatusFailed {
		t.Fatalf("status = %s, want failed", done.Status)
	}
	if done.ErrorMessage == "" {
		t.Fatal("failed job carries no error message")
	}
}

func TestWorkerStartStopIdempotent(t *testing.T) {
	w, _, _ := newWorker(t)
	w.Start(context.Background())
	w.Start(context.Background())
	w.Stop()
	w.Stop()
}

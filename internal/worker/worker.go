package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"brronson/internal/config"
	"brronson/internal/logging"
	"brronson/internal/ops"
	"brronson/internal/queue"
)

// Worker drains the job queue on a background goroutine: claim the oldest
// pending job, run its operation through the engine, persist the report or
// the failure, repeat until the queue is empty, then sleep one poll
// interval.
type Worker struct {
	store        *queue.Store
	engine       *ops.Engine
	logger       *slog.Logger
	pollInterval time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New constructs a worker over the given store and engine.
func New(cfg *config.Config, store *queue.Store, engine *ops.Engine, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Worker{
		store:        store,
		engine:       engine,
		logger:       logger.With(logging.String("component", "worker")),
		pollInterval: time.Duration(cfg.Workflow.JobPollInterval) * time.Second,
	}
}

// Start launches the polling loop. Calling Start on a running worker is a
// no-op.
func (w *Worker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	w.running = true
	w.cancel = cancel
	w.done = make(chan struct{})
	go w.run(runCtx)
}

// Stop cancels the loop and waits for the in-flight job, if any, to finish.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	cancel := w.cancel
	done := w.done
	w.running = false
	w.mu.Unlock()

	cancel()
	<-done
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.done)
	w.logger.Info("worker started", logging.Duration("poll_interval", w.pollInterval))
	for {
		if err := w.drain(ctx); err != nil {
			w.logger.Error("queue drain failed", logging.Error(err))
		}
		select {
		case <-ctx.Done():
			w.logger.Info("worker stopped")
			return
		case <-time.After(w.pollInterval):
		}
	}
}

// drain processes pending jobs until the queue is empty or the context is
// canceled.
func (w *Worker) drain(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		job, err := w.store.ClaimNextPending(ctx)
		if errors.Is(err, queue.ErrNoPending) {
			return nil
		}
		if err != nil {
			return err
		}
		w.execute(ctx, job)
	}
}

func (w *Worker) execute(ctx context.Context, job *queue.Job) {
	logger := w.logger.With(
		logging.String("job_id", job.ID),
		logging.String("operation", job.Operation),
	)
	logger.Info("job started")

	// Stop cancels ctx while a job may still be running. The outcome of a
	// finished mutation must reach the store regardless, or the job strands
	// in running and gets re-executed on the next start.
	persistCtx := context.WithoutCancel(ctx)

	report, err := w.engine.Run(ctx, job.Operation, job.Params)
	if err != nil {
		logger.Error("job failed", logging.Error(err))
		if failErr := w.store.Fail(persistCtx, job.ID, err.Error()); failErr != nil {
			logger.Error("record job failure", logging.Error(failErr))
		}
		return
	}

	payload, err := json.Marshal(report)
	if err != nil {
		err = fmt.Errorf("encode report: %w", err)
		logger.Error("job failed", logging.Error(err))
		if failErr := w.store.Fail(persistCtx, job.ID, err.Error()); failErr != nil {
			logger.Error("record job failure", logging.Error(failErr))
		}
		return
	}
	if err := w.store.Complete(persistCtx, job.ID, payload); err != nil {
		logger.Error("record job completion", logging.Error(err))
		return
	}
	logger.Info("job completed")
}

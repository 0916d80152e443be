package daemon

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"

	"log/slog"

	"github.com/gofrs/flock"

	"brronson/internal/config"
	"brronson/internal/logging"
	"brronson/internal/metrics"
	"brronson/internal/ops"
	"brronson/internal/preflight"
	"brronson/internal/queue"
	"brronson/internal/worker"
)

// Version is stamped by the build; the default marks ad hoc builds.
var Version = "dev"

// Daemon owns the long-running process: the job store, the worker, the HTTP
// server, and a flock-based lock that enforces single-instance execution.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *queue.Store
	engine   *ops.Engine
	worker   *worker.Worker
	recorder *metrics.Recorder
	server   *apiServer

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
}

// New constructs a daemon with initialized dependencies. The job store is
// opened here so construction fails fast on an unusable data directory.
func New(cfg *config.Config, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("daemon requires config")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	store, err := queue.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open job store: %w", err)
	}

	recorder := metrics.NewRecorder()
	engine := ops.NewEngine(cfg, logger, recorder)
	lockPath := filepath.Join(cfg.Paths.DataDir, "brronsond.lock")

	d := &Daemon{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		engine:   engine,
		worker:   worker.New(cfg, store, engine, logger),
		recorder: recorder,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}
	d.server = newAPIServer(cfg, d, logger)
	return d, nil
}

// Start acquires the lock, verifies filesystem readiness, recovers jobs
// stranded by a previous crash, and launches the worker and HTTP server.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another brronson daemon instance is already running")
	}

	checks := preflight.RunAll(d.cfg)
	for _, check := range checks {
		if check.Passed {
			d.logger.Info("preflight check passed",
				logging.String("check", check.Name), logging.String("detail", check.Detail))
			continue
		}
		d.logger.Error("preflight check failed",
			logging.String("check", check.Name), logging.String("detail", check.Detail))
	}
	if !preflight.Passed(checks) {
		_ = d.lock.Unlock()
		return fmt.Errorf("preflight failed: %s", summarizeFailures(checks))
	}

	recovered, err := d.store.RecoverStuck(ctx)
	if err != nil {
		_ = d.lock.Unlock()
		return fmt.Errorf("recover stuck jobs: %w", err)
	}
	if recovered > 0 {
		d.logger.Warn("requeued jobs stranded by previous shutdown", logging.Int("count", recovered))
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	d.worker.Start(runCtx)
	if err := d.server.start(runCtx); err != nil {
		d.worker.Stop()
		cancel()
		_ = d.lock.Unlock()
		return err
	}

	d.running.Store(true)
	d.logger.Info("brronson daemon started", logging.String("lock", d.lockPath))
	return nil
}

// Stop stops background processing and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.server.stop()
	d.worker.Stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("brronson daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

func summarizeFailures(checks []preflight.Result) string {
	var failed []string
	for _, check := range checks {
		if !check.Passed {
			failed = append(failed, fmt.Sprintf("%s: %s", check.Name, check.Detail))
		}
	}
	return strings.Join(failed, "; ")
}

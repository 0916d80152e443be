package ops

import (
	"time"

	"log/slog"

	"brronson/internal/classify"
	"brronson/internal/config"
	"brronson/internal/logging"
	"brronson/internal/metrics"
	"brronson/internal/pathguard"
)

// Engine composes the scanners and the batch mutator into the concrete
// reconciliation operations. It is stateless across calls: every operation
// re-reads current disk state, which is what makes repeated invocation
// converge.
type Engine struct {
	cfg    *config.Config
	guard  *pathguard.Guard
	logger *slog.Logger
	sink   metrics.Sink
}

// NewEngine constructs an engine around the configured defaults. A nil
// logger or sink falls back to no-op implementations.
func NewEngine(cfg *config.Config, logger *slog.Logger, sink metrics.Sink) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	if sink == nil {
		sink = metrics.Nop{}
	}
	return &Engine{
		cfg:    cfg,
		guard:  pathguard.New(cfg.Safety.AllowedRoots...),
		logger: logger,
		sink:   sink,
	}
}

func (e *Engine) subtitleExts(override []string) classify.ExtensionSet {
	if len(override) > 0 {
		return classify.NewExtensionSet(override)
	}
	return classify.NewExtensionSet(e.cfg.Rules.SubtitleExtensions)
}

func (e *Engine) movieExts(override []string) classify.ExtensionSet {
	if len(override) > 0 {
		return classify.NewExtensionSet(override)
	}
	return classify.NewExtensionSet(e.cfg.Rules.MovieExtensions)
}

func (e *Engine) patterns(override []string) []string {
	if len(override) > 0 {
		return override
	}
	return e.cfg.Rules.UnwantedPatterns
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

// observe emits the standard per-operation duration sample.
func (e *Engine) observe(operation string, labels metrics.Labels, start time.Time) {
	e.sink.ObserveDuration(operation+"_duration_seconds", labels, time.Since(start))
}

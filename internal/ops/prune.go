package ops

import (
	"context"
	"time"

	"brronson/internal/batch"
	"brronson/internal/logging"
	"brronson/internal/metrics"
	"brronson/internal/scan"
)

// PruneRequest asks for empty folders beneath Root to be removed.
type PruneRequest struct {
	// Root defaults to the configured target directory.
	Root      string `json:"root,omitempty"`
	DryRun    bool   `json:"dryRun"`
	BatchSize int    `json:"batchSize"`
}

// PruneReport is the outcome of one prune-empty pass.
type PruneReport struct {
	Root      string `json:"root"`
	DryRun    bool   `json:"dryRun"`
	BatchSize int    `json:"batchSize"`
	BatchFields
	EmptyFolders []string `json:"emptyFolders"`
	ReadErrors   []string `json:"readErrors,omitempty"`
}

// PruneEmpty finds and removes empty folders beneath the root, deepest
// first, so parents emptied by this same pass are prunable within it. The
// root itself is never removed.
func (e *Engine) PruneEmpty(ctx context.Context, req PruneRequest) (*PruneReport, error) {
	start := time.Now()
	if req.BatchSize <= 0 {
		return nil, Wrap(ErrValidation, "prune-empty", "batch size must be positive", nil)
	}

	root, err := e.guard.Validate(orDefault(req.Root, e.cfg.Paths.TargetDir))
	if err != nil {
		return nil, err
	}
	logger := e.logger.With(logging.String("operation", "prune-empty"), logging.String("root", root))

	candidates, readErrors := scan.EmptyFolders(root)
	logger.Info("empty folder scan completed", logging.Int("found", len(candidates)))

	mutator := batch.Mutator{Root: root, BatchSize: req.BatchSize, DryRun: req.DryRun, Logger: logger}
	res := mutator.Run(candidates, removeMutation{})

	labels := metrics.Labels{"root": root, "dry_run": boolLabel(req.DryRun)}
	e.sink.IncCounter("prune_empty_found_total", labels, float64(res.Found))
	e.sink.IncCounter("prune_empty_removed_total", labels, float64(res.Acted))
	e.sink.IncCounter("prune_empty_errors_total", labels, float64(res.Errored))
	e.observe("prune_empty", labels, start)

	report := &PruneReport{
		Root:         root,
		DryRun:       req.DryRun,
		BatchSize:    req.BatchSize,
		BatchFields:  batchFields(res),
		EmptyFolders: candidatePaths(candidates),
		ReadErrors:   readErrors,
	}
	return report, nil
}

func candidatePaths(candidates []scan.Candidate) []string {
	paths := make([]string, 0, len(candidates))
	for _, c := range candidates {
		paths = append(paths, c.Path)
	}
	return paths
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

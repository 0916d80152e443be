package ops

import (
	"context"
	"path/filepath"
	"sort"
	"time"

	"brronson/internal/batch"
	"brronson/internal/logging"
	"brronson/internal/metrics"
	"brronson/internal/scan"
)

// RelocateRequest asks for subtree names present in Source but absent from
// Target to be moved into Target.
type RelocateRequest struct {
	// Source defaults to the configured cleanup directory.
	Source string `json:"source,omitempty"`
	// Target defaults to the configured target directory.
	Target    string `json:"target,omitempty"`
	DryRun    bool   `json:"dryRun"`
	BatchSize int    `json:"batchSize"`
	// SkipCleanup disables the clean-unwanted pre-pass over the source.
	SkipCleanup bool `json:"skipCleanup"`
	// Patterns overrides the pre-pass patterns.
	Patterns []string `json:"patterns,omitempty"`
}

// RelocateReport is the outcome of one relocate-non-duplicates pass.
type RelocateReport struct {
	Source    string `json:"source"`
	Target    string `json:"target"`
	DryRun    bool   `json:"dryRun"`
	BatchSize int    `json:"batchSize"`
	BatchFields
	Duplicates    []string `json:"duplicates"`
	NonDuplicates []string `json:"nonDuplicates"`
	// CleanupReport is the pre-pass result; CleanupError carries its
	// failure when the relocation proceeded anyway.
	CleanupReport *CleanReport `json:"cleanupReport,omitempty"`
	CleanupError  string       `json:"cleanupError,omitempty"`
}

// RelocateNonDuplicates moves first-level subdirectories that exist in the
// source but not in the target. Names present in both are duplicates:
// reported, never touched. By default a clean-unwanted pass runs over the
// source first; its failure is reported but does not stop the relocation.
func (e *Engine) RelocateNonDuplicates(ctx context.Context, req RelocateRequest) (*RelocateReport, error) {
	start := time.Now()
	if req.BatchSize <= 0 {
		return nil, Wrap(ErrValidation, "relocate-non-duplicates", "batch size must be positive", nil)
	}

	report := &RelocateReport{DryRun: req.DryRun, BatchSize: req.BatchSize}

	if !req.SkipCleanup {
		cleanReport, err := e.CleanUnwanted(ctx, CleanRequest{
			Root:      req.Source,
			Patterns:  req.Patterns,
			DryRun:    req.DryRun,
			BatchSize: req.BatchSize,
		})
		if err != nil {
			e.logger.Warn("cleanup pre-pass failed, continuing with relocation", logging.Error(err))
			report.CleanupError = err.Error()
		} else {
			report.CleanupReport = cleanReport
		}
	}

	source, err := e.guard.Validate(orDefault(req.Source, e.cfg.Paths.CleanupDir))
	if err != nil {
		return nil, err
	}
	target, err := e.guard.Validate(orDefault(req.Target, e.cfg.Paths.TargetDir))
	if err != nil {
		return nil, err
	}
	report.Source = source
	report.Target = target
	logger := e.logger.With(
		logging.String("operation", "relocate-non-duplicates"),
		logging.String("source", source),
		logging.String("target", target),
	)

	sourceNames, err := scan.Subdirectories(source)
	if err != nil {
		return nil, Wrap(ErrOperation, "relocate-non-duplicates", "list source", err)
	}
	targetNames, err := scan.Subdirectories(target)
	if err != nil {
		return nil, Wrap(ErrOperation, "relocate-non-duplicates", "list target", err)
	}

	duplicates, nonDuplicates := splitByPresence(sourceNames, targetNames)
	report.Duplicates = duplicates
	report.NonDuplicates = nonDuplicates
	logger.Info("relocation analysis",
		logging.Int("duplicates", len(duplicates)),
		logging.Int("non_duplicates", len(nonDuplicates)))

	candidates := make([]scan.Candidate, 0, len(nonDuplicates))
	dest := make(map[string]string, len(nonDuplicates))
	for _, name := range nonDuplicates {
		path := filepath.Join(source, name)
		candidates = append(candidates, scan.Candidate{Path: path, Rule: scan.RuleNonDuplicate})
		dest[path] = filepath.Join(target, name)
	}

	mutator := batch.Mutator{Root: source, BatchSize: req.BatchSize, DryRun: req.DryRun, Logger: logger}
	res := mutator.Run(candidates, moveMutation{dest: dest})
	report.BatchFields = batchFields(res)

	labels := metrics.Labels{"source": source, "target": target, "dry_run": boolLabel(req.DryRun)}
	e.sink.IncCounter("relocate_found_total", labels, float64(res.Found))
	e.sink.IncCounter("relocate_moved_total", labels, float64(res.Acted))
	e.sink.IncCounter("relocate_errors_total", labels, float64(res.Errored))
	e.sink.SetGauge("relocate_duplicates", labels, float64(len(duplicates)))
	e.observe("relocate_non_duplicates", labels, start)

	return report, nil
}

// splitByPresence partitions source names into those present in target
// (duplicates) and those absent (non-duplicates), both sorted so repeated
// re-entrant calls process an unchanged set in identical order.
func splitByPresence(sourceNames, targetNames []string) (duplicates, nonDuplicates []string) {
	targetSet := make(map[string]struct{}, len(targetNames))
	for _, name := range targetNames {
		targetSet[name] = struct{}{}
	}
	duplicates = []string{}
	nonDuplicates = []string{}
	for _, name := range sourceNames {
		if _, ok := targetSet[name]; ok {
			duplicates = append(duplicates, name)
		} else {
			nonDuplicates = append(nonDuplicates, name)
		}
	}
	sort.Strings(duplicates)
	sort.Strings(nonDuplicates)
	return duplicates, nonDuplicates
}

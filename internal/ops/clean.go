package ops

import (
	"context"
	"time"

	"brronson/internal/batch"
	"brronson/internal/classify"
	"brronson/internal/logging"
	"brronson/internal/metrics"
	"brronson/internal/scan"
)

// CleanRequest asks for unwanted files beneath Root to be deleted.
type CleanRequest struct {
	// Root defaults to the configured cleanup directory.
	Root string `json:"root,omitempty"`
	// Patterns overrides the configured unwanted-file patterns.
	Patterns  []string `json:"patterns,omitempty"`
	DryRun    bool     `json:"dryRun"`
	BatchSize int      `json:"batchSize"`
}

// PatternCount carries per-pattern accounting, reported even at zero.
type PatternCount struct {
	Found int `json:"found"`
	Acted int `json:"acted"`
}

// CleanReport is the outcome of one clean-unwanted pass.
type CleanReport struct {
	Root      string   `json:"root"`
	DryRun    bool     `json:"dryRun"`
	BatchSize int      `json:"batchSize"`
	Patterns  []string `json:"patternsUsed"`
	BatchFields
	FoundFiles []string                `json:"foundFiles"`
	PerPattern map[string]PatternCount `json:"perPattern"`
	TotalBytes int64                   `json:"totalBytes"`
	ReadErrors []string                `json:"readErrors,omitempty"`
}

// CleanUnwanted deletes files matching the unwanted patterns beneath the
// root, first match in caller order winning.
func (e *Engine) CleanUnwanted(ctx context.Context, req CleanRequest) (*CleanReport, error) {
	start := time.Now()
	if req.BatchSize <= 0 {
		return nil, Wrap(ErrValidation, "clean-unwanted", "batch size must be positive", nil)
	}
	patternSources := e.patterns(req.Patterns)
	patterns, err := classify.CompilePatterns(patternSources)
	if err != nil {
		return nil, Wrap(ErrValidation, "clean-unwanted", "bad pattern", err)
	}

	root, err := e.guard.Validate(orDefault(req.Root, e.cfg.Paths.CleanupDir))
	if err != nil {
		return nil, err
	}
	logger := e.logger.With(logging.String("operation", "clean-unwanted"), logging.String("root", root))

	candidates, readErrors := scan.UnwantedFiles(root, patterns)
	logger.Info("unwanted file scan completed", logging.Int("found", len(candidates)))

	mutator := batch.Mutator{Root: root, BatchSize: req.BatchSize, DryRun: req.DryRun, Logger: logger}
	res := mutator.Run(candidates, removeMutation{})

	report := &CleanReport{
		Root:        root,
		DryRun:      req.DryRun,
		BatchSize:   req.BatchSize,
		Patterns:    patternSources,
		BatchFields: batchFields(res),
		FoundFiles:  candidatePaths(candidates),
		PerPattern:  perPatternCounts(patternSources, candidates, res.ActedPaths),
		ReadErrors:  readErrors,
	}
	for _, c := range candidates {
		report.TotalBytes += c.Size
	}

	labels := metrics.Labels{"root": root, "dry_run": boolLabel(req.DryRun)}
	// Zero-valued per-pattern counters are emitted on purpose: an adapter
	// can tell an unmatched rule from a missing one.
	for pattern, count := range report.PerPattern {
		patternLabels := metrics.Labels{"root": root, "dry_run": boolLabel(req.DryRun), "pattern": pattern}
		e.sink.IncCounter("clean_files_found_total", patternLabels, float64(count.Found))
		e.sink.IncCounter("clean_files_removed_total", patternLabels, float64(count.Acted))
	}
	e.sink.IncCounter("clean_errors_total", labels, float64(res.Errored))
	e.observe("clean_unwanted", labels, start)

	return report, nil
}

func perPatternCounts(patterns []string, candidates []scan.Candidate, acted []string) map[string]PatternCount {
	counts := make(map[string]PatternCount, len(patterns))
	for _, p := range patterns {
		counts[p] = PatternCount{}
	}
	actedSet := make(map[string]struct{}, len(acted))
	for _, path := range acted {
		actedSet[path] = struct{}{}
	}
	for _, c := range candidates {
		count := counts[c.Pattern]
		count.Found++
		if _, ok := actedSet[c.Path]; ok {
			count.Acted++
		}
		counts[c.Pattern] = count
	}
	return counts
}

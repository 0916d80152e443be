package ops

import (
	"context"
	"time"

	"brronson/internal/logging"
	"brronson/internal/metrics"
	"brronson/internal/scan"
)

// CompareRequest asks for a read-only comparison of two one-level listings.
type CompareRequest struct {
	// Source defaults to the configured cleanup directory.
	Source string `json:"source,omitempty"`
	// Target defaults to the configured target directory.
	Target string `json:"target,omitempty"`
	// Verbose includes the full name lists, not just counts.
	Verbose bool `json:"verbose"`
}

// CompareReport counts folder names shared and not shared between two roots.
type CompareReport struct {
	Source            string   `json:"source"`
	Target            string   `json:"target"`
	SourceCount       int      `json:"sourceCount"`
	TargetCount       int      `json:"targetCount"`
	DuplicateCount    int      `json:"duplicateCount"`
	NonDuplicateCount int      `json:"nonDuplicateCount"`
	Duplicates        []string `json:"duplicates,omitempty"`
	NonDuplicates     []string `json:"nonDuplicates,omitempty"`
}

// CompareDirectories reports what RelocateNonDuplicates would consider
// duplicate and non-duplicate, mutating nothing.
func (e *Engine) CompareDirectories(ctx context.Context, req CompareRequest) (*CompareReport, error) {
	start := time.Now()
	source, err := e.guard.Validate(orDefault(req.Source, e.cfg.Paths.CleanupDir))
	if err != nil {
		return nil, err
	}
	target, err := e.guard.Validate(orDefault(req.Target, e.cfg.Paths.TargetDir))
	if err != nil {
		return nil, err
	}

	sourceNames, err := scan.Subdirectories(source)
	if err != nil {
		return nil, Wrap(ErrOperation, "compare-directories", "list source", err)
	}
	targetNames, err := scan.Subdirectories(target)
	if err != nil {
		return nil, Wrap(ErrOperation, "compare-directories", "list target", err)
	}

	duplicates, nonDuplicates := splitByPresence(sourceNames, targetNames)
	e.logger.Info("directory comparison",
		logging.String("source", source),
		logging.String("target", target),
		logging.Int("duplicates", len(duplicates)),
		logging.Int("non_duplicates", len(nonDuplicates)))

	report := &CompareReport{
		Source:            source,
		Target:            target,
		SourceCount:       len(sourceNames),
		TargetCount:       len(targetNames),
		DuplicateCount:    len(duplicates),
		NonDuplicateCount: len(nonDuplicates),
	}
	if req.Verbose {
		report.Duplicates = duplicates
		report.NonDuplicates = nonDuplicates
	}

	labels := metrics.Labels{"source": source, "target": target}
	e.sink.SetGauge("compare_duplicates", labels, float64(len(duplicates)))
	e.sink.SetGauge("compare_non_duplicates", labels, float64(len(nonDuplicates)))
	e.observe("compare_directories", labels, start)

	return report, nil
}

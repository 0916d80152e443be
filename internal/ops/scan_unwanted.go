package ops

import (
	"context"
	"math"
	"time"

	"brronson/internal/classify"
	"brronson/internal/logging"
	"brronson/internal/metrics"
	"brronson/internal/scan"
)

// ScanUnwantedRequest asks for a read-only unwanted-file inventory.
type ScanUnwantedRequest struct {
	Root     string   `json:"root,omitempty"`
	Patterns []string `json:"patterns,omitempty"`
}

// UnwantedFile describes one matched file.
type UnwantedFile struct {
	Path    string `json:"path"`
	Pattern string `json:"pattern"`
	Size    int64  `json:"size"`
}

// ScanUnwantedReport inventories unwanted files without touching them.
type ScanUnwantedReport struct {
	Root        string                  `json:"root"`
	Patterns    []string                `json:"patternsUsed"`
	Found       int                     `json:"found"`
	TotalBytes  int64                   `json:"totalBytes"`
	TotalSizeMB float64                 `json:"totalSizeMb"`
	Files       []UnwantedFile          `json:"files"`
	PerPattern  map[string]PatternCount `json:"perPattern"`
	ReadErrors  []string                `json:"readErrors,omitempty"`
}

// ScanUnwanted reports what CleanUnwanted would find, mutating nothing.
func (e *Engine) ScanUnwanted(ctx context.Context, req ScanUnwantedRequest) (*ScanUnwantedReport, error) {
	start := time.Now()
	patternSources := e.patterns(req.Patterns)
	patterns, err := classify.CompilePatterns(patternSources)
	if err != nil {
		return nil, Wrap(ErrValidation, "scan-unwanted", "bad pattern", err)
	}

	root, err := e.guard.Validate(orDefault(req.Root, e.cfg.Paths.CleanupDir))
	if err != nil {
		return nil, err
	}
	logger := e.logger.With(logging.String("operation", "scan-unwanted"), logging.String("root", root))

	candidates, readErrors := scan.UnwantedFiles(root, patterns)
	logger.Info("unwanted file scan completed", logging.Int("found", len(candidates)))

	report := &ScanUnwantedReport{
		Root:       root,
		Patterns:   patternSources,
		Found:      len(candidates),
		Files:      make([]UnwantedFile, 0, len(candidates)),
		PerPattern: perPatternCounts(patternSources, candidates, nil),
		ReadErrors: readErrors,
	}
	for _, c := range candidates {
		report.TotalBytes += c.Size
		report.Files = append(report.Files, UnwantedFile{Path: c.Path, Pattern: c.Pattern, Size: c.Size})
	}
	report.TotalSizeMB = math.Round(float64(report.TotalBytes)/(1024*1024)*100) / 100

	labels := metrics.Labels{"root": root}
	e.sink.IncCounter("scan_files_found_total", labels, float64(report.Found))
	e.observe("scan_unwanted", labels, start)

	return report, nil
}

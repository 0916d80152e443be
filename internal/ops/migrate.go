package ops

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"brronson/internal/batch"
	"brronson/internal/logging"
	"brronson/internal/metrics"
	"brronson/internal/scan"
)

// MigrateRequest asks for folders holding no movie files to be moved out of
// the library root.
type MigrateRequest struct {
	// Root defaults to the configured target directory.
	Root string `json:"root,omitempty"`
	// Dest defaults to the configured migrated directory. It is created
	// when missing.
	Dest   string `json:"dest,omitempty"`
	DryRun bool   `json:"dryRun"`
	// BatchSize caps successful moves. Zero means unlimited: the
	// migration scan can be long, so the caller bounds it with ScanLimit
	// instead when desired.
	BatchSize int `json:"batchSize"`
	// ScanLimit caps how many candidates the scan collects before it
	// stops, independent of BatchSize. Zero means a full scan.
	ScanLimit int `json:"scanLimit"`
	// MovieExtensions overrides the configured movie extension list.
	MovieExtensions []string `json:"movieExtensions,omitempty"`
}

// MigrateReport is the outcome of one migrate-non-movie pass.
type MigrateReport struct {
	Root      string `json:"root"`
	Dest      string `json:"dest"`
	DryRun    bool   `json:"dryRun"`
	BatchSize int    `json:"batchSize"`
	ScanLimit int    `json:"scanLimit"`
	BatchFields
	Candidates []string `json:"candidates"`
	// ScanLimitReached reports that the scan stopped at its cap, so a
	// further pass may find more candidates.
	ScanLimitReached bool     `json:"scanLimitReached"`
	ReadErrors       []string `json:"readErrors,omitempty"`
}

// MigrateNonMovie moves directories that contain files but no movie file
// anywhere beneath them into the migration destination, preserving each
// path relative to the root. When the destination lives inside the root its
// subtree is excluded from the scan so it is never moved into itself.
func (e *Engine) MigrateNonMovie(ctx context.Context, req MigrateRequest) (*MigrateReport, error) {
	start := time.Now()
	if req.BatchSize < 0 {
		return nil, Wrap(ErrValidation, "migrate-non-movie", "batch size must not be negative", nil)
	}
	if req.ScanLimit < 0 {
		return nil, Wrap(ErrValidation, "migrate-non-movie", "scan limit must not be negative", nil)
	}

	root, err := e.guard.Validate(orDefault(req.Root, e.cfg.Paths.TargetDir))
	if err != nil {
		return nil, err
	}
	destRoot := orDefault(req.Dest, e.cfg.Paths.MigratedDir)
	if err := os.MkdirAll(destRoot, 0o755); err != nil {
		return nil, Wrap(ErrOperation, "migrate-non-movie", "create destination", err)
	}
	destRoot, err = e.guard.Validate(destRoot)
	if err != nil {
		return nil, err
	}
	logger := e.logger.With(
		logging.String("operation", "migrate-non-movie"),
		logging.String("root", root),
		logging.String("dest", destRoot),
	)

	exclude := ""
	if destRoot == root || strings.HasPrefix(destRoot, root+string(filepath.Separator)) {
		exclude = destRoot
	}

	movieExts := e.movieExts(req.MovieExtensions)
	candidates, readErrors := scan.NonMovieFolders(root, exclude, req.ScanLimit, movieExts)
	logger.Info("non-movie folder scan completed", logging.Int("found", len(candidates)))

	dest := make(map[string]string, len(candidates))
	for _, c := range candidates {
		rel, relErr := filepath.Rel(root, c.Path)
		if relErr != nil {
			return nil, Wrap(ErrOperation, "migrate-non-movie", "derive destination", relErr)
		}
		dest[c.Path] = filepath.Join(destRoot, rel)
	}

	mutator := batch.Mutator{Root: root, BatchSize: req.BatchSize, DryRun: req.DryRun, Logger: logger}
	res := mutator.Run(candidates, moveMutation{dest: dest})

	labels := metrics.Labels{"root": root, "dest": destRoot, "dry_run": boolLabel(req.DryRun)}
	e.sink.IncCounter("migrate_folders_found_total", labels, float64(res.Found))
	e.sink.IncCounter("migrate_folders_moved_total", labels, float64(res.Acted))
	e.sink.IncCounter("migrate_folders_skipped_total", labels, float64(res.Skipped))
	e.sink.IncCounter("migrate_errors_total", labels, float64(res.Errored))
	e.observe("migrate_non_movie", labels, start)

	return &MigrateReport{
		Root:             root,
		Dest:             destRoot,
		DryRun:           req.DryRun,
		BatchSize:        req.BatchSize,
		ScanLimit:        req.ScanLimit,
		BatchFields:      batchFields(res),
		Candidates:       candidatePaths(candidates),
		ScanLimitReached: req.ScanLimit > 0 && len(candidates) >= req.ScanLimit,
		ReadErrors:       readErrors,
	}, nil
}

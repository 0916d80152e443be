package ops

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"brronson/internal/batch"
	"brronson/internal/classify"
	"brronson/internal/logging"
	"brronson/internal/metrics"
	"brronson/internal/scan"
)

// SyncRequest asks for subtitle files to be moved next to the movies they
// belong to.
type SyncRequest struct {
	// Source defaults to the configured salvaged directory. The migrated
	// directory is the other usual source; any validated root works.
	Source string `json:"source,omitempty"`
	// Target defaults to the configured target directory.
	Target    string `json:"target,omitempty"`
	DryRun    bool   `json:"dryRun"`
	BatchSize int    `json:"batchSize"`
	// SubtitleExtensions overrides the configured subtitle extension list.
	SubtitleExtensions []string `json:"subtitleExtensions,omitempty"`
	// MovieExtensions overrides the configured movie extension list.
	MovieExtensions []string `json:"movieExtensions,omitempty"`
}

// SyncReport is the outcome of one sync-subtitles-to-target pass.
type SyncReport struct {
	Source    string `json:"source"`
	Target    string `json:"target"`
	DryRun    bool   `json:"dryRun"`
	BatchSize int    `json:"batchSize"`
	BatchFields
	// MatchedFolders are source folders whose namesake exists in the target
	// and holds a movie file.
	MatchedFolders []string `json:"matchedFolders"`
	// FoldersWithoutTarget are source folders with no namesake in the target.
	FoldersWithoutTarget []string `json:"foldersWithoutTarget"`
	// FoldersWithoutMovie are source folders whose namesake holds no movie
	// file, so subtitles would have nothing to pair with.
	FoldersWithoutMovie []string `json:"foldersWithoutMovie"`
}

// SyncSubtitlesToTarget moves every subtitle file found under each matched
// source folder into target/<folder>/Subs/<relative path>. A source folder
// is matched only when the same folder name exists in the target and that
// target folder contains a movie file somewhere beneath it.
func (e *Engine) SyncSubtitlesToTarget(ctx context.Context, req SyncRequest) (*SyncReport, error) {
	start := time.Now()
	if req.BatchSize <= 0 {
		return nil, Wrap(ErrValidation, "sync-subtitles-to-target", "batch size must be positive", nil)
	}

	source, err := e.guard.Validate(orDefault(req.Source, e.cfg.Paths.SalvagedDir))
	if err != nil {
		return nil, err
	}
	target, err := e.guard.Validate(orDefault(req.Target, e.cfg.Paths.TargetDir))
	if err != nil {
		return nil, err
	}
	logger := e.logger.With(
		logging.String("operation", "sync-subtitles-to-target"),
		logging.String("source", source),
		logging.String("target", target),
	)

	subtitleExts := e.subtitleExts(req.SubtitleExtensions)
	movieExts := e.movieExts(req.MovieExtensions)

	sourceNames, err := scan.Subdirectories(source)
	if err != nil {
		return nil, Wrap(ErrOperation, "sync-subtitles-to-target", "list source", err)
	}

	report := &SyncReport{
		Source:               source,
		Target:               target,
		DryRun:               req.DryRun,
		BatchSize:            req.BatchSize,
		MatchedFolders:       []string{},
		FoldersWithoutTarget: []string{},
		FoldersWithoutMovie:  []string{},
	}

	var candidates []scan.Candidate
	dest := make(map[string]string)
	for _, name := range sourceNames {
		sourceFolder := filepath.Join(source, name)
		targetFolder := filepath.Join(target, name)
		info, statErr := os.Stat(targetFolder)
		if statErr != nil || !info.IsDir() {
			report.FoldersWithoutTarget = append(report.FoldersWithoutTarget, name)
			continue
		}
		if !classify.FolderHasMovie(targetFolder, movieExts) {
			report.FoldersWithoutMovie = append(report.FoldersWithoutMovie, name)
			continue
		}
		report.MatchedFolders = append(report.MatchedFolders, name)

		for _, c := range scan.SubtitleFiles(sourceFolder, subtitleExts) {
			rel, relErr := filepath.Rel(sourceFolder, c.Path)
			if relErr != nil {
				continue
			}
			candidates = append(candidates, c)
			dest[c.Path] = filepath.Join(targetFolder, "Subs", rel)
		}
	}
	logger.Info("subtitle sync analysis",
		logging.Int("matched_folders", len(report.MatchedFolders)),
		logging.Int("files", len(candidates)))

	mutator := batch.Mutator{Root: source, BatchSize: req.BatchSize, DryRun: req.DryRun, Logger: logger}
	res := mutator.Run(candidates, moveMutation{dest: dest})
	report.BatchFields = batchFields(res)

	labels := metrics.Labels{"source": source, "target": target, "dry_run": boolLabel(req.DryRun)}
	e.sink.IncCounter("sync_files_found_total", labels, float64(res.Found))
	e.sink.IncCounter("sync_files_moved_total", labels, float64(res.Acted))
	e.sink.IncCounter("sync_files_skipped_total", labels, float64(res.Skipped))
	e.sink.IncCounter("sync_errors_total", labels, float64(res.Errored))
	e.observe("sync_subtitles_to_target", labels, start)

	return report, nil
}

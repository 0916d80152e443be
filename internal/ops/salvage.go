package ops

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"brronson/internal/fileutil"
	"brronson/internal/logging"
	"brronson/internal/metrics"
	"brronson/internal/scan"
)

// SalvageRequest asks for subtitle files to be copied out of folders whose
// root holds a subtitle file. Sources are never modified.
type SalvageRequest struct {
	// Source defaults to the configured recycled directory, the folders
	// awaiting deletion whose subtitles are worth keeping.
	Source string `json:"source,omitempty"`
	// Dest defaults to the configured salvaged directory. It is created
	// when missing.
	Dest   string `json:"dest,omitempty"`
	DryRun bool   `json:"dryRun"`
	// BatchSize caps successful file copies, not folders.
	BatchSize int `json:"batchSize"`
	// SubtitleExtensions overrides the configured subtitle extension list.
	SubtitleExtensions []string `json:"subtitleExtensions,omitempty"`
}

// SalvageReport is the outcome of one salvage-subtitles pass.
type SalvageReport struct {
	Source    string `json:"source"`
	Dest      string `json:"dest"`
	DryRun    bool   `json:"dryRun"`
	BatchSize int    `json:"batchSize"`
	BatchFields
	// MatchedFolders are the first-level source folders with a subtitle
	// file among their direct children.
	MatchedFolders []string `json:"matchedFolders"`
	// SubtitleFilesCopied equals Acted; kept as its own field since the
	// copy count is the headline number for this operation.
	SubtitleFilesCopied int `json:"subtitleFilesCopied"`
}

// SalvageSubtitles copies every subtitle file out of each matched source
// folder into dest/<folder>/<relative path>, leaving the source untouched.
// A destination folder created by this call is removed again when a copy
// into it fails, so a failed folder never leaves a partial result behind.
func (e *Engine) SalvageSubtitles(ctx context.Context, req SalvageRequest) (*SalvageReport, error) {
	start := time.Now()
	if req.BatchSize <= 0 {
		return nil, Wrap(ErrValidation, "salvage-subtitles", "batch size must be positive", nil)
	}

	source, err := e.guard.Validate(orDefault(req.Source, e.cfg.Paths.RecycledDir))
	if err != nil {
		return nil, err
	}
	destRoot := orDefault(req.Dest, e.cfg.Paths.SalvagedDir)
	if err := os.MkdirAll(destRoot, 0o755); err != nil {
		return nil, Wrap(ErrOperation, "salvage-subtitles", "create destination", err)
	}
	destRoot, err = e.guard.Validate(destRoot)
	if err != nil {
		return nil, err
	}
	logger := e.logger.With(
		logging.String("operation", "salvage-subtitles"),
		logging.String("source", source),
		logging.String("dest", destRoot),
	)

	subtitleExts := e.subtitleExts(req.SubtitleExtensions)
	folders, err := scan.SubtitleRootFolders(source, subtitleExts)
	if err != nil {
		return nil, Wrap(ErrOperation, "salvage-subtitles", "list source", err)
	}
	logger.Info("subtitle folder scan completed", logging.Int("folders", len(folders)))

	report := &SalvageReport{
		Source:         source,
		Dest:           destRoot,
		DryRun:         req.DryRun,
		BatchSize:      req.BatchSize,
		MatchedFolders: []string{},
	}
	res := BatchFields{ActedPaths: []string{}, SkippedPaths: []string{}, ErrorDetails: []string{}}

	type folderFiles struct {
		folder string
		files  []scan.Candidate
	}
	var plan []folderFiles
	for _, f := range folders {
		report.MatchedFolders = append(report.MatchedFolders, f.Path)
		files := scan.SubtitleFiles(f.Path, subtitleExts)
		res.Found += len(files)
		plan = append(plan, folderFiles{folder: f.Path, files: files})
	}

	processed := 0
	budgetReached := false
	// The generic bounded mutator does not fit here: a failed copy has to
	// undo the destination folder it just created, which needs per-folder
	// state the candidate loop cannot carry.
folders:
	for _, pf := range plan {
		destFolder := filepath.Join(destRoot, filepath.Base(pf.folder))
		createdDestFolder := false
		for _, c := range pf.files {
			if res.Acted >= req.BatchSize {
				budgetReached = true
				break folders
			}
			processed++

			rel, relErr := filepath.Rel(pf.folder, c.Path)
			if relErr != nil {
				res.Errors++
				res.ErrorDetails = append(res.ErrorDetails, fmt.Sprintf("%s: %v", c.Path, relErr))
				continue
			}
			dst := filepath.Join(destFolder, rel)

			if !lexists(c.Path) {
				continue
			}
			if lexists(dst) {
				res.Skipped++
				res.SkippedPaths = append(res.SkippedPaths, c.Path)
				continue
			}

			if req.DryRun {
				res.Acted++
				res.ActedPaths = append(res.ActedPaths, c.Path)
				logger.Info("dry run: would copy", logging.String("path", c.Path), logging.String("dest", dst))
				continue
			}

			if !lexists(destFolder) {
				createdDestFolder = true
			}
			if err := os.MkdirAll(filepath.Dir(dst), 0o755); err == nil {
				err = fileutil.CopyFile(c.Path, dst)
			} else {
				err = fmt.Errorf("ensure destination dir: %w", err)
			}
			if err != nil {
				if !lexists(c.Path) {
					continue
				}
				res.Errors++
				res.ErrorDetails = append(res.ErrorDetails, fmt.Sprintf("%s: %v", c.Path, err))
				logger.Error("copy failed", logging.String("path", c.Path), logging.Error(err))
				if createdDestFolder {
					if rmErr := os.RemoveAll(destFolder); rmErr != nil {
						logger.Warn("partial destination cleanup failed",
							logging.String("path", destFolder), logging.Error(rmErr))
					} else {
						logger.Info("removed partial destination", logging.String("path", destFolder))
					}
				}
				continue folders
			}
			res.Acted++
			res.ActedPaths = append(res.ActedPaths, c.Path)
			logger.Info("copied subtitle", logging.String("path", c.Path), logging.String("dest", dst))
		}
	}
	res.BatchLimitReached = budgetReached
	res.Remaining = res.Found - processed
	report.BatchFields = res
	report.SubtitleFilesCopied = res.Acted

	labels := metrics.Labels{"source": source, "dest": destRoot, "dry_run": boolLabel(req.DryRun)}
	e.sink.IncCounter("salvage_folders_matched_total", labels, float64(len(folders)))
	e.sink.IncCounter("salvage_files_found_total", labels, float64(res.Found))
	e.sink.IncCounter("salvage_files_copied_total", labels, float64(res.Acted))
	e.sink.IncCounter("salvage_errors_total", labels, float64(res.Errors))
	e.observe("salvage_subtitles", labels, start)

	return report, nil
}

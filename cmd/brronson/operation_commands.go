package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"brronson/internal/ops"
)

const defaultBatchSize = 100

// batchFlags are shared by every mutating operation command. Dry run is the
// default; --live performs real mutations.
type batchFlags struct {
	live      bool
	batchSize int
}

func (f *batchFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.live, "live", false, "Apply mutations instead of reporting what would happen")
	cmd.Flags().IntVar(&f.batchSize, "batch-size", defaultBatchSize, "Maximum successful mutations in this run")
}

func (f *batchFlags) dryRun() bool {
	return !f.live
}

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var flags batchFlags
	var root string
	var patterns []string

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete unwanted files beneath the cleanup directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.newEngine()
			if err != nil {
				return err
			}
			report, err := engine.CleanUnwanted(cmd.Context(), ops.CleanRequest{
				Root:      root,
				Patterns:  patterns,
				DryRun:    flags.dryRun(),
				BatchSize: flags.batchSize,
			})
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, report)
			}
			out := cmd.OutOrStdout()
			printBatchSummary(out, "clean", report.DryRun, report.BatchFields)
			fmt.Fprintf(out, "Total size: %d bytes\n", report.TotalBytes)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&root, "root", "", "Scan root (defaults to the configured cleanup directory)")
	cmd.Flags().StringArrayVar(&patterns, "pattern", nil, "Override unwanted-file patterns (repeatable)")
	return cmd
}

func newScanCommand(ctx *commandContext) *cobra.Command {
	var root string
	var patterns []string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List unwanted files without deleting anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.newEngine()
			if err != nil {
				return err
			}
			report, err := engine.ScanUnwanted(cmd.Context(), ops.ScanUnwantedRequest{
				Root:     root,
				Patterns: patterns,
			})
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, report)
			}
			rows := make([][]string, 0, len(report.Files))
			for _, f := range report.Files {
				rows = append(rows, []string{f.Path, f.Pattern, strconv.FormatInt(f.Size, 10)})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Path", "Pattern", "Bytes"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight}))
			fmt.Fprintf(out, "Found %d files, %.2f MB\n", report.Found, report.TotalSizeMB)
			return nil
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "Scan root (defaults to the configured cleanup directory)")
	cmd.Flags().StringArrayVar(&patterns, "pattern", nil, "Override unwanted-file patterns (repeatable)")
	return cmd
}

func newPruneCommand(ctx *commandContext) *cobra.Command {
	var flags batchFlags
	var root string

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove empty folders beneath the target directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.newEngine()
			if err != nil {
				return err
			}
			report, err := engine.PruneEmpty(cmd.Context(), ops.PruneRequest{
				Root:      root,
				DryRun:    flags.dryRun(),
				BatchSize: flags.batchSize,
			})
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, report)
			}
			printBatchSummary(cmd.OutOrStdout(), "prune", report.DryRun, report.BatchFields)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&root, "root", "", "Scan root (defaults to the configured target directory)")
	return cmd
}

func newCompareCommand(ctx *commandContext) *cobra.Command {
	var source, target string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare first-level folder names between two roots",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.newEngine()
			if err != nil {
				return err
			}
			report, err := engine.CompareDirectories(cmd.Context(), ops.CompareRequest{
				Source:  source,
				Target:  target,
				Verbose: verbose,
			})
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, report)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Metric", "Count"},
				[][]string{
					{"Source folders", strconv.Itoa(report.SourceCount)},
					{"Target folders", strconv.Itoa(report.TargetCount)},
					{"Duplicates", strconv.Itoa(report.DuplicateCount)},
					{"Non-duplicates", strconv.Itoa(report.NonDuplicateCount)},
				},
				[]columnAlignment{alignLeft, alignRight}))
			if verbose {
				printList(out, "Duplicates", report.Duplicates)
				printList(out, "Non-duplicates", report.NonDuplicates)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "Source root (defaults to the configured cleanup directory)")
	cmd.Flags().StringVar(&target, "target", "", "Target root (defaults to the configured target directory)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print the full name lists")
	return cmd
}

func newRelocateCommand(ctx *commandContext) *cobra.Command {
	var flags batchFlags
	var source, target string
	var skipCleanup bool

	cmd := &cobra.Command{
		Use:   "relocate",
		Short: "Move folders absent from the target out of the cleanup directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.newEngine()
			if err != nil {
				return err
			}
			report, err := engine.RelocateNonDuplicates(cmd.Context(), ops.RelocateRequest{
				Source:      source,
				Target:      target,
				DryRun:      flags.dryRun(),
				BatchSize:   flags.batchSize,
				SkipCleanup: skipCleanup,
			})
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, report)
			}
			out := cmd.OutOrStdout()
			printBatchSummary(out, "relocate", report.DryRun, report.BatchFields)
			fmt.Fprintf(out, "Duplicates left in place: %d\n", len(report.Duplicates))
			if report.CleanupError != "" {
				fmt.Fprintf(out, "Cleanup pre-pass failed: %s\n", report.CleanupError)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&source, "source", "", "Source root (defaults to the configured cleanup directory)")
	cmd.Flags().StringVar(&target, "target", "", "Target root (defaults to the configured target directory)")
	cmd.Flags().BoolVar(&skipCleanup, "skip-cleanup", false, "Skip the clean-unwanted pre-pass over the source")
	return cmd
}

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	var root, dest string
	var live bool
	var batchSize, scanLimit int

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Move folders without movie files out of the target directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.newEngine()
			if err != nil {
				return err
			}
			report, err := engine.MigrateNonMovie(cmd.Context(), ops.MigrateRequest{
				Root:      root,
				Dest:      dest,
				DryRun:    !live,
				BatchSize: batchSize,
				ScanLimit: scanLimit,
			})
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, report)
			}
			out := cmd.OutOrStdout()
			printBatchSummary(out, "migrate", report.DryRun, report.BatchFields)
			if report.ScanLimitReached {
				fmt.Fprintln(out, "Scan stopped at its limit; run again for more candidates")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "Scan root (defaults to the configured target directory)")
	cmd.Flags().StringVar(&dest, "dest", "", "Destination (defaults to the configured migrated directory)")
	cmd.Flags().BoolVar(&live, "live", false, "Apply mutations instead of reporting what would happen")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Maximum successful moves, 0 for unlimited")
	cmd.Flags().IntVar(&scanLimit, "scan-limit", 0, "Stop scanning after this many candidates, 0 for a full scan")
	return cmd
}

func newSalvageCommand(ctx *commandContext) *cobra.Command {
	var flags batchFlags
	var source, dest string

	cmd := &cobra.Command{
		Use:   "salvage",
		Short: "Copy subtitle files out of folders slated for recycling",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.newEngine()
			if err != nil {
				return err
			}
			report, err := engine.SalvageSubtitles(cmd.Context(), ops.SalvageRequest{
				Source:    source,
				Dest:      dest,
				DryRun:    flags.dryRun(),
				BatchSize: flags.batchSize,
			})
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, report)
			}
			out := cmd.OutOrStdout()
			printBatchSummary(out, "salvage", report.DryRun, report.BatchFields)
			fmt.Fprintf(out, "Matched folders: %d, subtitle files copied: %d\n",
				len(report.MatchedFolders), report.SubtitleFilesCopied)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&source, "source", "", "Source root (defaults to the configured recycled directory)")
	cmd.Flags().StringVar(&dest, "dest", "", "Destination (defaults to the configured salvaged directory)")
	return cmd
}

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var flags batchFlags
	var source, target string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Move subtitle files next to their movies in the target directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.newEngine()
			if err != nil {
				return err
			}
			report, err := engine.SyncSubtitlesToTarget(cmd.Context(), ops.SyncRequest{
				Source:    source,
				Target:    target,
				DryRun:    flags.dryRun(),
				BatchSize: flags.batchSize,
			})
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, report)
			}
			out := cmd.OutOrStdout()
			printBatchSummary(out, "sync", report.DryRun, report.BatchFields)
			fmt.Fprintf(out, "Matched folders: %d (no target: %d, no movie: %d)\n",
				len(report.MatchedFolders), len(report.FoldersWithoutTarget), len(report.FoldersWithoutMovie))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&source, "source", "", "Source root (defaults to the configured salvaged directory; point it at the migrated directory to sweep that tree)")
	cmd.Flags().StringVar(&target, "target", "", "Target root (defaults to the configured target directory)")
	return cmd
}

package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"brronson/internal/api"
	"brronson/internal/ops"
	"brronson/internal/queue"
)

// jobs commands operate directly on the job database. The daemon shares the
// same data directory, so a submitted job is picked up by its worker.
func newJobsCommand(ctx *commandContext) *cobra.Command {
	jobsCmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect and submit asynchronous operation jobs",
	}
	jobsCmd.AddCommand(newJobsListCommand(ctx))
	jobsCmd.AddCommand(newJobsShowCommand(ctx))
	jobsCmd.AddCommand(newJobsSubmitCommand(ctx))
	jobsCmd.AddCommand(newJobsPruneCommand(ctx))
	return jobsCmd
}

func (c *commandContext) withStore(fn func(*queue.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := queue.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func newJobsListCommand(ctx *commandContext) *cobra.Command {
	var statusFilter string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			status := queue.Status(strings.TrimSpace(statusFilter))
			if status != "" && !status.Valid() {
				return fmt.Errorf("unknown status %q", status)
			}
			return ctx.withStore(func(store *queue.Store) error {
				jobs, err := store.List(cmd.Context(), status, limit)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, api.JobListResponse{Jobs: api.FromJobs(jobs)})
				}
				rows := make([][]string, 0, len(jobs))
				for _, job := range jobs {
					rows = append(rows, []string{
						job.ID,
						job.Operation,
						string(job.Status),
						job.CreatedAt.Local().Format(time.DateTime),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Operation", "Status", "Created"}, rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft}))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&statusFilter, "status", "", "Filter by status (pending, running, completed, failed)")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum jobs to list, 0 for all")
	return cmd
}

func newJobsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one job including its report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *queue.Store) error {
				job, err := store.GetByID(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd, api.FromJob(job))
			})
		},
	}
}

func newJobsSubmitCommand(ctx *commandContext) *cobra.Command {
	var paramsJSON string

	cmd := &cobra.Command{
		Use:   "submit <operation>",
		Short: "Queue an operation for the daemon worker",
		Long: "Queue an operation for the daemon worker.\n\nOperations: " +
			strings.Join(ops.OperationNames(), ", "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			operation := strings.TrimSpace(args[0])
			known := false
			for _, name := range ops.OperationNames() {
				if operation == name {
					known = true
					break
				}
			}
			if !known {
				return fmt.Errorf("unknown operation %q", operation)
			}
			var params json.RawMessage
			if trimmed := strings.TrimSpace(paramsJSON); trimmed != "" {
				if !json.Valid([]byte(trimmed)) {
					return fmt.Errorf("--params is not valid JSON")
				}
				params = json.RawMessage(trimmed)
			}
			return ctx.withStore(func(store *queue.Store) error {
				job, err := store.Enqueue(cmd.Context(), operation, params)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, api.FromJob(job))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Queued job %s (%s)\n", job.ID, job.Operation)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&paramsJSON, "params", "", "Operation request as a JSON object")
	return cmd
}

func newJobsPruneCommand(ctx *commandContext) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete finished jobs older than a cutoff",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *queue.Store) error {
				removed, err := store.PruneFinished(cmd.Context(), olderThan)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d finished jobs\n", removed)
				return nil
			})
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 7*24*time.Hour, "Age threshold for finished jobs")
	return cmd
}

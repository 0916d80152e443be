package queue

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"brronson/internal/config"
)

// ErrNotFound indicates no job exists with the requested id.
var ErrNotFound = errors.New("job not found")

// ErrNoPending indicates the queue holds no pending job to claim.
var ErrNoPending = errors.New("no pending job")

// Store manages job persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the job database under the data directory.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(filepath.Join(cfg.Paths.DataDir, "jobs.db"))
}

// OpenPath opens the job database at an explicit path.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Enqueue inserts a new pending job for the named operation.
func (s *Store) Enqueue(ctx context.Context, operation string, params json.RawMessage) (*Job, error) {
	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO jobs (id, operation, params_json, status, created_at)
         VALUES (?, ?, ?, ?, ?)`,
		id, operation, nullableString(string(params)), StatusPending, now)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	return s.GetByID(ctx, id)
}

// ClaimNextPending atomically marks the oldest pending job running and
// returns it. ErrNoPending means the queue is drained.
func (s *Store) ClaimNextPending(ctx context.Context) (*Job, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin claim tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id string
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM jobs WHERE status = ? ORDER BY created_at, id LIMIT 1",
		StatusPending).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoPending
	}
	if err != nil {
		return nil, fmt.Errorf("select pending job: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE jobs SET status = ?, started_at = ? WHERE id = ?",
		StatusRunning, now, id); err != nil {
		return nil, fmt.Errorf("claim job %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit claim: %w", err)
	}
	return s.GetByID(ctx, id)
}

// Complete stores the report and marks the job completed.
func (s *Store) Complete(ctx context.Context, id string, report json.RawMessage) error {
	return s.finish(ctx, id, StatusCompleted, string(report), "")
}

// Fail stores the failure message and marks the job failed.
func (s *Store) Fail(ctx context.Context, id, message string) error {
	return s.finish(ctx, id, StatusFailed, "", message)
}

func (s *Store) finish(ctx context.Context, id string, status Status, report, message string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		`UPDATE jobs SET status = ?, report_json = ?, error_message = ?, finished_at = ?
         WHERE id = ?`,
		status, nullableString(report), nullableString(message), now, id)
	if err != nil {
		return fmt.Errorf("finish job %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID fetches a single job.
func (s *Store) GetByID(ctx context.Context, id string) (*Job, error) {
	row := s.db.QueryRowContext(ctx, selectJob+" WHERE id = ?", id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return job, err
}

// List returns jobs newest first, optionally filtered by status. A limit of
// zero or less returns everything.
func (s *Store) List(ctx context.Context, status Status, limit int) ([]*Job, error) {
	query := selectJob
	args := []any{}
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC, id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		job, scanErr := scanJob(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// Stats counts jobs per status.
func (s *Store) Stats(ctx context.Context) (map[Status]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT status, COUNT(1) FROM jobs GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("job stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[Status]int, len(allStatuses))
	for _, status := range allStatuses {
		stats[status] = 0
	}
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan job stats: %w", err)
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

// RecoverStuck returns running jobs to pending. Called once at daemon
// startup so a crash mid-job does not strand work.
func (s *Store) RecoverStuck(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE jobs SET status = ?, started_at = NULL WHERE status = ?",
		StatusPending, StatusRunning)
	if err != nil {
		return 0, fmt.Errorf("recover stuck jobs: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(affected), nil
}

// PruneFinished deletes terminal jobs finished before the cutoff and returns
// how many were removed.
func (s *Store) PruneFinished(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM jobs WHERE status IN (?, ?) AND finished_at < ?",
		StatusCompleted, StatusFailed, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune finished jobs: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(affected), nil
}

const selectJob = `SELECT id, operation, params_json, status, report_json,
    error_message, created_at, started_at, finished_at FROM jobs`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*Job, error) {
	var (
		job        Job
		params     sql.NullString
		report     sql.NullString
		errMsg     sql.NullString
		createdAt  string
		startedAt  sql.NullString
		finishedAt sql.NullString
	)
	err := row.Scan(&job.ID, &job.Operation, &params, &job.Status, &report,
		&errMsg, &createdAt, &startedAt, &finishedAt)
	if err != nil {
		return nil, err
	}
	if params.Valid {
		job.Params = json.RawMessage(params.String)
	}
	if report.Valid {
		job.Report = json.RawMessage(report.String)
	}
	job.ErrorMessage = errMsg.String

	job.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if job.StartedAt, err = parseNullableTime(startedAt); err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	if job.FinishedAt, err = parseNullableTime(finishedAt); err != nil {
		return nil, fmt.Errorf("parse finished_at: %w", err)
	}
	return &job, nil
}

func parseTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}

func parseNullableTime(value sql.NullString) (*time.Time, error) {
	if !value.Valid {
		return nil, nil
	}
	t, err := parseTime(value.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

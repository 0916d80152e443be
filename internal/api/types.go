package api

import (
	"encoding/json"
	"time"

	"brronson/internal/queue"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse reports daemon liveness and readiness-check results.
type HealthResponse struct {
	Status string           `json:"status"`
	Checks []PreflightCheck `json:"checks,omitempty"`
}

// PreflightCheck is the transport form of one readiness check.
type PreflightCheck struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// VersionResponse reports build identity.
type VersionResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Job is the transport representation of a queued operation.
type Job struct {
	ID         string          `json:"id"`
	Operation  string          `json:"operation"`
	Params     json.RawMessage `json:"params,omitempty"`
	Status     string          `json:"status"`
	Report     json.RawMessage `json:"report,omitempty"`
	Error      string          `json:"error,omitempty"`
	CreatedAt  string          `json:"createdAt"`
	StartedAt  string          `json:"startedAt,omitempty"`
	FinishedAt string          `json:"finishedAt,omitempty"`
}

// EnqueueRequest asks the daemon to queue one operation invocation.
type EnqueueRequest struct {
	Operation string          `json:"operation"`
	Params    json.RawMessage `json:"params,omitempty"`
}

// JobResponse wraps a single job.
type JobResponse struct {
	Job Job `json:"job"`
}

// JobListResponse wraps a job listing with per-status counts.
type JobListResponse struct {
	Jobs  []Job          `json:"jobs"`
	Stats map[string]int `json:"stats,omitempty"`
}

// FromJob converts a queue job into its transport form. Timestamps use
// RFC3339 with milliseconds.
func FromJob(job *queue.Job) Job {
	out := Job{
		ID:        job.ID,
		Operation: job.Operation,
		Params:    job.Params,
		Status:    string(job.Status),
		Report:    job.Report,
		Error:     job.ErrorMessage,
		CreatedAt: formatTime(job.CreatedAt),
	}
	if job.StartedAt != nil {
		out.StartedAt = formatTime(*job.StartedAt)
	}
	if job.FinishedAt != nil {
		out.FinishedAt = formatTime(*job.FinishedAt)
	}
	return out
}

// FromJobs converts a job slice, keeping the store's ordering.
func FromJobs(jobs []*queue.Job) []Job {
	out := make([]Job, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, FromJob(job))
	}
	return out
}

func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

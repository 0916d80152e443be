package queue

import (
	"encoding/json"
	"time"
)

// Status represents the lifecycle of a queued job.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusRunning,
	StatusCompleted,
	StatusFailed,
}

// Terminal reports whether the status is final.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Valid reports whether the status is one of the known values.
func (s Status) Valid() bool {
	for _, known := range allStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Job is one queued operation invocation. Params holds the raw request JSON
// as submitted; Report holds the operation report once completed.
type Job struct {
	ID           string          `json:"id"`
	Operation    string          `json:"operation"`
	Params       json.RawMessage `json:"params,omitempty"`
	Status       Status          `json:"status"`
	Report       json.RawMessage `json:"report,omitempty"`
	ErrorMessage string          `json:"error,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	StartedAt    *time.Time      `json:"startedAt,omitempty"`
	FinishedAt   *time.Time      `json:"finishedAt,omitempty"`
}

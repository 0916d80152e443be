// Package main hosts the brronson CLI entrypoint and command graph.
//
// The Cobra-based command tree runs reconciliation operations directly,
// manages the asynchronous job database, checks directory readiness, and
// scaffolds configuration. The serve command runs the daemon: the HTTP API
// plus the background job worker.
//
// Keep this package lean: operation semantics live in internal/ops, the
// commands here translate flags into requests and render reports.
package main

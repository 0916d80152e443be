// Package daemon coordinates the long-running brronson process.
//
// It wires configuration, the job store, the worker, and the HTTP API into
// a single lifecycle with flock-based locking to prevent multiple instances.
// Startup runs the preflight checks and requeues jobs stranded by a crash.
//
// Synchronous endpoints run an operation inline and return its report;
// the jobs endpoints enqueue work for the background worker instead, which
// suits long scans. Orchestration lives here, operation semantics in ops.
package daemon

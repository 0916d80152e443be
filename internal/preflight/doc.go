// Package preflight provides readiness checks for the filesystem roots the
// daemon operates on.
//
// The daemon runs RunAll at startup and refuses to serve when a required
// root is missing or inaccessible; the CLI status command renders individual
// results so a misconfigured path is visible before any operation runs.
package preflight

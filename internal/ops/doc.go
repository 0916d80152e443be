// Package ops implements the reconciliation operations that keep a media
// library tidy: pruning empty folders, deleting unwanted files, relocating
// non-duplicate subtrees, migrating folders without movie files, and copying
// or syncing subtitle files.
//
// Every operation follows the same shape: validate the root paths through
// the path guard, scan current disk state, then apply a bounded mutation
// phase and return a structured report. Operations are stateless and
// re-entrant; repeated calls converge because each one re-scans disk.
//
// The Engine owns the configured defaults, logger, and metrics sink. Run
// dispatches by operation name for the job queue and the HTTP layer.
package ops

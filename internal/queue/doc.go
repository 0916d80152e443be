// Package queue persists asynchronous operation jobs in SQLite.
//
// A job records the operation name and its raw request parameters when
// enqueued, then the serialized report or failure message when finished.
// The worker claims pending jobs oldest first; claiming is a single
// transaction so a second worker never runs the same job.
//
// The database holds transient reports rather than a long-term archive.
// Schema changes bump the version in schema.go; users delete the database
// to adopt the new schema.
package queue

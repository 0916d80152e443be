// Package worker runs queued operations on a background goroutine so a long
// scan never blocks the HTTP layer. One worker per daemon; job claiming in
// the queue package keeps a second instance from double-running work anyway.
package worker

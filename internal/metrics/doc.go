// Package metrics defines the sink interface operations emit into and an
// in-memory recorder implementation the API server can snapshot.
//
// The engine never owns a process-wide registry; the host constructs one
// sink and injects it into every operation call.
package metrics

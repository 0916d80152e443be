// Package logging assembles the structured slog loggers used across the
// engine, daemon, and CLI.
//
// It owns the console and JSON handlers, the level plumbing, and attr helper
// aliases, plus a no-op logger for tests and wiring code that cannot fail.
// Prefer these constructors over hand-rolled slog setup so every component
// emits records with the same shape.
package logging

package metrics

import "time"

// Labels qualifies a metric sample, e.g. directory or pattern.
type Labels map[string]string

// Sink receives per-call counters, gauges, and durations from the engine.
// The host process owns the sink; operations only emit into it. Zero-valued
// per-pattern counters are emitted deliberately so adapters can surface
// "present but unmatched" rules without re-derivation.
type Sink interface {
	IncCounter(name string, labels Labels, delta float64)
	SetGauge(name string, labels Labels, value float64)
	ObserveDuration(name string, labels Labels, d time.Duration)
}

// Nop is a Sink that discards everything.
type Nop struct{}

func (Nop) IncCounter(string, Labels, float64)            {}
func (Nop) SetGauge(string, Labels, float64)              {}
func (Nop) ObserveDuration(string, Labels, time.Duration) {}

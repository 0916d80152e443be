package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// DurationStats aggregates observed durations for one labeled series.
type DurationStats struct {
	Count int           `json:"count"`
	Total time.Duration `json:"totalNs"`
}

// Snapshot is a point-in-time copy of everything a Recorder holds.
type Snapshot struct {
	Counters  map[string]float64       `json:"counters"`
	Gauges    map[string]float64       `json:"gauges"`
	Durations map[string]DurationStats `json:"durations"`
}

// Recorder is an in-memory Sink the API server snapshots on demand.
type Recorder struct {
	mu        sync.Mutex
	counters  map[string]float64
	gauges    map[string]float64
	durations map[string]DurationStats
}

// NewRecorder constructs an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		counters:  make(map[string]float64),
		gauges:    make(map[string]float64),
		durations: make(map[string]DurationStats),
	}
}

func (r *Recorder) IncCounter(name string, labels Labels, delta float64) {
	key := seriesKey(name, labels)
	r.mu.Lock()
	r.counters[key] += delta
	r.mu.Unlock()
}

func (r *Recorder) SetGauge(name string, labels Labels, value float64) {
	key := seriesKey(name, labels)
	r.mu.Lock()
	r.gauges[key] = value
	r.mu.Unlock()
}

func (r *Recorder) ObserveDuration(name string, labels Labels, d time.Duration) {
	key := seriesKey(name, labels)
	r.mu.Lock()
	stats := r.durations[key]
	stats.Count++
	stats.Total += d
	r.durations[key] = stats
	r.mu.Unlock()
}

// Snapshot returns a copy safe to serialize while the Recorder keeps
// accepting samples.
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := Snapshot{
		Counters:  make(map[string]float64, len(r.counters)),
		Gauges:    make(map[string]float64, len(r.gauges)),
		Durations: make(map[string]DurationStats, len(r.durations)),
	}
	for k, v := range r.counters {
		snap.Counters[k] = v
	}
	for k, v := range r.gauges {
		snap.Gauges[k] = v
	}
	for k, v := range r.durations {
		snap.Durations[k] = v
	}
	return snap
}

// seriesKey renders name{k=v,...} with labels in sorted order so the same
// series always lands on the same key.
func seriesKey(name string, labels Labels) string {
	if len(labels) == 0 {
		return name
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s=%s", k, labels[k])
	}
	b.WriteByte('}')
	return b.String()
}

package metrics_test

import (
	"testing"
	"time"

	"brronson/internal/metrics"
)

func TestRecorderCounterAccumulates(t *testing.T) {
	r := metrics.NewRecorder()
	labels := metrics.Labels{"root": "/data", "dry_run": "false"}
	r.IncCounter("folders_removed_total", labels, 2)
	r.IncCounter("folders_removed_total", labels, 3)

	snap := r.Snapshot()
	key := "folders_removed_total{dry_run=false,root=/data}"
	if got := snap.Counters[key]; got != 5 {
		t.Fatalf("counter %s = %v, want 5", key, got)
	}
}

func TestRecorderLabelOrderIsCanonical(t *testing.T) {
	r := metrics.NewRecorder()
	r.IncCounter("x_total", metrics.Labels{"b": "2", "a": "1"}, 1)
	r.IncCounter("x_total", metrics.Labels{"a": "1", "b": "2"}, 1)

	snap := r.Snapshot()
	if len(snap.Counters) != 1 {
		t.Fatalf("series count = %d, want 1 (same labels must share a key)", len(snap.Counters))
	}
	if got := snap.Counters["x_total{a=1,b=2}"]; got != 2 {
		t.Fatalf("counter = %v, want 2", got)
	}
}

func TestRecorderGaugeOverwrites(t *testing.T) {
	r := metrics.NewRecorder()
	r.SetGauge("compare_duplicates", nil, 7)
	r.SetGauge("compare_duplicates", nil, 3)

	if got := r.Snapshot().Gauges["compare_duplicates"]; got != 3 {
		t.Fatalf("gauge = %v, want last write 3", got)
	}
}

func TestRecorderDurations(t *testing.T) {
	r := metrics.NewRecorder()
	r.ObserveDuration("op_seconds", nil, 2*time.Second)
	r.ObserveDuration("op_seconds", nil, 3*time.Second)

	stats := r.Snapshot().Durations["op_seconds"]
	if stats.Count != 2 || stats.Total != 5*time.Second {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	r := metrics.NewRecorder()
	r.IncCounter("x_total", nil, 1)
	snap := r.Snapshot()
	r.IncCounter("x_total", nil, 1)

	if snap.Counters["x_total"] != 1 {
		t.Fatal("snapshot mutated by later samples")
	}
	snap.Counters["x_total"] = 99
	if r.Snapshot().Counters["x_total"] != 2 {
		t.Fatal("recorder mutated through snapshot")
	}
}

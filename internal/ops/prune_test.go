package ops_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"brronson/internal/ops"
	"brronson/internal/testsupport"
)

func TestPruneEmptyRemovesNestedAndIsIdempotent(t *testing.T) {
	engine, cfg := newTestEngine(t)
	root := cfg.Paths.TargetDir
	testsupport.MkdirAll(t, filepath.Join(root, "a", "b", "c"))
	testsupport.WriteFile(t, filepath.Join(root, "keep", "movie.mkv"), "x")

	report, err := engine.PruneEmpty(context.Background(), ops.PruneRequest{BatchSize: 100})
	if err != nil {
		t.Fatalf("PruneEmpty: %v", err)
	}
	if report.Found != 3 || report.Acted != 3 {
		t.Fatalf("found=%d acted=%d, want 3/3", report.Found, report.Acted)
	}
	if testsupport.Exists(filepath.Join(root, "a")) {
		t.Fatal("nested empty tree still present")
	}
	if !testsupport.Exists(filepath.Join(root, "keep", "movie.mkv")) {
		t.Fatal("non-empty folder must survive")
	}

	second, err := engine.PruneEmpty(context.Background(), ops.PruneRequest{BatchSize: 100})
	if err != nil {
		t.Fatalf("second PruneEmpty: %v", err)
	}
	if second.Found != 0 {
		t.Fatalf("second pass found %d, want 0", second.Found)
	}
}

func TestPruneEmptyNeverDeletesRoot(t *testing.T) {
	engine, cfg := newTestEngine(t)
	root := cfg.Paths.TargetDir
	testsupport.MkdirAll(t, filepath.Join(root, "only"))

	if _, err := engine.PruneEmpty(context.Background(), ops.PruneRequest{BatchSize: 100}); err != nil {
		t.Fatalf("PruneEmpty: %v", err)
	}
	if !testsupport.Exists(root) {
		t.Fatal("root was deleted")
	}
}

func TestPruneEmptyBatchBudget(t *testing.T) {
	engine, cfg := newTestEngine(t)
	root := cfg.Paths.TargetDir
	for _, name := range []string{"e1", "e2", "e3", "e4", "e5"} {
		testsupport.MkdirAll(t, filepath.Join(root, name))
	}

	report, err := engine.PruneEmpty(context.Background(), ops.PruneRequest{BatchSize: 2})
	if err != nil {
		t.Fatalf("PruneEmpty: %v", err)
	}
	if report.Acted != 2 || !report.BatchLimitReached || report.Remaining != 3 {
		t.Fatalf("acted=%d limit=%v remaining=%d, want 2/true/3",
			report.Acted, report.BatchLimitReached, report.Remaining)
	}

	// Repeated calls converge; the final call reports no limit.
	for i := 0; i < 10; i++ {
		report, err = engine.PruneEmpty(context.Background(), ops.PruneRequest{BatchSize: 2})
		if err != nil {
			t.Fatalf("PruneEmpty pass %d: %v", i, err)
		}
		if report.Found == 0 {
			break
		}
	}
	if report.Found != 0 || report.BatchLimitReached {
		t.Fatalf("expected convergence, got %+v", report.BatchFields)
	}
}

func TestPruneEmptyDryRunTouchesNothing(t *testing.T) {
	engine, cfg := newTestEngine(t)
	root := cfg.Paths.TargetDir
	testsupport.MkdirAll(t, filepath.Join(root, "empty"))

	report, err := engine.PruneEmpty(context.Background(), ops.PruneRequest{DryRun: true, BatchSize: 100})
	if err != nil {
		t.Fatalf("PruneEmpty: %v", err)
	}
	if report.Acted != 1 {
		t.Fatalf("acted = %d, want 1 would-act", report.Acted)
	}
	if !testsupport.Exists(filepath.Join(root, "empty")) {
		t.Fatal("dry run deleted a folder")
	}
}

func TestPruneEmptyValidation(t *testing.T) {
	engine, _ := newTestEngine(t)

	if _, err := engine.PruneEmpty(context.Background(), ops.PruneRequest{BatchSize: 0}); !errors.Is(err, ops.ErrValidation) {
		t.Fatalf("batch size 0: got %v, want ErrValidation", err)
	}
	if _, err := engine.PruneEmpty(context.Background(), ops.PruneRequest{
		Root:      filepath.Join(t.TempDir(), "absent"),
		BatchSize: 1,
	}); !errors.Is(err, ops.ErrNotFound) {
		t.Fatalf("missing root: got %v, want ErrNotFound", err)
	}
	if _, err := engine.PruneEmpty(context.Background(), ops.PruneRequest{
		Root:      "/etc",
		BatchSize: 1,
	}); !errors.Is(err, ops.ErrProtected) {
		t.Fatalf("protected root: got %v, want ErrProtected", err)
	}
}

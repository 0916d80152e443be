package ops_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"brronson/internal/ops"
	"brronson/internal/testsupport"
)

func TestMigrateNonMoviePreservesRelativePath(t *testing.T) {
	engine, cfg := newTestEngine(t)
	root := cfg.Paths.TargetDir
	testsupport.WriteFile(t, filepath.Join(root, "Genre", "Extras", "poster.jpg"), "x")
	testsupport.WriteFile(t, filepath.Join(root, "Genre", "Film", "film.mkv"), "x")

	report, err := engine.MigrateNonMovie(context.Background(), ops.MigrateRequest{})
	if err != nil {
		t.Fatalf("MigrateNonMovie: %v", err)
	}
	if report.Acted != 1 {
		t.Fatalf("acted = %d, want 1", report.Acted)
	}
	moved := filepath.Join(cfg.Paths.MigratedDir, "Genre", "Extras", "poster.jpg")
	if !testsupport.Exists(moved) {
		t.Fatalf("expected %s to exist", moved)
	}
	if testsupport.Exists(filepath.Join(root, "Genre", "Extras")) {
		t.Fatal("migrated folder still present in root")
	}
	if !testsupport.Exists(filepath.Join(root, "Genre", "Film", "film.mkv")) {
		t.Fatal("movie folder must stay")
	}
}

func TestMigrateNonMovieExcludesNestedDestination(t *testing.T) {
	engine, cfg := newTestEngine(t)
	root := cfg.Paths.TargetDir
	dest := filepath.Join(root, "migrated")
	testsupport.WriteFile(t, filepath.Join(dest, "old", "junk.txt"), "x")
	testsupport.WriteFile(t, filepath.Join(root, "Extras", "note.txt"), "x")

	report, err := engine.MigrateNonMovie(context.Background(), ops.MigrateRequest{Dest: dest})
	if err != nil {
		t.Fatalf("MigrateNonMovie: %v", err)
	}
	if report.Found != 1 {
		t.Fatalf("found = %d, destination subtree must not be a candidate", report.Found)
	}
	if !testsupport.Exists(filepath.Join(dest, "old", "junk.txt")) {
		t.Fatal("destination content disturbed")
	}
	if !testsupport.Exists(filepath.Join(dest, "Extras", "note.txt")) {
		t.Fatal("candidate not moved into nested destination")
	}
}

func TestMigrateNonMovieNeverOverwrites(t *testing.T) {
	engine, cfg := newTestEngine(t)
	root := cfg.Paths.TargetDir
	testsupport.WriteFile(t, filepath.Join(root, "Extras", "note.txt"), "B")
	existing := filepath.Join(cfg.Paths.MigratedDir, "Extras")
	testsupport.WriteFile(t, filepath.Join(existing, "note.txt"), "A")

	report, err := engine.MigrateNonMovie(context.Background(), ops.MigrateRequest{})
	if err != nil {
		t.Fatalf("MigrateNonMovie: %v", err)
	}
	if report.Skipped != 1 || report.Acted != 0 || report.Errors != 0 {
		t.Fatalf("collision accounting: %+v", report.BatchFields)
	}
	if got := testsupport.ReadFile(t, filepath.Join(existing, "note.txt")); got != "A" {
		t.Fatalf("destination content = %q, want untouched A", got)
	}
	if !testsupport.Exists(filepath.Join(root, "Extras", "note.txt")) {
		t.Fatal("skipped source must remain")
	}
}

func TestMigrateNonMovieScanLimit(t *testing.T) {
	engine, cfg := newTestEngine(t)
	root := cfg.Paths.TargetDir
	for _, name := range []string{"a", "b", "c"} {
		testsupport.WriteFile(t, filepath.Join(root, name, "note.txt"), "x")
	}

	report, err := engine.MigrateNonMovie(context.Background(), ops.MigrateRequest{ScanLimit: 2})
	if err != nil {
		t.Fatalf("MigrateNonMovie: %v", err)
	}
	if report.Found != 2 || !report.ScanLimitReached {
		t.Fatalf("found=%d scanLimitReached=%v, want 2/true", report.Found, report.ScanLimitReached)
	}
}

func TestMigrateNonMovieValidation(t *testing.T) {
	engine, _ := newTestEngine(t)
	if _, err := engine.MigrateNonMovie(context.Background(), ops.MigrateRequest{BatchSize: -1}); !errors.Is(err, ops.ErrValidation) {
		t.Fatalf("negative batch size: got %v, want ErrValidation", err)
	}
	if _, err := engine.MigrateNonMovie(context.Background(), ops.MigrateRequest{ScanLimit: -1}); !errors.Is(err, ops.ErrValidation) {
		t.Fatalf("negative scan limit: got %v, want ErrValidation", err)
	}
}

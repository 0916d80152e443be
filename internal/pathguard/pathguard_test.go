package pathguard_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"brronson/internal/pathguard"
)

func TestValidateAcceptsTempDirectories(t *testing.T) {
	guard := pathguard.New()
	dir := t.TempDir()

	resolved, err := guard.Validate(dir)
	if err != nil {
		t.Fatalf("Validate(%s): %v", dir, err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
}

func TestValidateRejectsSystemRoots(t *testing.T) {
	guard := pathguard.New()
	for _, path := range []string{"/", "/etc", "/usr", "/var/log"} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		_, err := guard.Validate(path)
		if !errors.Is(err, pathguard.ErrProtected) {
			t.Errorf("Validate(%s) = %v, want ErrProtected", path, err)
		}
	}
}

func TestValidateMissingPath(t *testing.T) {
	guard := pathguard.New()
	_, err := guard.Validate(filepath.Join(t.TempDir(), "absent"))
	if !errors.Is(err, pathguard.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestValidateResolvesSymlinks(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "real")
	if err := os.Mkdir(real, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	link := filepath.Join(dir, "link")
	if err := os.Symlink(real, link); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	guard := pathguard.New()
	resolved, err := guard.Validate(link)
	if err != nil {
		t.Fatalf("Validate(%s): %v", link, err)
	}
	want, _ := filepath.EvalSymlinks(real)
	if resolved != want {
		t.Fatalf("resolved = %q, want %q", resolved, want)
	}
}

func TestValidateExtraAllowedRoot(t *testing.T) {
	// An allow-listed subtree overrides the deny-list for paths beneath it.
	base := t.TempDir()
	guard := pathguard.New(base)
	sub := filepath.Join(base, "work")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := guard.Validate(sub); err != nil {
		t.Fatalf("Validate(%s): %v", sub, err)
	}
}

package preflight_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"brronson/internal/preflight"
	"brronson/internal/testsupport"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	if r := preflight.CheckDirectoryAccess("dir", dir); !r.Passed {
		t.Fatalf("accessible dir failed: %s", r.Detail)
	}

	missing := filepath.Join(dir, "absent")
	if r := preflight.CheckDirectoryAccess("dir", missing); r.Passed {
		t.Fatal("missing dir passed")
	} else if !strings.Contains(r.Detail, "does not exist") {
		t.Fatalf("detail = %q", r.Detail)
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if r := preflight.CheckDirectoryAccess("dir", file); r.Passed {
		t.Fatal("plain file passed as directory")
	}
}

func TestCheckDirectoryAccessPermissions(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits do not bind as root")
	}
	dir := filepath.Join(t.TempDir(), "locked")
	if err := os.Mkdir(dir, 0o000); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	if r := preflight.CheckDirectoryAccess("dir", dir); r.Passed {
		t.Fatal("unreadable dir passed")
	}
}

func TestCheckDestination(t *testing.T) {
	base := t.TempDir()

	// Existing destination behaves like a plain access check.
	if r := preflight.CheckDestination("dest", base); !r.Passed {
		t.Fatalf("existing dest failed: %s", r.Detail)
	}

	// Missing destination passes when an ancestor is writable.
	missing := filepath.Join(base, "a", "b", "c")
	r := preflight.CheckDestination("dest", missing)
	if !r.Passed {
		t.Fatalf("creatable dest failed: %s", r.Detail)
	}
	if !strings.Contains(r.Detail, "will be created under") {
		t.Fatalf("detail = %q", r.Detail)
	}
}

func TestCheckDestinationUnwritableAncestor(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits do not bind as root")
	}
	base := filepath.Join(t.TempDir(), "ro")
	if err := os.Mkdir(base, 0o555); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(base, 0o755) })

	if r := preflight.CheckDestination("dest", filepath.Join(base, "new")); r.Passed {
		t.Fatalf("read-only ancestor passed: %s", r.Detail)
	}
}

func TestCheckFreeSpace(t *testing.T) {
	r := preflight.CheckFreeSpace("space", t.TempDir())
	if !strings.Contains(r.Detail, "GiB free") {
		t.Fatalf("detail = %q", r.Detail)
	}

	if r := preflight.CheckFreeSpace("space", filepath.Join(t.TempDir(), "absent")); r.Passed {
		t.Fatal("statfs on a missing path passed")
	}
}

func TestRunAllAndPassed(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.MkdirAll(t, cfg.Paths.DataDir)

	results := preflight.RunAll(cfg)
	if len(results) != 7 {
		t.Fatalf("result count = %d, want 7", len(results))
	}
	for _, r := range results {
		if !r.Passed {
			t.Fatalf("check %s failed: %s", r.Name, r.Detail)
		}
	}
	if !preflight.Passed(results) {
		t.Fatal("Passed = false for all-green results")
	}

	results[3].Passed = false
	if preflight.Passed(results) {
		t.Fatal("Passed = true with a failed check")
	}
}

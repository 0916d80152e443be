package testsupport

import (
	"path/filepath"
	"testing"

	"brronson/internal/config"
)

// NewConfig produces a config seeded with unique temp directories per test.
// The directories that operations expect to exist are created; the move and
// copy destinations are left to the operations themselves.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.CleanupDir = filepath.Join(base, "cleanup")
	cfg.Paths.TargetDir = filepath.Join(base, "target")
	cfg.Paths.RecycledDir = filepath.Join(base, "recycled")
	cfg.Paths.SalvagedDir = filepath.Join(base, "salvaged")
	cfg.Paths.MigratedDir = filepath.Join(base, "migrated")
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.APIBind = "127.0.0.1:0"
	MkdirAll(t, cfg.Paths.CleanupDir)
	MkdirAll(t, cfg.Paths.TargetDir)
	return &cfg
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.CleanupDir)
}

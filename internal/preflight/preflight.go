package preflight

import (
	"brronson/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every applicable readiness check for the given config.
// The cleanup and target roots must exist up front; the recycled, salvaged,
// and migrated destinations are created on demand by their operations, so
// for those only an existing path is inspected.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Cleanup directory", cfg.Paths.CleanupDir),
		CheckDirectoryAccess("Target directory", cfg.Paths.TargetDir),
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckFreeSpace("Target free space", cfg.Paths.TargetDir),
	}
	for _, dest := range []struct {
		name string
		path string
	}{
		{"Recycled directory", cfg.Paths.RecycledDir},
		{"Salvaged directory", cfg.Paths.SalvagedDir},
		{"Migrated directory", cfg.Paths.MigratedDir},
	} {
		results = append(results, CheckDestination(dest.name, dest.path))
	}
	return results
}

// Passed reports whether every result in the set passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

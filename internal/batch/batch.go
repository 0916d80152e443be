package batch

import (
	"fmt"
	"path/filepath"

	"log/slog"

	"brronson/internal/logging"
	"brronson/internal/scan"
)

// Outcome tags what happened to a single candidate.
type Outcome int

const (
	// OutcomeAct means the candidate is live: the mutation should run (or
	// be recorded as "would act" in a dry run).
	OutcomeAct Outcome = iota
	// OutcomeSkip means the mutation must not run, typically because the
	// destination already exists. Skips never consume budget.
	OutcomeSkip
	// OutcomeVanished means the candidate disappeared between scan and
	// mutation. Treated as already done: no record, no error, no budget.
	OutcomeVanished
)

// Mutation is one operation-specific change applied per candidate.
type Mutation interface {
	// Inspect classifies the candidate without touching disk. It is called
	// before Apply and again after a failed Apply to distinguish a real
	// failure from a candidate that vanished mid-flight.
	Inspect(c scan.Candidate) Outcome
	// Apply performs the mutation, creating destination parents as needed.
	Apply(c scan.Candidate) error
}

// Result is the accounting for one bounded mutation phase.
type Result struct {
	Found             int
	Acted             int
	Skipped           int
	Errored           int
	ActedPaths        []string
	SkippedPaths      []string
	Errors            []string
	BatchLimitReached bool
	// Remaining counts candidates never visited because the budget stopped
	// the pass: Found minus processed.
	Remaining int
}

// Mutator applies a mutation over an ordered candidate list under a
// success budget.
//
// Only successful (or dry-run "would act") mutations consume budget; a
// failing candidate is recorded and passed over, so a permanently failing
// entry never blocks progress on the rest. Dry runs mirror live
// accounting exactly but never touch disk.
type Mutator struct {
	// Root is the resolved traversal root. It is re-checked against every
	// candidate: scanners already exclude it, this is defense in depth.
	Root string
	// BatchSize is the success budget. Zero or negative means unlimited.
	BatchSize int
	DryRun    bool
	Logger    *slog.Logger
}

// Run visits candidates in order until the list or the budget is exhausted.
func (m *Mutator) Run(candidates []scan.Candidate, mutation Mutation) Result {
	logger := m.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	res := Result{Found: len(candidates)}
	processed := 0
	for _, c := range candidates {
		if m.BatchSize > 0 && res.Acted >= m.BatchSize {
			res.BatchLimitReached = true
			break
		}
		processed++

		if filepath.Clean(c.Path) == m.Root {
			logger.Warn("candidate equals traversal root, refusing to mutate",
				logging.String("path", c.Path))
			continue
		}

		switch mutation.Inspect(c) {
		case OutcomeVanished:
			continue
		case OutcomeSkip:
			res.Skipped++
			res.SkippedPaths = append(res.SkippedPaths, c.Path)
			continue
		}

		if m.DryRun {
			res.Acted++
			res.ActedPaths = append(res.ActedPaths, c.Path)
			logger.Info("dry run: would act", logging.String("path", c.Path), logging.String("rule", string(c.Rule)))
			continue
		}

		if err := mutation.Apply(c); err != nil {
			if mutation.Inspect(c) == OutcomeVanished {
				continue
			}
			res.Errored++
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", c.Path, err))
			logger.Error("mutation failed", logging.String("path", c.Path), logging.Error(err))
			continue
		}
		res.Acted++
		res.ActedPaths = append(res.ActedPaths, c.Path)
		logger.Info("mutated", logging.String("path", c.Path), logging.String("rule", string(c.Rule)))
	}

	res.Remaining = res.Found - processed
	return res
}

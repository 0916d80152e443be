package ops

import (
	"fmt"
	"os"

	"brronson/internal/batch"
	"brronson/internal/fileutil"
	"brronson/internal/scan"
)

// lexists reports whether the path exists without following symlinks, so a
// broken link still counts as present.
func lexists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// removeMutation deletes a candidate in place: rmdir for empty folders,
// unlink for unwanted files. os.Remove covers both.
type removeMutation struct{}

func (removeMutation) Inspect(c scan.Candidate) batch.Outcome {
	if !lexists(c.Path) {
		return batch.OutcomeVanished
	}
	return batch.OutcomeAct
}

func (removeMutation) Apply(c scan.Candidate) error {
	return os.Remove(c.Path)
}

// moveMutation relocates each candidate to a precomputed destination.
// An existing destination is never overwritten: the candidate is skipped.
type moveMutation struct {
	dest map[string]string
}

func (m moveMutation) Inspect(c scan.Candidate) batch.Outcome {
	if !lexists(c.Path) {
		return batch.OutcomeVanished
	}
	if lexists(m.dest[c.Path]) {
		return batch.OutcomeSkip
	}
	return batch.OutcomeAct
}

func (m moveMutation) Apply(c scan.Candidate) error {
	dest, ok := m.dest[c.Path]
	if !ok {
		return fmt.Errorf("no destination for %s", c.Path)
	}
	return fileutil.MovePath(c.Path, dest)
}

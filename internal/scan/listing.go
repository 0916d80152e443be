package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"brronson/internal/classify"
)

// Subdirectories returns the names (not full paths) of the directory's
// immediate subdirectories.
func Subdirectories(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// SubtitleRootFolders returns the immediate subdirectories of dir that have
// a subtitle file among their direct children.
func SubtitleRootFolders(dir string, subtitleExts classify.ExtensionSet) ([]Candidate, error) {
	names, err := Subdirectories(dir)
	if err != nil {
		return nil, err
	}
	var candidates []Candidate
	for _, name := range names {
		folder := filepath.Join(dir, name)
		if classify.HasRootSubtitle(folder, subtitleExts) {
			candidates = append(candidates, Candidate{Path: folder, Rule: RuleHasSubtitleRoot})
		}
	}
	return candidates, nil
}

// SubtitleFiles collects every subtitle file beneath folder, sorted by path
// so repeated batched calls process files in an identical order. Unreadable
// subtrees are skipped.
func SubtitleFiles(folder string, subtitleExts classify.ExtensionSet) []Candidate {
	var candidates []Candidate
	_ = filepath.WalkDir(folder, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && classify.IsSubtitle(path, subtitleExts) {
			candidates = append(candidates, Candidate{Path: path, Rule: RuleSubtitleFile})
		}
		return nil
	})
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Path < candidates[j].Path })
	return candidates
}

package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"brronson/internal/classify"
)

// NonMovieFolders walks root top-down and returns directories that hold at
// least one direct file but no movie file anywhere beneath them. The walk
// does not descend into a qualifying directory: the movie check is already
// recursive, so its descendants are covered by the parent candidate.
//
// The root is never a candidate. An optional exclude subtree (a migration
// destination nested inside root) is skipped entirely. Scanning stops once
// limit candidates are found; limit 0 means an unbounded scan. The limit is
// a scan cap, independent of any later mutation budget.
func NonMovieFolders(root, exclude string, limit int, movieExts classify.ExtensionSet) (candidates []Candidate, readErrors []string) {
	var walk func(dir string)
	walk = func(dir string) {
		if limit > 0 && len(candidates) >= limit {
			return
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			readErrors = append(readErrors, fmt.Sprintf("read %s: %v", dir, err))
			return
		}
		for _, entry := range entries {
			if limit > 0 && len(candidates) >= limit {
				return
			}
			if !entry.IsDir() {
				continue
			}
			sub := filepath.Join(dir, entry.Name())
			if exclude != "" && (sub == exclude || strings.HasPrefix(sub, exclude+string(filepath.Separator))) {
				continue
			}
			if classify.HasDirectFile(sub) && !classify.FolderHasMovie(sub, movieExts) {
				candidates = append(candidates, Candidate{Path: sub, Rule: RuleNoMovieFile})
				continue
			}
			walk(sub)
		}
	}

	walk(root)
	return candidates, readErrors
}

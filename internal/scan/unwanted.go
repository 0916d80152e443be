package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"brronson/internal/classify"
)

// UnwantedFiles walks root recursively and returns every file whose name
// matches one of the ordered patterns, tagged with the first matching
// pattern and the file size. Size lookup failures record 0 and are not
// errors. Unreadable subtrees are skipped and reported in readErrors.
func UnwantedFiles(root string, patterns []classify.Pattern) (candidates []Candidate, readErrors []string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			readErrors = append(readErrors, fmt.Sprintf("read %s: %v", path, err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		pattern, ok := classify.MatchUnwanted(d.Name(), patterns)
		if !ok {
			return nil
		}
		var size int64
		if info, infoErr := d.Info(); infoErr == nil {
			size = info.Size()
		}
		candidates = append(candidates, Candidate{
			Path:    path,
			Rule:    RulePattern,
			Pattern: pattern.Source,
			Size:    size,
		})
		return nil
	})
	return candidates, readErrors
}

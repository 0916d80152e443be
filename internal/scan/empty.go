package scan

import (
	"fmt"
	"os"
	"path/filepath"
)

// EmptyFolders walks root depth-first and returns every directory that is
// empty, deepest paths first. A directory counts as empty when it has no
// entries at all, or when every entry is a subdirectory already classified
// empty in this same pass. Any other entry, a regular file, a symlink (even
// broken), a socket, a FIFO, or a device, is content and keeps its parent
// alive.
//
// The root itself is never a candidate, even when all of its children are.
// Unreadable subtrees are skipped and reported in readErrors; they never
// classify as empty.
func EmptyFolders(root string) (candidates []Candidate, readErrors []string) {
	empty := make(map[string]bool)

	var walk func(dir string)
	walk = func(dir string) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			readErrors = append(readErrors, fmt.Sprintf("read %s: %v", dir, err))
			return
		}

		hasContent := false
		for _, entry := range entries {
			if entry.IsDir() {
				// Children first, so a parent is judged only after its
				// subtree has been accounted for.
				walk(filepath.Join(dir, entry.Name()))
				continue
			}
			hasContent = true
		}
		if hasContent {
			return
		}
		for _, entry := range entries {
			if entry.IsDir() && !empty[filepath.Join(dir, entry.Name())] {
				return
			}
		}
		empty[dir] = true
		if dir != root {
			candidates = append(candidates, Candidate{Path: dir, Rule: RuleEmpty})
		}
	}

	walk(root)
	return candidates, readErrors
}

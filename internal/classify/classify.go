package classify

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Pattern is a compiled unwanted-file rule. Rules are matched against the
// base filename only, case-insensitively, in caller order.
type Pattern struct {
	Source string
	re     *regexp.Regexp
}

// CompilePatterns compiles an ordered list of unwanted-file patterns.
func CompilePatterns(patterns []string) ([]Pattern, error) {
	compiled := make([]Pattern, 0, len(patterns))
	for _, raw := range patterns {
		re, err := regexp.Compile("(?i)" + raw)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", raw, err)
		}
		compiled = append(compiled, Pattern{Source: raw, re: re})
	}
	return compiled, nil
}

// MatchUnwanted returns the first pattern matching the filename, preserving
// caller order. The second result is false when no pattern matches.
func MatchUnwanted(filename string, patterns []Pattern) (Pattern, bool) {
	for _, p := range patterns {
		if p.re.MatchString(filename) {
			return p, true
		}
	}
	return Pattern{}, false
}

// ExtensionSet holds lowercase file extensions including the leading dot.
type ExtensionSet map[string]struct{}

// NewExtensionSet builds a case-insensitive extension set. Extensions
// without a leading dot are normalized to include one.
func NewExtensionSet(exts []string) ExtensionSet {
	set := make(ExtensionSet, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return set
}

// Contains reports whether the path's extension is in the set.
func (s ExtensionSet) Contains(path string) bool {
	_, ok := s[strings.ToLower(filepath.Ext(path))]
	return ok
}

// IsSubtitle reports whether the path carries a subtitle extension.
func IsSubtitle(path string, exts ExtensionSet) bool {
	return exts.Contains(path)
}

// IsMovie reports whether the path carries a movie extension.
func IsMovie(path string, exts ExtensionSet) bool {
	return exts.Contains(path)
}

// HasRootSubtitle reports whether the folder has a subtitle file among its
// direct children. Unreadable folders report false.
func HasRootSubtitle(folder string, exts ExtensionSet) bool {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.Type().IsRegular() && exts.Contains(entry.Name()) {
			return true
		}
	}
	return false
}

// FolderHasMovie reports whether any file anywhere beneath folder carries a
// movie extension. A read failure reports true: a subtree that cannot be
// fully inspected must not be treated as movie-free.
func FolderHasMovie(folder string, exts ExtensionSet) bool {
	found := false
	err := filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && exts.Contains(path) {
			found = true
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return true
	}
	return found
}

// FolderHasAnyFile reports whether any regular file exists anywhere beneath
// folder. Unreadable subtrees report false.
func FolderHasAnyFile(folder string) bool {
	found := false
	_ = filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return filepath.SkipDir
		}
		if d.Type().IsRegular() {
			found = true
			return filepath.SkipAll
		}
		return nil
	})
	return found
}

// HasDirectFile reports whether the folder has at least one regular file
// among its direct children.
func HasDirectFile(folder string) bool {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			return true
		}
	}
	return false
}

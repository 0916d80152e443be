package pathguard

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound indicates the resolved path does not exist.
var ErrNotFound = errors.New("directory not found")

// ErrProtected indicates the resolved path sits inside a protected system
// location.
var ErrProtected = errors.New("protected system location")

// deniedRoots are system locations an operation root must never equal or
// descend from. Because "/" is listed, only allow-listed roots pass.
var deniedRoots = []string{
	"/",
	"/home",
	"/usr",
	"/etc",
	"/var",
	"/bin",
	"/sbin",
	"/boot",
	"/root",
}

// allowedRoots are sandboxed locations exempted from the deny-list. They are
// checked first and short-circuit the denial.
var allowedRoots = []string{
	"/tmp",
	"/private/tmp",
	"/private/var",
}

// Guard validates that operation roots are existing, resolved directories
// outside protected system locations.
type Guard struct {
	allowed []string
}

// New constructs a Guard. Extra allowed roots (typically from configuration)
// are resolved and honored in addition to the built-in sandbox roots.
func New(extraAllowed ...string) *Guard {
	allowed := make([]string, 0, len(allowedRoots)+len(extraAllowed))
	for _, root := range append(append([]string{}, allowedRoots...), extraAllowed...) {
		resolved, err := filepath.EvalSymlinks(root)
		if err != nil {
			// Keep the literal path; a missing allow-list root simply
			// never matches.
			resolved = filepath.Clean(root)
		}
		allowed = append(allowed, resolved)
	}
	return &Guard{allowed: allowed}
}

// Validate resolves path to its canonical absolute form (following
// symlinks, so a link cannot smuggle an operation into a protected
// location) and checks it against the allow- and deny-lists. It returns
// the resolved path.
func (g *Guard) Validate(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	if _, err := os.Stat(resolved); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("stat %s: %w", resolved, err)
	}

	for _, root := range g.allowed {
		if within(resolved, root) {
			return resolved, nil
		}
	}
	for _, root := range deniedRoots {
		if within(resolved, root) {
			return "", fmt.Errorf("%w: %s", ErrProtected, path)
		}
	}
	return resolved, nil
}

// within reports whether path equals root or descends from it.
func within(path, root string) bool {
	if path == root {
		return true
	}
	if root == "/" {
		return strings.HasPrefix(path, "/")
	}
	return strings.HasPrefix(path, root+string(filepath.Separator))
}

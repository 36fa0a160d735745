package fs

import (
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/strops/pkg/core"
)

// DefaultPatterns selects the files processed when no pattern is given.
var DefaultPatterns = []string{"**/*.txt"}

var defaultIgnores = []string{
	"**/.git/**",
	"**/node_modules/**",
}

// DefaultIgnores returns a copy of the built-in ignore patterns.
func DefaultIgnores() []string {
	out := make([]string, len(defaultIgnores))
	copy(out, defaultIgnores)
	return out
}

// ValidatePatterns checks that every pattern is a valid doublestar glob.
func ValidatePatterns(patterns []string) error {
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("%w: invalid pattern %q", core.ErrInvalidArgument, pat)
		}
	}
	return nil
}

// Collect returns the regular files under root matching any of patterns and
// none of ignores (plus the default ignores). Paths are slash-separated,
// relative to root, sorted and unique.
func Collect(root string, patterns, ignores []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	if err := ValidatePatterns(patterns); err != nil {
		return nil, err
	}
	if err := ValidatePatterns(ignores); err != nil {
		return nil, err
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: root %q: %v", core.ErrInvalidArgument, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: root %q is not a directory", core.ErrInvalidArgument, root)
	}

	fsys := os.DirFS(root)
	seen := make(map[string]struct{})
	var files []string
	for _, pat := range patterns {
		matches, err := doublestar.Glob(fsys, pat)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pat, err)
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			if isIgnored(m, ignores) {
				continue
			}
			info, err := iofs.Stat(fsys, m)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}

	sort.Strings(files)
	return files, nil
}

// Matches reports whether rel (relative to the root) is selected by patterns
// and not excluded by ignores.
func Matches(rel string, patterns, ignores []string) bool {
	normalized := filepath.ToSlash(rel)
	if isIgnored(normalized, ignores) {
		return false
	}
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	for _, pat := range patterns {
		if matched, err := doublestar.Match(pat, normalized); err == nil && matched {
			return true
		}
	}
	return false
}

func isIgnored(rel string, ignores []string) bool {
	for _, list := range [][]string{defaultIgnores, ignores} {
		for _, pat := range list {
			if matched, err := doublestar.Match(pat, rel); err == nil && matched {
				return true
			}
		}
	}
	return false
}

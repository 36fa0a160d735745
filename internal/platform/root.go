package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// ConfigNames are the project config files looked up, in order of preference.
var ConfigNames = []string{".strops.yaml", ".strops.yml", ".strops.toml"}

// ErrConfigNotFound is returned by FindConfig when no config file exists
// in the start directory or any of its parents.
var ErrConfigNotFound = errors.New("config not found")

// FindConfig recursively looks upwards for a project config file and
// returns its absolute path.
func FindConfig(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		for _, name := range ConfigNames {
			if hasFile(dir, name) {
				return filepath.Join(dir, name), nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", ErrConfigNotFound
}

func hasFile(dir, name string) bool {
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && !info.IsDir()
}

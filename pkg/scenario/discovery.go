package scenario

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/picogrid/pixel-fight/pkg/logger"
)

// Info describes a scenario file found on disk
type Info struct {
	Path       string
	Descriptor *Descriptor
}

// Discover finds every scenario file below dir. Files that fail to parse
// are reported and skipped.
func Discover(dir string) ([]Info, error) {
	var found []Info

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !isScenarioFile(path) {
			return nil
		}

		d, err := Load(path)
		if err != nil {
			logger.Warnf("Skipping %s: %v", path, err)
			return nil
		}
		found = append(found, Info{Path: path, Descriptor: d})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan for scenarios: %w", err)
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Path < found[j].Path })
	return found, nil
}

func isScenarioFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

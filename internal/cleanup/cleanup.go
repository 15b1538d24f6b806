// Package cleanup prunes old answer exports from .deckhand/exports.
package cleanup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type export struct {
	name    string
	modTime time.Time
}

// listExports returns the JSON files in dir, oldest first. A missing
// directory has no exports.
func listExports(dir string) ([]export, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading exports directory: %w", err)
	}

	var out []export
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		out = append(out, export{name: entry.Name(), modTime: info.ModTime()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].modTime.Equal(out[j].modTime) {
			return out[i].name < out[j].name
		}
		return out[i].modTime.Before(out[j].modTime)
	})
	return out, nil
}

func remove(dir string, victims []export, dryRun bool) ([]string, error) {
	var pruned []string
	for _, e := range victims {
		if !dryRun {
			if err := os.Remove(filepath.Join(dir, e.name)); err != nil {
				return pruned, fmt.Errorf("removing %s: %w", e.name, err)
			}
		}
		pruned = append(pruned, e.name)
	}
	return pruned, nil
}

// PruneByAge removes exports last written more than maxAgeDays ago.
// If dryRun is true, no files are deleted; the function only returns
// the names that would be removed.
func PruneByAge(dir string, maxAgeDays int, dryRun bool) ([]string, error) {
	exports, err := listExports(dir)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -maxAgeDays)
	var old []export
	for _, e := range exports {
		if e.modTime.Before(cutoff) {
			old = append(old, e)
		}
	}
	return remove(dir, old, dryRun)
}

// PruneKeepRecent removes all exports except the keep most recently written.
func PruneKeepRecent(dir string, keep int, dryRun bool) ([]string, error) {
	exports, err := listExports(dir)
	if err != nil {
		return nil, err
	}
	if len(exports) <= keep {
		return nil, nil
	}
	return remove(dir, exports[:len(exports)-keep], dryRun)
}

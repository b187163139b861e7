// Package file has small filesystem helpers shared across the tool.
package file

import (
	"io/fs"
	"path/filepath"
	"sort"
	"time"
)

// FindRecentAfter walks dir and returns files modified after cutoff whose
// names pass keep, sorted for stable processing. A nil keep accepts
// everything.
func FindRecentAfter(dir string, cutoff time.Time, keep func(name string) bool) ([]string, error) {
	var recent []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if keep != nil && !keep(d.Name()) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(cutoff) {
			recent = append(recent, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(recent)
	return recent, nil
}

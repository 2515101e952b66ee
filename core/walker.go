package core

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/debtengine/debtengine/core/signal"
	"github.com/debtengine/debtengine/internal/contract"
)

// vendoredDirs are dependency and build-output directories that never hold
// first-party source worth scoring.
var vendoredDirs = map[string]struct{}{
	"node_modules": {},
	"target":       {},
	"__pycache__":  {},
	"vendor":       {},
	"dist":         {},
	"build":        {},
}

// IsSkippedEntry reports whether a walk entry is excluded by name, covering
// hidden entries and conventional vendored directories. The same rule
// applies to files and directories.
func IsSkippedEntry(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	_, ok := vendoredDirs[name]
	return ok
}

// ListSourceFiles enumerates every eligible source file under root and
// returns workspace-relative slash paths. filepath.WalkDir visits entries in
// lexical order, so the enumeration order is deterministic.
func ListSourceFiles(root string, excludes []string, pathFilter string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if p == root {
				return walkErr
			}
			return nil // unreadable subtree, best effort
		}
		if p == root {
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if IsSkippedEntry(name) {
				return fs.SkipDir
			}
			return nil
		}
		if IsSkippedEntry(name) || !signal.IsSourceFile(name) {
			return nil
		}

		rel := contract.ToRelPath(root, p)
		if pathFilter != "" && !strings.HasPrefix(rel, pathFilter) {
			return nil
		}
		if contract.ShouldIgnore(rel, excludes) {
			return nil
		}

		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

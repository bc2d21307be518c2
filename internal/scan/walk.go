package scan

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/MOYARU/pubguard/internal/report"
)

// noiseDirs are pruned before recursing so traversal stays near-linear
// in real file count.
var noiseDirs = map[string]bool{
	".git":          true,
	"venv":          true,
	".venv":         true,
	"env":           true,
	"node_modules":  true,
	"__pycache__":   true,
	".pytest_cache": true,
	".mypy_cache":   true,
}

// skipExtensions are artifact files excluded from the full-tree pass.
var skipExtensions = map[string]bool{
	".log":     true,
	".db":      true,
	".sqlite3": true,
	".pyc":     true,
}

// IsNoiseDir reports whether a directory name is pruned from traversal.
// Normalization excludes the same set when searching for misplaced files.
func IsNoiseDir(name string) bool {
	return noiseDirs[name]
}

func excludedFile(name string) bool {
	return skipExtensions[strings.ToLower(filepath.Ext(name))]
}

// walkTree visits every regular file under root, pruning noise
// directories and artifact files. Visit errors are collected as
// non-fatal traversal errors; the walk itself never mutates the tree.
func walkTree(root string, visit func(path, rel string) error) []report.TraversalError {
	var errs []report.TraversalError

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			errs = append(errs, report.TraversalError{Path: path, Err: err})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && noiseDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		if excludedFile(d.Name()) {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if err := visit(path, filepath.ToSlash(rel)); err != nil {
			errs = append(errs, report.TraversalError{Path: path, Err: err})
		}
		return nil
	})
	if walkErr != nil {
		errs = append(errs, report.TraversalError{Path: root, Err: walkErr})
	}
	return errs
}

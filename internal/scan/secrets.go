package scan

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/MOYARU/pubguard/internal/report"
)

// maxLineBytes caps scanner buffers; config files with longer lines are
// almost certainly minified artifacts, and a pasted key fits well under
// this.
const maxLineBytes = 256 * 1024

// focusFiles are exactly where a real key would be pasted. They get a
// second pass that bypasses the tree-walk exclusion rules.
var focusFiles = []string{
	"config/settings.yaml",
	".env",
	"main.py",
	"test_setup.py",
}

type findingKey struct {
	file  string
	line  int
	class report.Class
}

// Secrets walks the tree rooted at root and returns every
// credential-shaped finding, in traversal order, plus any non-fatal
// read errors. extraFocus extends the focused second pass.
func Secrets(root string, extraFocus []string) ([]report.Finding, []report.TraversalError) {
	var findings []report.Finding
	seen := make(map[findingKey]bool)

	collect := func(path, rel string) error {
		fs, err := scanFile(path, rel, secretCatalog)
		if err != nil {
			return err
		}
		for _, f := range fs {
			k := findingKey{f.File, f.Line, f.Class}
			if !seen[k] {
				seen[k] = true
				findings = append(findings, f)
			}
		}
		return nil
	}

	errs := walkTree(root, collect)

	for _, rel := range append(append([]string{}, focusFiles...), extraFocus...) {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := collect(path, rel); err != nil {
			errs = append(errs, report.TraversalError{Path: path, Err: err})
		}
	}
	return findings, errs
}

func scanFile(path, rel string, catalog []Pattern) ([]report.Finding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []report.Finding
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		p, ok := MatchLine(catalog, line)
		if !ok {
			continue
		}
		out = append(out, report.Finding{
			File:     rel,
			Line:     lineNo,
			Context:  report.TrimContext(line, 160),
			Rule:     p.Name,
			Class:    p.Class,
			Severity: p.Severity,
		})
	}
	if err := sc.Err(); err != nil {
		return out, err
	}
	return out, nil
}

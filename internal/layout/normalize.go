package layout

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/MOYARU/pubguard/internal/scan"
)

type Outcome string

const (
	OutcomePlanned          Outcome = "planned"
	OutcomeApplied          Outcome = "applied"
	OutcomeSkippedExists    Outcome = "skipped-exists"
	OutcomeSkippedAmbiguous Outcome = "skipped-ambiguous"
	OutcomeFailed           Outcome = "failed"
)

// MoveAction is one proposed or executed relocation. Paths are
// slash-separated and relative to the project root.
type MoveAction struct {
	Source     string
	Dest       string
	Outcome    Outcome
	Candidates []string
	Err        error
}

// Result aggregates one normalization run. Counters are returned here
// instead of being accumulated in shared state.
type Result struct {
	Actions          []MoveAction
	DirsCreated      int
	DirsExisting     int
	MarkersCreated   int
	GitignoreCreated bool
}

// Applied returns the number of actions that actually moved a file.
func (r Result) Applied() int {
	n := 0
	for _, a := range r.Actions {
		if a.Outcome == OutcomeApplied {
			n++
		}
	}
	return n
}

var defaultGitignore = strings.Join([]string{
	"__pycache__/",
	"*.pyc",
	"venv/",
	".venv/",
	".env",
	"logs/*.log",
	"data/*.db",
	"*.sqlite3",
	"",
}, "\n")

// Normalize converges the tree at root toward the canonical layout.
// With apply=false it only plans. Existing canonical files are never
// overwritten, ambiguous candidates are never guessed at, and a second
// run over the output plans nothing beyond skip-if-exists markers.
func Normalize(root string, apply bool) (Result, error) {
	var res Result
	planned := make(map[string]bool)

	// Canonical placements: search by base name for anything missing
	// from its canonical path.
	for _, rule := range CanonicalFiles {
		if fileExists(filepath.Join(root, filepath.FromSlash(rule.Path))) {
			continue
		}
		matches, err := findByBase(root, path.Base(rule.Path))
		if err != nil {
			return res, err
		}
		switch len(matches) {
		case 0:
			// Genuinely missing; not this component's problem.
		case 1:
			res.Actions = append(res.Actions, MoveAction{
				Source:  matches[0],
				Dest:    rule.Path,
				Outcome: OutcomePlanned,
			})
			planned[rule.Path] = true
		default:
			res.Actions = append(res.Actions, MoveAction{
				Source:     matches[0],
				Dest:       rule.Path,
				Outcome:    OutcomeSkippedAmbiguous,
				Candidates: matches,
			})
		}
	}

	// Legacy names: table entries move, untabled prefixes rename in
	// place.
	legacy, err := findLegacy(root)
	if err != nil {
		return res, err
	}
	for _, rel := range legacy {
		name := path.Base(rel)
		dest, ok := ResolveLegacy(name)
		if !ok {
			dest = path.Join(path.Dir(rel), strings.TrimPrefix(name, LegacyPrefix(name)))
		}
		if dest == rel {
			continue
		}
		act := MoveAction{Source: rel, Dest: dest, Outcome: OutcomePlanned}
		if planned[dest] || fileExists(filepath.Join(root, filepath.FromSlash(dest))) {
			act.Outcome = OutcomeSkippedExists
		} else {
			planned[dest] = true
		}
		res.Actions = append(res.Actions, act)
	}

	// Directories and markers come before any move so destinations and
	// the published tree's shape exist up front.
	if err := ensureLayout(root, apply, &res); err != nil {
		return res, err
	}

	for i := range res.Actions {
		a := &res.Actions[i]
		if a.Outcome != OutcomePlanned || !apply {
			continue
		}
		destAbs := filepath.Join(root, filepath.FromSlash(a.Dest))
		if fileExists(destAbs) {
			a.Outcome = OutcomeSkippedExists
			continue
		}
		if err := os.MkdirAll(filepath.Dir(destAbs), 0o755); err != nil {
			a.Outcome = OutcomeFailed
			a.Err = err
			continue
		}
		srcAbs := filepath.Join(root, filepath.FromSlash(a.Source))
		if err := os.Rename(srcAbs, destAbs); err != nil {
			a.Outcome = OutcomeFailed
			a.Err = err
			continue
		}
		a.Outcome = OutcomeApplied
	}
	return res, nil
}

func ensureLayout(root string, apply bool, res *Result) error {
	for _, d := range CanonicalDirs {
		dirAbs := filepath.Join(root, d.Path)
		if st, err := os.Stat(dirAbs); err == nil && st.IsDir() {
			res.DirsExisting++
		} else {
			res.DirsCreated++
			if apply {
				if err := os.MkdirAll(dirAbs, 0o755); err != nil {
					return err
				}
			}
		}
		if d.Package {
			if err := ensureMarker(filepath.Join(dirAbs, "__init__.py"), apply, res); err != nil {
				return err
			}
		}
		if d.RuntimeOnly {
			empty, err := emptyOfPublishable(dirAbs)
			if err != nil {
				return err
			}
			if empty {
				if err := ensureMarker(filepath.Join(dirAbs, ".gitkeep"), apply, res); err != nil {
					return err
				}
			}
		}
	}

	giPath := filepath.Join(root, ".gitignore")
	if !fileExists(giPath) {
		res.GitignoreCreated = true
		if apply {
			if err := os.WriteFile(giPath, []byte(defaultGitignore), 0o644); err != nil {
				return err
			}
		}
	}
	return nil
}

func ensureMarker(markerPath string, apply bool, res *Result) error {
	if fileExists(markerPath) {
		return nil
	}
	res.MarkersCreated++
	if !apply {
		return nil
	}
	return os.WriteFile(markerPath, nil, 0o644)
}

// emptyOfPublishable treats a runtime directory holding only generated
// sensitive artifacts as empty: the marker keeps the directory
// representable in the published tree while the artifacts stay ignored.
func emptyOfPublishable(dirAbs string) (bool, error) {
	entries, err := os.ReadDir(dirAbs)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, err
	}
	for _, e := range entries {
		if e.IsDir() || !IsSensitive(e.Name()) {
			return false, nil
		}
	}
	return true, nil
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func findByBase(root, base string) ([]string, error) {
	var matches []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != root && scan.IsNoiseDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if d.Name() == base {
			rel, relErr := filepath.Rel(root, p)
			if relErr != nil {
				return nil
			}
			matches = append(matches, filepath.ToSlash(rel))
		}
		return nil
	})
	return matches, err
}

func findLegacy(root string) ([]string, error) {
	var legacy []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != root && scan.IsNoiseDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if IsSensitive(d.Name()) {
			return nil
		}
		if LegacyPrefix(d.Name()) != "" {
			rel, relErr := filepath.Rel(root, p)
			if relErr != nil {
				return nil
			}
			legacy = append(legacy, filepath.ToSlash(rel))
		}
		return nil
	})
	return legacy, err
}

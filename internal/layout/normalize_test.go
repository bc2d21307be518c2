package layout

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() error: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
}

func moveActions(res Result) []MoveAction {
	var out []MoveAction
	for _, a := range res.Actions {
		out = append(out, a)
	}
	return out
}

func TestNormalizeMovesLegacyFileIntoCanonicalDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "bot_trading.py", "# strategy\n")

	res, err := Normalize(root, true)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if len(res.Actions) != 1 {
		t.Fatalf("expected exactly one action, got %d: %+v", len(res.Actions), res.Actions)
	}
	a := res.Actions[0]
	if a.Source != "bot_trading.py" || a.Dest != "core/trading_bot.py" {
		t.Fatalf("unexpected action: %+v", a)
	}
	if a.Outcome != OutcomeApplied {
		t.Fatalf("unexpected outcome: %s", a.Outcome)
	}
	if _, err := os.Stat(filepath.Join(root, "core", "trading_bot.py")); err != nil {
		t.Fatalf("moved file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "core", "__init__.py")); err != nil {
		t.Fatalf("package marker missing: %v", err)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "bot_trading.py", "# strategy\n")
	writeFile(t, root, "risk_manager.py", "# risk\n")

	if _, err := Normalize(root, true); err != nil {
		t.Fatalf("first Normalize() error: %v", err)
	}
	res, err := Normalize(root, true)
	if err != nil {
		t.Fatalf("second Normalize() error: %v", err)
	}
	if len(res.Actions) != 0 {
		t.Fatalf("second run proposed actions: %+v", res.Actions)
	}
	if res.MarkersCreated != 0 {
		t.Fatalf("second run recreated %d markers", res.MarkersCreated)
	}
	if res.GitignoreCreated {
		t.Fatal("second run recreated .gitignore")
	}
	if res.DirsCreated != 0 {
		t.Fatalf("second run created %d directories", res.DirsCreated)
	}
}

func TestNormalizeMovesMisplacedCanonicalFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "risk_manager.py", "# risk\n")

	res, err := Normalize(root, true)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if len(res.Actions) != 1 {
		t.Fatalf("expected one action, got %d", len(res.Actions))
	}
	if res.Actions[0].Dest != "core/risk_manager.py" || res.Actions[0].Outcome != OutcomeApplied {
		t.Fatalf("unexpected action: %+v", res.Actions[0])
	}
}

func TestNormalizeFileAlreadyCanonical(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "core/trading_bot.py", "# strategy\n")

	res, err := Normalize(root, true)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	for _, a := range moveActions(res) {
		if a.Dest == "core/trading_bot.py" {
			t.Fatalf("unexpected action for in-place file: %+v", a)
		}
	}
}

func TestNormalizeAmbiguousCandidatesAreNeverGuessed(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "drafts/trading_bot.py", "# a\n")
	writeFile(t, root, "attic/trading_bot.py", "# b\n")

	res, err := Normalize(root, true)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	var ambiguous *MoveAction
	for i, a := range res.Actions {
		if a.Dest == "core/trading_bot.py" {
			ambiguous = &res.Actions[i]
		}
	}
	if ambiguous == nil {
		t.Fatal("expected an action for core/trading_bot.py")
	}
	if ambiguous.Outcome != OutcomeSkippedAmbiguous {
		t.Fatalf("unexpected outcome: %s", ambiguous.Outcome)
	}
	if len(ambiguous.Candidates) != 2 {
		t.Fatalf("expected both candidates listed, got %v", ambiguous.Candidates)
	}
	if _, err := os.Stat(filepath.Join(root, "core", "trading_bot.py")); err == nil {
		t.Fatal("ambiguous move must not be applied")
	}
}

func TestNormalizeNeverOverwrites(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "core/trading_bot.py", "# canonical\n")
	writeFile(t, root, "bot_trading.py", "# legacy\n")

	res, err := Normalize(root, true)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if len(res.Actions) != 1 {
		t.Fatalf("expected one action, got %d", len(res.Actions))
	}
	if res.Actions[0].Outcome != OutcomeSkippedExists {
		t.Fatalf("unexpected outcome: %s", res.Actions[0].Outcome)
	}
	content, err := os.ReadFile(filepath.Join(root, "core", "trading_bot.py"))
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(content) != "# canonical\n" {
		t.Fatal("canonical file was overwritten")
	}
}

func TestNormalizeStripsUntabledLegacyPrefixInPlace(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "notes/old_ideas.py", "# ideas\n")

	res, err := Normalize(root, true)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if len(res.Actions) != 1 {
		t.Fatalf("expected one action, got %d", len(res.Actions))
	}
	a := res.Actions[0]
	if a.Dest != "notes/ideas.py" || a.Outcome != OutcomeApplied {
		t.Fatalf("unexpected action: %+v", a)
	}
	if _, err := os.Stat(filepath.Join(root, "notes", "ideas.py")); err != nil {
		t.Fatalf("renamed file missing: %v", err)
	}
}

func TestNormalizeRuntimeDirMarkers(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "data/trades.db", "")

	if _, err := Normalize(root, true); err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	// data holds only runtime artifacts, so it still gets its marker.
	if _, err := os.Stat(filepath.Join(root, "data", ".gitkeep")); err != nil {
		t.Fatalf("data marker missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "logs", ".gitkeep")); err != nil {
		t.Fatalf("logs marker missing: %v", err)
	}
	// Runtime directories are data, not code: no package marker.
	if _, err := os.Stat(filepath.Join(root, "data", "__init__.py")); err == nil {
		t.Fatal("unexpected package marker in runtime dir")
	}
}

func TestNormalizeDryRunPlansWithoutApplying(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "bot_trading.py", "# strategy\n")

	res, err := Normalize(root, false)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if len(res.Actions) != 1 || res.Actions[0].Outcome != OutcomePlanned {
		t.Fatalf("unexpected plan: %+v", res.Actions)
	}
	if _, err := os.Stat(filepath.Join(root, "core")); err == nil {
		t.Fatal("dry run must not create directories")
	}
	if _, err := os.Stat(filepath.Join(root, "bot_trading.py")); err != nil {
		t.Fatal("dry run must not move files")
	}
}

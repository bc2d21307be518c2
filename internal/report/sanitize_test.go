package report

import (
	"strings"
	"testing"
)

func TestSanitizeFindingRedactsLiteral(t *testing.T) {
	key := strings.Repeat("k9Qz", 16)
	f := Finding{
		File:     "config/settings.yaml",
		Line:     2,
		Context:  `api_key: "` + key + `"`,
		Class:    ClassCredentialKey,
		Severity: SeverityCredential,
	}

	got := SanitizeFinding(f)
	if strings.Contains(got.Context, key) {
		t.Fatal("sanitized context still carries the full literal")
	}
	if !strings.Contains(got.Context, "<redacted>") {
		t.Fatalf("expected redaction marker, got: %s", got.Context)
	}
	if !strings.HasPrefix(got.Context, `api_key: "k9Qz`) {
		t.Fatalf("expected identifying prefix to survive, got: %s", got.Context)
	}
}

func TestSanitizeTextRedactsMinimumLengthToken(t *testing.T) {
	tok := strings.Repeat("ab", 10)
	got := SanitizeText("token=" + tok)
	if got != "token=abab...<redacted>...abab" {
		t.Fatalf("unexpected redaction: %s", got)
	}
}

func TestSanitizeTextLeavesShortValuesAlone(t *testing.T) {
	in := "mode: testnet"
	if got := SanitizeText(in); got != in {
		t.Fatalf("short value mangled: %s", got)
	}
}

func TestTrimContext(t *testing.T) {
	long := strings.Repeat("x", 200)
	got := TrimContext("  "+long, 160)
	if len(got) != 160 {
		t.Fatalf("unexpected length: %d", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis, got suffix %q", got[len(got)-5:])
	}
	if got := TrimContext("  short  ", 160); got != "short" {
		t.Fatalf("expected trimmed passthrough, got %q", got)
	}
}

func TestSummarize(t *testing.T) {
	findings := []Finding{
		{Class: ClassCredentialKey, Severity: SeverityCredential},
		{Class: ClassToken, Severity: SeverityCredential},
		{Class: ClassProductionFlag, Severity: SeverityProductionConfig},
	}
	s := Summarize(findings, []TraversalError{{Path: "x", Err: nil}})
	if s.Total != 3 {
		t.Fatalf("unexpected total: %d", s.Total)
	}
	if s.Credentials != 2 || s.ProductionCfgs != 1 {
		t.Fatalf("unexpected split: cred=%d prod=%d", s.Credentials, s.ProductionCfgs)
	}
	if s.ByClass[ClassToken] != 1 {
		t.Fatalf("unexpected class count: %d", s.ByClass[ClassToken])
	}
	if len(s.Errors) != 1 {
		t.Fatalf("unexpected errors: %d", len(s.Errors))
	}
}

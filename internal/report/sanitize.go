package report

import (
	"regexp"
	"strings"
)

var reLongLiteral = regexp.MustCompile(`\b[A-Za-z0-9_\-/+=]{20,}\b`)

// SanitizeFinding redacts the detected literal before the finding is
// printed, so the guard never re-leaks what it caught.
func SanitizeFinding(f Finding) Finding {
	f.Context = SanitizeText(f.Context)
	return f
}

func SanitizeText(s string) string {
	return reLongLiteral.ReplaceAllStringFunc(s, func(tok string) string {
		return tok[:4] + "...<redacted>..." + tok[len(tok)-4:]
	})
}

// TrimContext shortens a matched line for display without touching the
// stored finding.
func TrimContext(line string, max int) string {
	line = strings.TrimSpace(line)
	if len(line) > max {
		return line[:max-3] + "..."
	}
	return line
}

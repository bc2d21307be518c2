package scan

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/MOYARU/pubguard/internal/report"
)

// Shape describes what a credential literal looks like: an identifier
// containing Keyword, an assignment, and a literal drawn from Charset
// within the given length bounds. MaxLen == 0 means unbounded.
type Shape struct {
	Keyword string
	Charset string
	MinLen  int
	MaxLen  int
}

// Pattern is one entry of the declarative scan catalog. Patterns are
// matched in catalog order and the first hit on a line wins.
type Pattern struct {
	Name     string
	Class    report.Class
	Severity report.Severity
	re       *regexp.Regexp
	group    int
}

// placeholderPrefixes suppress a literal before it is ever classified.
// A 64-character example key must never produce a finding.
var placeholderPrefixes = []string{"YOUR_", "EXAMPLE_", "TEST_", "PLACEHOLDER"}

func shapePattern(name string, class report.Class, sev report.Severity, s Shape) Pattern {
	length := fmt.Sprintf("{%d,}", s.MinLen)
	if s.MaxLen > 0 {
		length = fmt.Sprintf("{%d,%d}", s.MinLen, s.MaxLen)
	}
	// The terminator pins the literal's end so the length bounds and
	// charset hold for the whole literal, not just a prefix of it.
	expr := fmt.Sprintf(`(?i)[A-Za-z0-9_.]*%s[A-Za-z0-9_.]*\s*[:=]\s*["']?([%s]%s)(?:["'\s,;]|$)`,
		regexp.QuoteMeta(s.Keyword), s.Charset, length)
	return Pattern{
		Name:     name,
		Class:    class,
		Severity: sev,
		re:       regexp.MustCompile(expr),
		group:    1,
	}
}

func literalPattern(name string, class report.Class, sev report.Severity, expr string) Pattern {
	return Pattern{
		Name:     name,
		Class:    class,
		Severity: sev,
		re:       regexp.MustCompile(expr),
	}
}

// secretCatalog covers the credential shapes this project's configuration
// is expected to hold: exchange API keys/secrets, bearer tokens, and
// pasted private-key blocks. Stricter patterns come first so a long
// token is classified once.
var secretCatalog = []Pattern{
	literalPattern("PRIVATE_KEY_BLOCK", report.ClassPrivateKey, report.SeverityCredential,
		`-----BEGIN (?:[A-Z ]+ )?PRIVATE KEY-----`),
	shapePattern("EXCHANGE_API_SECRET", report.ClassCredentialSecret, report.SeverityCredential,
		Shape{Keyword: "secret", Charset: `A-Za-z0-9/+=`, MinLen: 60, MaxLen: 70}),
	shapePattern("EXCHANGE_API_KEY", report.ClassCredentialKey, report.SeverityCredential,
		Shape{Keyword: "key", Charset: `A-Za-z0-9`, MinLen: 60, MaxLen: 70}),
	shapePattern("BEARER_TOKEN_STRICT", report.ClassToken, report.SeverityCredential,
		Shape{Keyword: "token", Charset: `A-Za-z0-9_\-`, MinLen: 40}),
	shapePattern("BEARER_TOKEN", report.ClassToken, report.SeverityCredential,
		Shape{Keyword: "token", Charset: `A-Za-z0-9_\-`, MinLen: 20}),
}

// productionCatalog flags configuration that points the bot at live
// trading: a mode flag with a live value, a sandbox flag turned off, or
// a live/real trading switch turned on. Keyword+value matches only.
var productionCatalog = []Pattern{
	literalPattern("MODE_LIVE", report.ClassProductionFlag, report.SeverityProductionConfig,
		`(?i)\bmode\s*[:=]\s*["']?(real|live|production)\b`),
	literalPattern("SANDBOX_DISABLED", report.ClassProductionFlag, report.SeverityProductionConfig,
		`(?i)\b(testnet|sandbox)\s*[:=]\s*["']?false\b`),
	literalPattern("LIVE_TRADING_ENABLED", report.ClassProductionFlag, report.SeverityProductionConfig,
		`(?i)\b(live|real)_?trading\s*[:=]\s*["']?true\b`),
}

// IsPlaceholder reports whether a literal is a recognized example value.
func IsPlaceholder(literal string) bool {
	up := strings.ToUpper(literal)
	for _, p := range placeholderPrefixes {
		if strings.HasPrefix(up, p) {
			return true
		}
	}
	return false
}

// MatchLine returns the first catalog pattern matching the line, or
// ok=false. Placeholder literals are suppressed before classification.
func MatchLine(catalog []Pattern, line string) (Pattern, bool) {
	for _, p := range catalog {
		m := p.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if p.group > 0 && IsPlaceholder(m[p.group]) {
			continue
		}
		return p, true
	}
	return Pattern{}, false
}

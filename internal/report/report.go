package report

type Severity string
type Class string

const (
	SeverityCredential       Severity = "CREDENTIAL"
	SeverityProductionConfig Severity = "PRODUCTION-CONFIG"

	ClassCredentialKey    Class = "CREDENTIAL_KEY"
	ClassCredentialSecret Class = "CREDENTIAL_SECRET"
	ClassToken            Class = "TOKEN"
	ClassPrivateKey       Class = "PRIVATE_KEY"
	ClassProductionFlag   Class = "PRODUCTION_FLAG"
)

// Finding is a single detected credential-like or production-config-like
// literal. Findings are immutable once produced.
type Finding struct {
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Context  string   `json:"context"`
	Rule     string   `json:"rule"`
	Class    Class    `json:"class"`
	Severity Severity `json:"severity"`
}

// TraversalError records a file that could not be read during a scan.
// It is reported alongside findings but never counted as one.
type TraversalError struct {
	Path string
	Err  error
}

// Summary aggregates a run's findings for the end-of-scan report and the
// risk gates. Counts are returned explicitly rather than accumulated in
// shared state.
type Summary struct {
	Total          int
	ByClass        map[Class]int
	Credentials    int
	ProductionCfgs int
	Errors         []TraversalError
}

func Summarize(findings []Finding, errs []TraversalError) Summary {
	s := Summary{ByClass: make(map[Class]int), Errors: errs}
	for _, f := range findings {
		s.Total++
		s.ByClass[f.Class]++
		switch f.Severity {
		case SeverityCredential:
			s.Credentials++
		case SeverityProductionConfig:
			s.ProductionCfgs++
		}
	}
	return s
}

package run

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MOYARU/pubguard/internal/app/ui"
	"github.com/MOYARU/pubguard/internal/config"
	"github.com/MOYARU/pubguard/internal/git"
	"github.com/MOYARU/pubguard/internal/layout"
	msges "github.com/MOYARU/pubguard/internal/messages"
	"github.com/MOYARU/pubguard/internal/publish"
	"github.com/MOYARU/pubguard/internal/report"
	"github.com/MOYARU/pubguard/internal/scan"
)

// ErrMissingEntryPoint aborts the run before any scanning: the guard
// only operates on the project it was built for.
var ErrMissingEntryPoint = errors.New("main.py not found in project root")

// ErrFindingsPresent marks a non-publishing run that still surfaced
// findings; exit 0 is reserved for clean trees in those modes.
var ErrFindingsPresent = errors.New("scan findings present")

type Options struct {
	Root        string
	DryRun      bool
	SkipPublish bool
	AutoYes     bool
	RemoteURL   string
	Branch      string
}

// Run executes the guard pipeline: secret scan, production-config scan,
// structure normalization, publish. Returns a non-nil error for every
// exit-code-1 outcome.
func Run(opts Options) error {
	root := opts.Root
	if root == "" {
		root = "."
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	if _, err := os.Stat(filepath.Join(root, "main.py")); err != nil {
		ui.Error(msges.GetUIMessage("MissingEntryPoint"))
		return ErrMissingEntryPoint
	}

	policy := config.LoadGuardPolicy()
	if opts.RemoteURL != "" {
		policy.RemoteURL = opts.RemoteURL
	}
	if opts.Branch != "" {
		policy.Branch = opts.Branch
	}
	if err := config.ValidateRemoteURL(policy.RemoteURL); err != nil {
		ui.Error(err.Error())
		return err
	}

	ui.Info(msges.GetUIMessage("ScanStart"))
	findings, scanErrs := scan.Secrets(root, policy.FocusFiles)
	prodFindings, prodErrs := scan.Production(root)
	findings = append(findings, prodFindings...)
	scanErrs = append(scanErrs, prodErrs...)

	summary := report.Summarize(findings, scanErrs)
	printFindings(findings)
	if summary.Total == 0 {
		ui.Success(msges.GetUIMessage("ScanClean"))
	} else {
		ui.Warning(msges.GetUIMessage("ScanSummary", summary.Total, summary.Credentials, summary.ProductionCfgs))
	}
	if len(summary.Errors) > 0 {
		ui.Warning(msges.GetUIMessage("ScanErrors", len(summary.Errors)))
	}

	ui.Info(msges.GetUIMessage("NormalizeStart"))
	res, err := layout.Normalize(root, !opts.DryRun)
	if err != nil {
		ui.Error(err.Error())
		return err
	}
	for _, a := range res.Actions {
		if a.Outcome == layout.OutcomeSkippedAmbiguous {
			ui.Warning(msges.GetUIMessage("NormalizeAmbiguous", a.Dest, a.Candidates))
		}
	}
	if opts.DryRun {
		ui.Info(msges.GetUIMessage("NormalizeDryRun", len(res.Actions)))
		if summary.Total > 0 {
			return ErrFindingsPresent
		}
		return nil
	}
	ui.Success(msges.GetUIMessage("NormalizeSummary",
		res.Applied(), res.DirsCreated, res.DirsExisting, res.MarkersCreated))

	if opts.SkipPublish {
		ui.Info(msges.GetUIMessage("SkipPublish"))
		if summary.Total > 0 {
			return ErrFindingsPresent
		}
		return nil
	}

	ui.Info(msges.GetUIMessage("PublishStart"))
	var decider publish.Decider = &gateDecider{}
	if opts.AutoYes {
		decider = autoDecider{}
	}
	rep := publish.Run(git.NewCLIRunner(root), findings, publish.Options{
		RemoteURL:     policy.RemoteURL,
		Branch:        policy.Branch,
		CommitMessage: policy.CommitMessage,
		IdentityName:  policy.IdentityName,
		IdentityEmail: policy.IdentityEmail,
		VerifyClone:   policy.VerifyClone,
	}, decider)

	return reportOutcome(rep, policy)
}

func printFindings(findings []report.Finding) {
	for _, f := range findings {
		f = report.SanitizeFinding(f)
		d := msges.GetFindingMessage(f.Rule, f.File)
		ui.Warning(fmt.Sprintf("%s — %s:%d %s", d.Title, f.File, f.Line, f.Context))
	}
}

func reportOutcome(rep publish.Report, policy config.GuardPolicy) error {
	if rep.State == publish.StateAborted {
		ui.Error(msges.GetUIMessage("PublishAborted", rep.Err))
		return rep.Err
	}
	ui.Success(msges.GetUIMessage("PublishCommitted", rep.CommitID))
	if rep.PushRetries > 0 {
		ui.Warning(msges.GetUIMessage("PushRetried"))
	}
	ui.Success(msges.GetUIMessage("PublishPushed", policy.Branch, rep.Remote))
	if rep.VerifyFailed {
		ui.Warning(msges.GetUIMessage("VerifyFailed"))
	} else if rep.State == publish.StateVerified {
		ui.Success(msges.GetUIMessage("PublishVerified"))
	}
	return nil
}

// gateDecider is the interactive confirmation capability: one decision
// per risk gate, never one prompt per finding.
type gateDecider struct{}

func (gateDecider) Decide(r publish.Review) (publish.Decision, []string, error) {
	ui.Warning(msges.GetUIMessage("RiskGateHeader"))
	for _, f := range r.Findings {
		f = report.SanitizeFinding(f)
		ui.Warning(msges.GetUIMessage("RiskGateFinding", f.Class, f.File, f.Line, f.Context))
	}
	for _, p := range r.SensitiveStaged {
		ui.Warning(msges.GetUIMessage("RiskGateSensitive", p))
	}

	c, err := ui.Choose(msges.GetUIMessage("RiskGatePrompt"), "pae")
	if err != nil {
		return publish.DecisionAbort, nil, err
	}
	switch c {
	case 'p':
		return publish.DecisionProceed, nil, nil
	case 'a':
		return publish.DecisionAbort, nil, nil
	}

	var exclusions []string
	for _, p := range r.SensitiveStaged {
		ok, err := ui.Confirm(msges.GetUIMessage("ExcludePrompt", p))
		if err != nil {
			return publish.DecisionAbort, nil, err
		}
		if ok {
			exclusions = append(exclusions, p)
		}
	}
	if len(exclusions) == 0 {
		return publish.DecisionProceed, nil, nil
	}
	return publish.DecisionProceedWithExclusions, exclusions, nil
}

// autoDecider accepts residual risk without prompting; used by --yes
// for non-interactive runs.
type autoDecider struct{}

func (autoDecider) Decide(publish.Review) (publish.Decision, []string, error) {
	return publish.DecisionProceed, nil, nil
}

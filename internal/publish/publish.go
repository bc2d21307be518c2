// Package publish drives the version-control collaborator through
// init, stage, risk review, commit, remote configuration and push.
// Transition logic is a pure function of the current state, the scan
// findings, the staged set and the operator's decision, so it runs
// against a stubbed decider in tests.
package publish

import (
	"errors"
	"fmt"
	"os"

	"github.com/MOYARU/pubguard/internal/git"
	"github.com/MOYARU/pubguard/internal/layout"
	"github.com/MOYARU/pubguard/internal/report"
)

type State string

const (
	StateUninitialized    State = "Uninitialized"
	StateInitialized      State = "Initialized"
	StateStaged           State = "Staged"
	StateRiskReview       State = "RiskReview"
	StateCommitted        State = "Committed"
	StateRemoteConfigured State = "RemoteConfigured"
	StatePushed           State = "Pushed"
	StateVerified         State = "Verified"
	StateAborted          State = "Aborted"
)

type Decision int

const (
	DecisionProceed Decision = iota
	DecisionAbort
	DecisionProceedWithExclusions
)

// ErrGateDeclined marks an operator abort at a risk gate. It is a
// normal outcome, not an interrupt.
var ErrGateDeclined = errors.New("publish declined at risk gate")

// Review is what a risk gate puts in front of the operator: the scan
// summary plus staged files carrying sensitive extensions.
type Review struct {
	Findings        []report.Finding
	SensitiveStaged []string
	StagedTotal     int
}

// Decider resolves a risk gate. Exclusions accompany
// DecisionProceedWithExclusions and are final for the run.
type Decider interface {
	Decide(r Review) (Decision, []string, error)
}

type Options struct {
	RemoteURL     string
	Branch        string
	CommitMessage string
	IdentityName  string
	IdentityEmail string
	VerifyClone   bool
	// ScratchDir receives the verification clone; empty means a temp dir.
	ScratchDir string
}

// Report is the orchestrator's explicit result aggregate.
type Report struct {
	State        State
	CommitID     string
	Remote       string
	StagedCount  int
	Excluded     []string
	PushRetries  int
	VerifyFailed bool
	Err          error
}

func abort(rep Report, err error) Report {
	rep.State = StateAborted
	rep.Err = err
	return rep
}

// Run executes the publish state machine. Any failing version-control
// operation aborts with the originating error attached, except push,
// which is retried exactly once.
func Run(g git.Runner, findings []report.Finding, opts Options, decide Decider) Report {
	rep := Report{State: StateUninitialized}

	if !g.IsRepo() {
		if err := g.Initialize(); err != nil {
			return abort(rep, fmt.Errorf("init: %w", err))
		}
	}
	rep.State = StateInitialized

	if err := g.ConfigureIdentity(opts.IdentityName, opts.IdentityEmail); err != nil {
		return abort(rep, fmt.Errorf("configure identity: %w", err))
	}

	if err := g.StageAll(); err != nil {
		return abort(rep, fmt.Errorf("stage: %w", err))
	}
	staged, err := g.ListStaged()
	if err != nil {
		return abort(rep, fmt.Errorf("list staged: %w", err))
	}
	rep.State = StateStaged
	rep.StagedCount = len(staged)

	// Only findings inside the staged set reach the gate; a finding in
	// an ignored or unstaged file carries no publish risk.
	stagedSet := make(map[string]bool, len(staged))
	for _, p := range staged {
		stagedSet[p] = true
	}
	review := Review{StagedTotal: len(staged)}
	for _, f := range findings {
		if stagedSet[f.File] {
			review.Findings = append(review.Findings, f)
		}
	}
	for _, p := range staged {
		if layout.IsSensitive(p) {
			review.SensitiveStaged = append(review.SensitiveStaged, p)
		}
	}

	if len(review.Findings) > 0 || len(review.SensitiveStaged) > 0 {
		rep.State = StateRiskReview
		decision, exclusions, err := decide.Decide(review)
		if err != nil {
			return abort(rep, fmt.Errorf("risk review: %w", err))
		}
		switch decision {
		case DecisionAbort:
			return abort(rep, ErrGateDeclined)
		case DecisionProceedWithExclusions:
			if err := g.Unstage(exclusions); err != nil {
				return abort(rep, fmt.Errorf("unstage: %w", err))
			}
			rep.Excluded = exclusions
			rep.StagedCount -= len(exclusions)
			// Exclusions are final for this run; no second review.
			rep.State = StateStaged
		case DecisionProceed:
			// Residual risk accepted.
		}
	}

	commitID, err := g.Commit(opts.CommitMessage)
	if err != nil {
		return abort(rep, fmt.Errorf("commit: %w", err))
	}
	rep.State = StateCommitted
	rep.CommitID = commitID

	remote, err := g.GetOrSetRemote(opts.RemoteURL)
	if err != nil {
		return abort(rep, fmt.Errorf("remote: %w", err))
	}
	rep.State = StateRemoteConfigured
	rep.Remote = remote

	if current, err := g.CurrentBranch(); err == nil && current != opts.Branch {
		if err := g.RenameBranch(opts.Branch); err != nil {
			return abort(rep, fmt.Errorf("rename branch: %w", err))
		}
	}

	if err := g.Push("origin", opts.Branch); err != nil {
		rep.PushRetries++
		if err := g.Push("origin", opts.Branch); err != nil {
			return abort(rep, fmt.Errorf("push (after retry): %w", err))
		}
	}
	rep.State = StatePushed

	if opts.VerifyClone {
		// Verification failure only downgrades the report; the push
		// stands.
		if err := verifyClone(g, remote, opts.ScratchDir); err != nil {
			rep.VerifyFailed = true
		} else {
			rep.State = StateVerified
		}
	}
	return rep
}

func verifyClone(g git.Runner, remote, scratch string) error {
	dir := scratch
	if dir == "" {
		tmp, err := os.MkdirTemp("", "pubguard-verify-")
		if err != nil {
			return err
		}
		defer os.RemoveAll(tmp)
		dir = tmp
	}
	return g.CloneTo(remote, dir)
}

// Package git is the narrow interface the publish pipeline drives the
// external version-control tool through. Nothing outside the publish
// orchestrator touches repository state.
package git

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Runner is the collaborator surface consumed by the publish
// orchestrator.
type Runner interface {
	IsRepo() bool
	Initialize() error
	ConfigureIdentity(name, email string) error
	StageAll() error
	ListStaged() ([]string, error)
	Unstage(paths []string) error
	Commit(message string) (string, error)
	GetOrSetRemote(url string) (string, error)
	CurrentBranch() (string, error)
	RenameBranch(name string) error
	Push(remote, branch string) error
	CloneTo(url, dir string) error
}

// CLIRunner shells out to the git binary with the project root as the
// working directory.
type CLIRunner struct {
	Dir string
}

func NewCLIRunner(dir string) *CLIRunner {
	return &CLIRunner{Dir: dir}
}

func (r *CLIRunner) run(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	out, err := cmd.CombinedOutput()
	text := strings.TrimSpace(string(out))
	if err != nil {
		if text != "" {
			return text, fmt.Errorf("git %s: %w: %s", args[0], err, text)
		}
		return text, fmt.Errorf("git %s: %w", args[0], err)
	}
	return text, nil
}

func (r *CLIRunner) IsRepo() bool {
	st, err := os.Stat(filepath.Join(r.Dir, ".git"))
	return err == nil && st.IsDir()
}

func (r *CLIRunner) Initialize() error {
	_, err := r.run("init")
	return err
}

// ConfigureIdentity sets user.name/user.email only when git resolves
// neither from an existing config.
func (r *CLIRunner) ConfigureIdentity(name, email string) error {
	if current, err := r.run("config", "user.name"); name != "" && (err != nil || current == "") {
		if _, err := r.run("config", "user.name", name); err != nil {
			return err
		}
	}
	if current, err := r.run("config", "user.email"); email != "" && (err != nil || current == "") {
		if _, err := r.run("config", "user.email", email); err != nil {
			return err
		}
	}
	return nil
}

func (r *CLIRunner) StageAll() error {
	_, err := r.run("add", "-A")
	return err
}

func (r *CLIRunner) ListStaged() ([]string, error) {
	out, err := r.run("diff", "--cached", "--name-only")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// Unstage removes paths from the index. The reset form fails on an
// unborn branch, so fall back to dropping the cache entries directly.
func (r *CLIRunner) Unstage(paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"reset", "-q", "--"}, paths...)
	if _, err := r.run(args...); err == nil {
		return nil
	}
	args = append([]string{"rm", "-r", "-q", "--cached", "--ignore-unmatch", "--"}, paths...)
	_, err := r.run(args...)
	return err
}

func (r *CLIRunner) Commit(message string) (string, error) {
	if _, err := r.run("commit", "-m", message); err != nil {
		return "", err
	}
	return r.run("rev-parse", "HEAD")
}

// GetOrSetRemote reuses an already-configured origin; otherwise it
// requires a URL to be supplied.
func (r *CLIRunner) GetOrSetRemote(url string) (string, error) {
	if current, err := r.run("remote", "get-url", "origin"); err == nil && current != "" {
		return current, nil
	}
	if url == "" {
		return "", fmt.Errorf("no remote configured and no remote URL supplied")
	}
	if _, err := r.run("remote", "add", "origin", url); err != nil {
		return "", err
	}
	return url, nil
}

func (r *CLIRunner) CurrentBranch() (string, error) {
	return r.run("symbolic-ref", "--short", "HEAD")
}

func (r *CLIRunner) RenameBranch(name string) error {
	_, err := r.run("branch", "-M", name)
	return err
}

func (r *CLIRunner) Push(remote, branch string) error {
	_, err := r.run("push", "-u", remote, branch)
	return err
}

func (r *CLIRunner) CloneTo(url, dir string) error {
	cmd := exec.Command("git", "clone", "--depth", "1", url, dir)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git clone: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

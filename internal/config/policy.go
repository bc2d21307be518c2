package config

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/net/publicsuffix"
)

// GuardPolicy carries the operator-tunable knobs of a publish run.
type GuardPolicy struct {
	RemoteURL     string
	Branch        string
	CommitMessage string
	IdentityName  string
	IdentityEmail string
	VerifyClone   bool
	FocusFiles    []string
}

var guardPolicyCache struct {
	mu      sync.RWMutex
	path    string
	exists  bool
	modTime int64
	policy  GuardPolicy
}

func DefaultGuardPolicy() GuardPolicy {
	return GuardPolicy{
		Branch:        "main",
		CommitMessage: "Initial commit: Binance trading bot",
		VerifyClone:   false,
	}
}

// LoadGuardPolicy reads optional top-level keys from ".pubguard.yaml":
// remote_url: https://github.com/user/repo.git
// branch: main
// commit_message: "Initial commit"
// identity_name: user
// identity_email: user@example.com
// verify_clone: true
// focus_files: config/settings.yaml,.env
func LoadGuardPolicy() GuardPolicy {
	p := DefaultGuardPolicy()
	path := ".pubguard.yaml"
	absPath, err := filepath.Abs(path)
	if err == nil {
		path = absPath
	}

	st, statErr := os.Stat(path)
	if statErr != nil {
		guardPolicyCache.mu.RLock()
		if guardPolicyCache.path == path && !guardPolicyCache.exists {
			cached := guardPolicyCache.policy
			guardPolicyCache.mu.RUnlock()
			return cached
		}
		guardPolicyCache.mu.RUnlock()
		guardPolicyCache.mu.Lock()
		guardPolicyCache.path = path
		guardPolicyCache.exists = false
		guardPolicyCache.modTime = 0
		guardPolicyCache.policy = p
		guardPolicyCache.mu.Unlock()
		return p
	}

	modTime := st.ModTime().UnixNano()
	guardPolicyCache.mu.RLock()
	if guardPolicyCache.path == path && guardPolicyCache.exists && guardPolicyCache.modTime == modTime {
		cached := guardPolicyCache.policy
		guardPolicyCache.mu.RUnlock()
		return cached
	}
	guardPolicyCache.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return p
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		kv := strings.SplitN(line, ":", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.TrimSpace(kv[0])
		val := strings.Trim(strings.TrimSpace(kv[1]), `"'`)

		switch key {
		case "remote_url":
			if val != "" {
				p.RemoteURL = val
			}
		case "branch":
			if val != "" {
				p.Branch = val
			}
		case "commit_message":
			if val != "" {
				p.CommitMessage = val
			}
		case "identity_name":
			p.IdentityName = val
		case "identity_email":
			p.IdentityEmail = val
		case "verify_clone":
			if b, err := strconv.ParseBool(strings.ToLower(val)); err == nil {
				p.VerifyClone = b
			}
		case "focus_files":
			for _, part := range strings.Split(val, ",") {
				part = strings.TrimSpace(part)
				if part != "" {
					p.FocusFiles = append(p.FocusFiles, part)
				}
			}
		}
	}

	guardPolicyCache.mu.Lock()
	guardPolicyCache.path = path
	guardPolicyCache.exists = true
	guardPolicyCache.modTime = modTime
	guardPolicyCache.policy = p
	guardPolicyCache.mu.Unlock()

	return p
}

// ValidateRemoteURL accepts http(s) and scp-like git remotes whose host
// carries a registrable domain.
func ValidateRemoteURL(raw string) error {
	if raw == "" {
		return nil
	}
	host := ""
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid remote URL: %w", err)
		}
		host = u.Hostname()
	} else if at := strings.Index(raw, "@"); at >= 0 {
		rest := raw[at+1:]
		if colon := strings.Index(rest, ":"); colon > 0 {
			host = rest[:colon]
		}
	}
	if host == "" {
		return fmt.Errorf("unsupported remote URL: %s", raw)
	}
	if _, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(host)); err != nil {
		return fmt.Errorf("remote host %q has no registrable domain: %w", host, err)
	}
	return nil
}

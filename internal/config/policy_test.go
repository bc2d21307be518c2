package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadGuardPolicy(t *testing.T) {
	tmp := t.TempDir()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error: %v", err)
	}
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("Chdir(tmp) error: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldwd) })

	content := "remote_url: https://github.com/user/trading-bot.git\nbranch: release\ncommit_message: \"Publish bot\"\nidentity_name: trader\nidentity_email: trader@example.com\nverify_clone: true\nfocus_files: deploy/secrets.yaml, extra.env\n"
	if err := os.WriteFile(filepath.Join(tmp, ".pubguard.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	p := LoadGuardPolicy()
	if p.RemoteURL != "https://github.com/user/trading-bot.git" {
		t.Fatalf("unexpected RemoteURL: %s", p.RemoteURL)
	}
	if p.Branch != "release" {
		t.Fatalf("unexpected Branch: %s", p.Branch)
	}
	if p.CommitMessage != "Publish bot" {
		t.Fatalf("unexpected CommitMessage: %s", p.CommitMessage)
	}
	if p.IdentityName != "trader" {
		t.Fatalf("unexpected IdentityName: %s", p.IdentityName)
	}
	if p.IdentityEmail != "trader@example.com" {
		t.Fatalf("unexpected IdentityEmail: %s", p.IdentityEmail)
	}
	if !p.VerifyClone {
		t.Fatal("expected VerifyClone=true")
	}
	if len(p.FocusFiles) != 2 || p.FocusFiles[0] != "deploy/secrets.yaml" || p.FocusFiles[1] != "extra.env" {
		t.Fatalf("unexpected FocusFiles: %v", p.FocusFiles)
	}
}

func TestDefaultGuardPolicy(t *testing.T) {
	p := DefaultGuardPolicy()
	if p.Branch != "main" {
		t.Fatalf("unexpected default branch: %s", p.Branch)
	}
	if p.VerifyClone {
		t.Fatal("clone verification must be opt-in")
	}
}

func TestValidateRemoteURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "https remote", url: "https://github.com/user/repo.git", wantErr: false},
		{name: "scp-like remote", url: "git@github.com:user/repo.git", wantErr: false},
		{name: "empty is allowed", url: "", wantErr: false},
		{name: "no registrable domain", url: "https://localhost/repo.git", wantErr: true},
		{name: "unsupported shape", url: "ftp://example.com/repo.git", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRemoteURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateRemoteURL(%s): err=%v wantErr=%v", tt.url, err, tt.wantErr)
			}
		})
	}
}

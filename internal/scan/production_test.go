package scan

import (
	"testing"

	"github.com/MOYARU/pubguard/internal/report"
)

func TestProductionFlagsLiveMode(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "config/settings.yaml", "mode: \"real\"\ntrading_pairs:\n  - BTCUSDT\n")

	findings, errs := Production(root)
	if len(errs) != 0 {
		t.Fatalf("unexpected traversal errors: %v", errs)
	}
	if len(findings) != 1 {
		t.Fatalf("expected one finding, got %d: %+v", len(findings), findings)
	}
	f := findings[0]
	if f.Class != report.ClassProductionFlag {
		t.Fatalf("unexpected class: %s", f.Class)
	}
	if f.Severity != report.SeverityProductionConfig {
		t.Fatalf("unexpected severity: %s", f.Severity)
	}
}

func TestProductionIgnoresSandboxMode(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "config/settings.yaml", "mode: testnet\ntestnet: true\n")

	findings, _ := Production(root)
	if len(findings) != 0 {
		t.Fatalf("expected no findings for sandbox config, got %d", len(findings))
	}
}

func TestProductionFlagsDisabledSandbox(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "infrastructure/binance_api.py", "client = Client(api_key, api_secret, testnet=False)\n")

	findings, _ := Production(root)
	if len(findings) != 1 {
		t.Fatalf("expected one finding, got %d", len(findings))
	}
	if findings[0].Rule != "SANDBOX_DISABLED" {
		t.Fatalf("unexpected rule: %s", findings[0].Rule)
	}
}

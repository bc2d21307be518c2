package messages

import (
	"fmt"
)

type MessageDetail struct {
	Title   string
	Message string
	Fix     string
}

// findingMessages is keyed by pattern name from the scan catalogs.
var findingMessages = map[string]MessageDetail{
	"EXCHANGE_API_KEY": {
		Title:   "Exchange API Key Detected",
		Message: "A literal shaped like a real exchange API key is assigned in %s. Publishing it grants trading access to anyone who reads the repository.",
		Fix:     "Move the key into an environment variable (BINANCE_TESTNET_API_KEY / BINANCE_REAL_API_KEY) and keep a YOUR_API_KEY placeholder in the committed settings file.",
	},
	"EXCHANGE_API_SECRET": {
		Title:   "Exchange API Secret Detected",
		Message: "A literal shaped like a real exchange API secret is assigned in %s. A leaked secret cannot be distinguished from the owner by the exchange.",
		Fix:     "Move the secret into an environment variable and rotate it at the exchange before publishing.",
	},
	"BEARER_TOKEN_STRICT": {
		Title:   "Access Token Detected",
		Message: "A long bearer-style token is assigned in %s.",
		Fix:     "Remove the token from tracked files and revoke it with the issuing service.",
	},
	"BEARER_TOKEN": {
		Title:   "Possible Access Token Detected",
		Message: "A token-shaped literal is assigned in %s.",
		Fix:     "Confirm the value is not a live token; replace it with a TEST_ placeholder if it is documentation.",
	},
	"PRIVATE_KEY_BLOCK": {
		Title:   "Private Key Block Detected",
		Message: "A PEM private-key header appears in %s.",
		Fix:     "Delete the key material from the tree and rotate the key pair.",
	},
	"MODE_LIVE": {
		Title:   "Live Trading Mode Configured",
		Message: "The mode flag in %s selects live trading. A cloned repository would trade real funds out of the box.",
		Fix:     "Ship the settings file with mode: testnet and document the switch to real mode.",
	},
	"SANDBOX_DISABLED": {
		Title:   "Sandbox Disabled",
		Message: "A testnet/sandbox flag in %s is explicitly false.",
		Fix:     "Publish with the sandbox enabled.",
	},
	"LIVE_TRADING_ENABLED": {
		Title:   "Live Trading Enabled",
		Message: "A live/real trading flag in %s is explicitly true.",
		Fix:     "Publish with live trading switched off.",
	},
}

var uiMessages = map[string]string{
	"ScanStart":          "Scanning project tree for credentials and production configuration...",
	"ScanClean":          "No credential-shaped literals or production flags found.",
	"ScanSummary":        "Scan summary: %d finding(s) — %d credential, %d production-config.",
	"ScanErrors":         "%d file(s) could not be read and were skipped.",
	"NormalizeStart":     "Normalizing project layout...",
	"NormalizeSummary":   "Layout: %d move(s) applied, %d directory(ies) created, %d existing, %d marker(s) written.",
	"NormalizeAmbiguous": "Ambiguous placement for %s: candidates %v — skipped, not guessing.",
	"NormalizeDryRun":    "Dry run: %d move(s) planned, nothing applied.",
	"MissingEntryPoint":  "Entry point main.py not found — run pubguard from the project root.",
	"PublishStart":       "Publishing to remote...",
	"PublishStaged":      "%d file(s) staged.",
	"RiskGateHeader":     "Residual risk requires a decision before committing:",
	"RiskGateSensitive":  "Staged sensitive file: %s",
	"RiskGateFinding":    "[%s] %s:%d %s",
	"RiskGatePrompt":     "[p]roceed, [a]bort, or proceed with [e]xclusions?",
	"ExcludePrompt":      "Exclude %s from this commit?",
	"PublishAborted":     "Publish aborted: %v",
	"PublishCommitted":   "Committed %s.",
	"PushRetried":        "Push failed once; retry succeeded.",
	"PublishPushed":      "Pushed branch %s to %s.",
	"PublishVerified":    "Clone verification succeeded.",
	"VerifyFailed":       "Push succeeded but clone verification failed; check the remote manually.",
	"SkipPublish":        "Publish skipped by request.",
}

// GetFindingMessage returns the catalog entry for a pattern name with
// the file path substituted, falling back to a generic entry.
func GetFindingMessage(name, file string) MessageDetail {
	d, ok := findingMessages[name]
	if !ok {
		return MessageDetail{
			Title:   "Sensitive Literal Detected",
			Message: fmt.Sprintf("A sensitive-looking literal appears in %s.", file),
			Fix:     "Review the value before publishing.",
		}
	}
	d.Message = fmt.Sprintf(d.Message, file)
	return d
}

func GetUIMessage(key string, args ...interface{}) string {
	msg, ok := uiMessages[key]
	if !ok {
		return key
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

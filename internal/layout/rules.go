package layout

import (
	"path/filepath"
	"strings"
)

// DirRule is one canonical directory of the published tree. Python
// package directories carry an __init__.py marker; runtime-only
// directories hold generated artifacts and get a .gitkeep only while
// empty.
type DirRule struct {
	Path        string
	Purpose     string
	Package     bool
	RuntimeOnly bool
}

// CanonicalRule pins one file to its canonical path. Rules are ordered;
// the first rule naming a base name wins.
type CanonicalRule struct {
	Path    string
	Purpose string
}

// LegacyRule maps a known historical flat filename to its canonical
// destination.
type LegacyRule struct {
	Name string
	Dest string
}

// CanonicalDirs is the published layout consumers can rely on:
// strategy/risk code under core, transport under infrastructure,
// configuration under config, persistence under database, presentation
// under interface, validation under backtest.
var CanonicalDirs = []DirRule{
	{Path: "core", Purpose: "strategy, execution and risk management", Package: true},
	{Path: "infrastructure", Purpose: "exchange API, WebSocket and indicators", Package: true},
	{Path: "config", Purpose: "configuration loading and settings", Package: true},
	{Path: "database", Purpose: "persistence", Package: true},
	{Path: "interface", Purpose: "dashboard and presentation", Package: true},
	{Path: "backtest", Purpose: "validation and backtesting", Package: true},
	{Path: "logs", Purpose: "runtime log output", RuntimeOnly: true},
	{Path: "data", Purpose: "runtime market data", RuntimeOnly: true},
}

// CanonicalFiles are the expected file placements, searched by base name
// when absent from their canonical path.
var CanonicalFiles = []CanonicalRule{
	{Path: "core/trading_bot.py", Purpose: "strategy driver"},
	{Path: "core/risk_manager.py", Purpose: "risk limits"},
	{Path: "core/executor.py", Purpose: "order execution"},
	{Path: "infrastructure/binance_api.py", Purpose: "exchange REST/WebSocket client"},
	{Path: "infrastructure/data_manager.py", Purpose: "historical data"},
	{Path: "infrastructure/indicators.py", Purpose: "technical indicators"},
	{Path: "config/config_loader.py", Purpose: "settings loader"},
	{Path: "config/settings.yaml", Purpose: "settings file"},
	{Path: "database/db_handler.py", Purpose: "trade persistence"},
	{Path: "interface/simple_dashboard.py", Purpose: "terminal dashboard"},
	{Path: "backtest/validator.py", Purpose: "strategy validation"},
}

// legacyPrefixes are historical filename conventions from the flat
// pre-refactor tree.
var legacyPrefixes = []string{"bot_", "old_", "legacy_"}

// LegacyTable resolves known legacy names; first match wins. Names
// carrying a recognized prefix but no table entry are renamed in place
// with the prefix stripped.
var LegacyTable = []LegacyRule{
	{Name: "bot_trading.py", Dest: "core/trading_bot.py"},
	{Name: "bot_risk.py", Dest: "core/risk_manager.py"},
	{Name: "bot_executor.py", Dest: "core/executor.py"},
	{Name: "bot_binance.py", Dest: "infrastructure/binance_api.py"},
	{Name: "bot_data.py", Dest: "infrastructure/data_manager.py"},
	{Name: "bot_indicators.py", Dest: "infrastructure/indicators.py"},
	{Name: "bot_config.py", Dest: "config/config_loader.py"},
	{Name: "bot_db.py", Dest: "database/db_handler.py"},
	{Name: "bot_dashboard.py", Dest: "interface/simple_dashboard.py"},
	{Name: "bot_backtest.py", Dest: "backtest/validator.py"},
}

// sensitiveExtensions classifies files that should not reach a public
// remote even when credential-clean. Shared by empty-directory handling
// and the staged-file risk review.
var sensitiveExtensions = map[string]bool{
	".log":     true,
	".db":      true,
	".sqlite3": true,
	".env":     true,
}

// IsSensitive reports whether a path carries a log/database/environment
// extension.
func IsSensitive(path string) bool {
	return sensitiveExtensions[strings.ToLower(filepath.Ext(path))]
}

// LegacyPrefix returns the recognized prefix of name, or "".
func LegacyPrefix(name string) string {
	for _, p := range legacyPrefixes {
		if strings.HasPrefix(name, p) && len(name) > len(p) {
			return p
		}
	}
	return ""
}

// ResolveLegacy returns the canonical destination for a legacy filename
// and whether a table entry exists.
func ResolveLegacy(name string) (string, bool) {
	for _, r := range LegacyTable {
		if r.Name == name {
			return r.Dest, true
		}
	}
	return "", false
}

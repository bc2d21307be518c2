package layout

import "testing"

func TestIsSensitive(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"logs/bot_20260101.log", true},
		{"data/trades.db", true},
		{"data/market.sqlite3", true},
		{".env", true},
		{"config/settings.yaml", false},
		{"core/trading_bot.py", false},
	}
	for _, tt := range tests {
		if got := IsSensitive(tt.path); got != tt.want {
			t.Fatalf("IsSensitive(%s): got=%v want=%v", tt.path, got, tt.want)
		}
	}
}

func TestResolveLegacyFirstMatchWins(t *testing.T) {
	dest, ok := ResolveLegacy("bot_trading.py")
	if !ok {
		t.Fatal("expected a table entry for bot_trading.py")
	}
	if dest != "core/trading_bot.py" {
		t.Fatalf("unexpected destination: %s", dest)
	}

	if _, ok := ResolveLegacy("bot_unknown.py"); ok {
		t.Fatal("expected no table entry for bot_unknown.py")
	}
}

func TestLegacyPrefix(t *testing.T) {
	if got := LegacyPrefix("old_strategy.py"); got != "old_" {
		t.Fatalf("unexpected prefix: %q", got)
	}
	if got := LegacyPrefix("strategy.py"); got != "" {
		t.Fatalf("expected no prefix, got %q", got)
	}
	// A bare prefix is not a legacy name.
	if got := LegacyPrefix("bot_"); got != "" {
		t.Fatalf("expected no prefix for bare name, got %q", got)
	}
}
